package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/config"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService owns the timed quiz-attempt lifecycle: question reservation,
// answer submission under expiry constraints, and completion scoring. The
// QuizAttempt aggregate is mutated here and nowhere else.
type AttemptService interface {
	StartQuiz(userID, quizID uint) (*dto.AttemptResponse, error)
	SubmitAnswer(attemptID, userID, questionID uint, answer []string) (*dto.SubmitAnswerResponse, error)
	CompleteQuiz(attemptID, userID uint) (*dto.CompleteAttemptResponse, error)
	GetAttempt(attemptID, userID uint) (*dto.AttemptResponse, error)
}

type attemptService struct {
	quizRepo      repository.QuizRepository
	questionRepo  repository.QuestionRepository
	attemptRepo   repository.QuizAttemptRepository
	historyRepo   repository.QuestionHistoryRepository
	accessService AccessService
	questionCount int
	duration      time.Duration
	now           func() time.Time
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.QuizAttemptRepository,
	historyRepo repository.QuestionHistoryRepository,
	accessService AccessService,
	cfg *config.Config,
) AttemptService {
	return &attemptService{
		quizRepo:      quizRepo,
		questionRepo:  questionRepo,
		attemptRepo:   attemptRepo,
		historyRepo:   historyRepo,
		accessService: accessService,
		questionCount: cfg.Quiz.AttemptQuestionCount,
		duration:      time.Duration(cfg.Quiz.AttemptDurationHours) * time.Hour,
		now:           time.Now,
	}
}

// NewAttemptServiceWithClock is test-only for deterministic expiry checks.
func NewAttemptServiceWithClock(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.QuizAttemptRepository,
	historyRepo repository.QuestionHistoryRepository,
	accessService AccessService,
	cfg *config.Config,
	now func() time.Time,
) AttemptService {
	svc := NewAttemptService(quizRepo, questionRepo, attemptRepo, historyRepo, accessService, cfg).(*attemptService)
	svc.now = now
	return svc
}

// StartQuiz resumes a live attempt or creates a fresh one. A second call with
// no intervening expiry returns the same attempt unchanged.
func (s *attemptService) StartQuiz(userID, quizID uint) (*dto.AttemptResponse, error) {
	existing, err := s.attemptRepo.FindInProgress(userID, quizID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("StartQuiz: in-progress lookup failed")
		return nil, fmt.Errorf("error looking up in-progress attempt: %w", err)
	}
	if existing != nil {
		if s.now().Before(existing.ExpiresAt) {
			log.Info().Uint("attemptID", existing.ID).Uint("userID", userID).Msg("StartQuiz: resuming attempt")
			return s.buildAttemptResponse(existing, true), nil
		}
		// Lazy expiry: the stale attempt flips to EXPIRED as a side effect of
		// being touched, then a fresh attempt is built below.
		if err := s.attemptRepo.UpdateStatus(existing.ID, model.AttemptExpired, nil, nil); err != nil {
			return nil, fmt.Errorf("error expiring stale attempt %d: %w", existing.ID, err)
		}
		log.Info().Uint("attemptID", existing.ID).Msg("StartQuiz: stale attempt marked expired")
	}

	if _, err := s.quizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error loading quiz %d: %w", quizID, err)
	}

	allowed, err := s.accessService.CanStart(userID, quizID)
	if err != nil {
		// Fails closed: an entitlement lookup error denies the start.
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("StartQuiz: entitlement check failed")
		return nil, model.ErrQuizNotPurchased
	}
	if !allowed {
		return nil, model.ErrQuizNotPurchased
	}

	selected, err := s.selectQuestions(userID, quizID)
	if err != nil {
		return nil, err
	}

	startedAt := s.now()
	attempt := &model.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		Status:    model.AttemptInProgress,
		StartedAt: startedAt,
		ExpiresAt: startedAt.Add(s.duration),
	}
	for _, q := range selected {
		attempt.Questions = append(attempt.Questions, model.AttemptQuestion{QuestionID: q.ID})
	}

	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent start; the partial unique
			// index guarantees a single live attempt, so resume the winner's.
			winner, findErr := s.attemptRepo.FindInProgress(userID, quizID)
			if findErr != nil {
				return nil, fmt.Errorf("error resolving concurrent start: %w", findErr)
			}
			log.Info().Uint("attemptID", winner.ID).Msg("StartQuiz: concurrent start resolved to existing attempt")
			return s.buildAttemptResponse(winner, true), nil
		}
		log.Error().Err(err).Uint("userID", userID).Uint("quizID", quizID).Msg("StartQuiz: failed to create attempt")
		return nil, fmt.Errorf("error creating attempt: %w", err)
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("userID", userID).Uint("quizID", quizID).
		Int("questions", len(selected)).Msg("StartQuiz: attempt created")

	questionsByID := make(map[uint]model.Question, len(selected))
	for _, q := range selected {
		questionsByID[q.ID] = q
	}
	return s.buildAttemptResponseWith(attempt, questionsByID, false), nil
}

// selectQuestions computes the candidate set (active questions minus the
// user's full exposure history on this quiz) and samples uniformly without
// replacement. The sample is re-derived fresh on every start.
func (s *attemptService) selectQuestions(userID, quizID uint) ([]model.Question, error) {
	catalog, err := s.questionRepo.FindActiveByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("error loading questions for quiz %d: %w", quizID, err)
	}

	exposedIDs, err := s.historyRepo.FindQuestionIDs(userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("error loading question history: %w", err)
	}
	exposed := make(map[uint]struct{}, len(exposedIDs))
	for _, id := range exposedIDs {
		exposed[id] = struct{}{}
	}

	available := make([]model.Question, 0, len(catalog))
	for _, q := range catalog {
		if _, seen := exposed[q.ID]; !seen {
			available = append(available, q)
		}
	}

	if len(available) < s.questionCount {
		log.Warn().Uint("userID", userID).Uint("quizID", quizID).
			Int("available", len(available)).Int("required", s.questionCount).
			Msg("StartQuiz: not enough unseen questions")
		return nil, model.ErrInsufficientQuestions
	}

	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	return available[:s.questionCount], nil
}

// SubmitAnswer records one answer. Expiry is evaluated before the mutation is
// accepted; an expired attempt is persisted as EXPIRED and the answer
// rejected. Last write wins per question.
func (s *attemptService) SubmitAnswer(attemptID, userID, questionID uint, answer []string) (*dto.SubmitAnswerResponse, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID, "SubmitAnswer")
	if err != nil {
		return nil, err
	}

	if attempt.Status != model.AttemptInProgress {
		return nil, model.ErrAttemptNotActive
	}
	if s.now().After(attempt.ExpiresAt) {
		if err := s.attemptRepo.UpdateStatus(attempt.ID, model.AttemptExpired, nil, nil); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("SubmitAnswer: failed to persist expiry")
		}
		return nil, model.ErrAttemptExpired
	}

	var reserved *model.AttemptQuestion
	for i := range attempt.Questions {
		if attempt.Questions[i].QuestionID == questionID {
			reserved = &attempt.Questions[i]
			break
		}
	}
	if reserved == nil {
		return nil, model.ErrQuestionNotInAttempt
	}

	if answer == nil {
		answer = []string{}
	}

	// Grading uses the live question record; a question deleted mid-attempt
	// grades as incorrect rather than failing the submission.
	correct := false
	if reserved.Question.ID != 0 {
		correct = answersMatch(answer, reserved.Question.Answer)
	}

	if err := s.attemptRepo.SaveAnswer(attempt.ID, questionID, answer, correct); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Uint("questionID", questionID).Msg("SubmitAnswer: failed to save answer")
		return nil, fmt.Errorf("error saving answer: %w", err)
	}

	// Write-through to the exposure ledger. A crash between the two writes
	// leaves history one step behind the attempt, which only widens the next
	// attempt's candidate set.
	history := &model.QuestionHistory{
		UserID:     userID,
		QuizID:     attempt.QuizID,
		QuestionID: questionID,
		Visited:    true,
		Answered:   true,
		Correct:    correct,
		Answer:     answer,
	}
	if err := s.historyRepo.Upsert(history); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Uint("questionID", questionID).Msg("SubmitAnswer: history upsert failed")
	}

	return &dto.SubmitAnswerResponse{AttemptID: attempt.ID, Correct: correct}, nil
}

// CompleteQuiz finalizes scoring. Unanswered questions count as incorrect,
// never as excluded. COMPLETED and EXPIRED are terminal.
func (s *attemptService) CompleteQuiz(attemptID, userID uint) (*dto.CompleteAttemptResponse, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID, "CompleteQuiz")
	if err != nil {
		return nil, err
	}

	if attempt.Status == model.AttemptCompleted {
		return nil, model.ErrAlreadyCompleted
	}
	if attempt.Status == model.AttemptExpired {
		return nil, model.ErrAttemptExpired
	}
	if s.now().After(attempt.ExpiresAt) {
		if err := s.attemptRepo.UpdateStatus(attempt.ID, model.AttemptExpired, nil, nil); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("CompleteQuiz: failed to persist expiry")
		}
		return nil, model.ErrAttemptExpired
	}

	// Score counts every reserved entry, including ones whose question has
	// since been deleted; the breakdown below drops those, so total_questions
	// can disagree with the scored set. Known, inherited inconsistency.
	score := 0
	for _, aq := range attempt.Questions {
		if aq.Correct {
			score++
		}
	}

	completedAt := s.now()
	if err := s.attemptRepo.UpdateStatus(attempt.ID, model.AttemptCompleted, &completedAt, &score); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("CompleteQuiz: failed to persist completion")
		return nil, fmt.Errorf("error completing attempt: %w", err)
	}

	log.Info().Uint("attemptID", attempt.ID).Int("score", score).Msg("CompleteQuiz: attempt completed")

	results := make([]dto.QuestionResultDTO, 0, len(attempt.Questions))
	for _, aq := range attempt.Questions {
		if aq.Question.ID == 0 {
			continue
		}
		results = append(results, dto.QuestionResultDTO{
			QuestionID:    aq.QuestionID,
			Title:         aq.Question.Title,
			Options:       aq.Question.Options,
			CorrectAnswer: aq.Question.Answer,
			UserAnswer:    aq.Answer,
			Visited:       aq.Visited,
			Correct:       aq.Correct,
		})
	}

	return &dto.CompleteAttemptResponse{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		Score:          score,
		TotalQuestions: len(results),
		CompletedAt:    completedAt,
		Questions:      results,
	}, nil
}

// GetAttempt returns the resume view of an attempt. Touching an overdue
// IN_PROGRESS attempt persists the EXPIRED transition.
func (s *attemptService) GetAttempt(attemptID, userID uint) (*dto.AttemptResponse, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID, "GetAttempt")
	if err != nil {
		return nil, err
	}

	if attempt.Status == model.AttemptInProgress && s.now().After(attempt.ExpiresAt) {
		if err := s.attemptRepo.UpdateStatus(attempt.ID, model.AttemptExpired, nil, nil); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("GetAttempt: failed to persist expiry")
		}
		return nil, model.ErrAttemptExpired
	}

	return s.buildAttemptResponse(attempt, attempt.Status == model.AttemptInProgress), nil
}

func (s *attemptService) loadOwnedAttempt(attemptID, userID uint, op string) (*model.QuizAttempt, error) {
	attempt, err := s.attemptRepo.FindByIDWithQuestions(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("error loading attempt %d: %w", attemptID, err)
	}
	if attempt.UserID != userID {
		// Ownership mismatches are logged as possible integrity probes.
		log.Warn().Str("op", op).Uint("attemptID", attemptID).
			Uint("ownerID", attempt.UserID).Uint("callerID", userID).
			Msg("attempt ownership mismatch")
		return nil, model.ErrForbidden
	}
	return attempt, nil
}

func (s *attemptService) buildAttemptResponse(attempt *model.QuizAttempt, resumed bool) *dto.AttemptResponse {
	return s.buildAttemptResponseWith(attempt, nil, resumed)
}

// buildAttemptResponseWith denormalizes question display content into the
// response without leaking correct answers. questionsByID supplements
// entries whose Question association was not preloaded (fresh creates).
func (s *attemptService) buildAttemptResponseWith(attempt *model.QuizAttempt, questionsByID map[uint]model.Question, resumed bool) *dto.AttemptResponse {
	remaining := int64(attempt.ExpiresAt.Sub(s.now()).Seconds())
	if remaining < 0 || attempt.Status != model.AttemptInProgress {
		remaining = 0
	}

	questions := make([]dto.AttemptQuestionDTO, 0, len(attempt.Questions))
	for _, aq := range attempt.Questions {
		q := aq.Question
		if q.ID == 0 && questionsByID != nil {
			q = questionsByID[aq.QuestionID]
		}
		questions = append(questions, dto.AttemptQuestionDTO{
			QuestionID: aq.QuestionID,
			Title:      q.Title,
			Type:       q.Type,
			Category:   q.Category,
			Options:    q.Options,
			Visited:    aq.Visited,
			Answer:     aq.Answer,
		})
	}

	return &dto.AttemptResponse{
		ID:               attempt.ID,
		QuizID:           attempt.QuizID,
		Status:           attempt.Status,
		StartedAt:        attempt.StartedAt,
		ExpiresAt:        attempt.ExpiresAt,
		RemainingSeconds: remaining,
		Questions:        questions,
		Resumed:          resumed,
	}
}

// answersMatch grades by set equality: same cardinality and every submitted
// value present in the correct set. Order-independent, no partial credit.
func answersMatch(submitted, correct []string) bool {
	correctSet := make(map[string]struct{}, len(correct))
	for _, v := range correct {
		correctSet[v] = struct{}{}
	}
	submittedSet := make(map[string]struct{}, len(submitted))
	for _, v := range submitted {
		submittedSet[v] = struct{}{}
	}
	if len(submittedSet) != len(correctSet) {
		return false
	}
	for v := range submittedSet {
		if _, ok := correctSet[v]; !ok {
			return false
		}
	}
	return true
}
