package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/config"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"gorm.io/gorm"
)

// In-memory fakes implementing the repository interfaces. The attempt fake
// enforces the same one-live-attempt-per-(user,quiz) constraint the partial
// unique index provides in postgres.

type fakeQuizRepo struct {
	quizzes map[uint]model.Quiz
	err     error
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[uint]model.Quiz)}
}

func (f *fakeQuizRepo) FindByID(id uint) (*model.Quiz, error) {
	if f.err != nil {
		return nil, f.err
	}
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &quiz, nil
}

func (f *fakeQuizRepo) FindAllActive(offset, limit int) ([]model.Quiz, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	var active []model.Quiz
	for _, quiz := range f.quizzes {
		if quiz.IsActive {
			active = append(active, quiz)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	total := int64(len(active))
	if offset >= len(active) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], total, nil
}

type fakeQuestionRepo struct {
	questions map[uint]model.Question
	nextID    uint
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uint]model.Question), nextID: 1}
}

func (f *fakeQuestionRepo) Create(question *model.Question) error {
	question.ID = f.nextID
	f.nextID++
	f.questions[question.ID] = *question
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	question, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &question, nil
}

func (f *fakeQuestionRepo) FindByIDs(ids []uint) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		if question, ok := f.questions[id]; ok {
			out = append(out, question)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) FindActiveByQuizID(quizID uint) ([]model.Question, error) {
	var out []model.Question
	for _, question := range f.questions {
		if question.QuizID == quizID && question.IsActive {
			out = append(out, question)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeQuestionRepo) FindByAdmin(adminID uint, typeFilter, search string, offset, limit int) ([]model.Question, int64, error) {
	var out []model.Question
	for _, question := range f.questions {
		if question.CreatedBy == adminID && question.IsActive {
			out = append(out, question)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeQuestionRepo) Update(question *model.Question) error {
	f.questions[question.ID] = *question
	return nil
}

func (f *fakeQuestionRepo) Delete(id uint) error {
	delete(f.questions, id)
	return nil
}

type fakeAttemptRepo struct {
	attempts  map[uint]model.QuizAttempt
	questions *fakeQuestionRepo // emulates the Questions.Question preload
	nextID    uint
	nextAQID  uint
}

func newFakeAttemptRepo(questions *fakeQuestionRepo) *fakeAttemptRepo {
	return &fakeAttemptRepo{
		attempts:  make(map[uint]model.QuizAttempt),
		questions: questions,
		nextID:    1,
		nextAQID:  1,
	}
}

func (f *fakeAttemptRepo) Create(attempt *model.QuizAttempt) error {
	for _, existing := range f.attempts {
		if existing.UserID == attempt.UserID && existing.QuizID == attempt.QuizID &&
			existing.Status == model.AttemptInProgress {
			return gorm.ErrDuplicatedKey
		}
	}
	attempt.ID = f.nextID
	f.nextID++
	for i := range attempt.Questions {
		attempt.Questions[i].ID = f.nextAQID
		attempt.Questions[i].AttemptID = attempt.ID
		f.nextAQID++
	}
	f.attempts[attempt.ID] = *attempt
	return nil
}

func (f *fakeAttemptRepo) load(attempt model.QuizAttempt) *model.QuizAttempt {
	questions := make([]model.AttemptQuestion, len(attempt.Questions))
	copy(questions, attempt.Questions)
	for i := range questions {
		if question, ok := f.questions.questions[questions[i].QuestionID]; ok {
			questions[i].Question = question
		} else {
			questions[i].Question = model.Question{}
		}
	}
	attempt.Questions = questions
	return &attempt
}

func (f *fakeAttemptRepo) FindByIDWithQuestions(id uint) (*model.QuizAttempt, error) {
	attempt, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.load(attempt), nil
}

func (f *fakeAttemptRepo) FindInProgress(userID, quizID uint) (*model.QuizAttempt, error) {
	for _, attempt := range f.attempts {
		if attempt.UserID == userID && attempt.QuizID == quizID && attempt.Status == model.AttemptInProgress {
			return f.load(attempt), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) SaveAnswer(attemptID, questionID uint, answer []string, correct bool) error {
	attempt, ok := f.attempts[attemptID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range attempt.Questions {
		if attempt.Questions[i].QuestionID == questionID {
			attempt.Questions[i].Answer = answer
			attempt.Questions[i].Visited = true
			attempt.Questions[i].Correct = correct
			f.attempts[attemptID] = attempt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) UpdateStatus(id uint, status string, completedAt *time.Time, score *int) error {
	attempt, ok := f.attempts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	attempt.Status = status
	if completedAt != nil {
		t := *completedAt
		attempt.CompletedAt = &t
	}
	if score != nil {
		attempt.Score = *score
	}
	f.attempts[id] = attempt
	return nil
}

func (f *fakeAttemptRepo) FindCompletedByQuiz(quizID uint, offset, limit int) ([]model.QuizAttempt, error) {
	var completed []model.QuizAttempt
	for _, attempt := range f.attempts {
		if attempt.QuizID == quizID && attempt.Status == model.AttemptCompleted {
			completed = append(completed, *f.load(attempt))
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		if completed[i].Score != completed[j].Score {
			return completed[i].Score > completed[j].Score
		}
		return completed[i].CompletedAt.Before(*completed[j].CompletedAt)
	})
	if offset >= len(completed) {
		return nil, nil
	}
	end := offset + limit
	if end > len(completed) {
		end = len(completed)
	}
	return completed[offset:end], nil
}

func (f *fakeAttemptRepo) FindCompletedByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var completed []model.QuizAttempt
	for _, attempt := range f.attempts {
		if attempt.UserID == userID && attempt.QuizID == quizID && attempt.Status == model.AttemptCompleted {
			completed = append(completed, *f.load(attempt))
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].CompletedAt.Before(*completed[j].CompletedAt)
	})
	return completed, nil
}

func (f *fakeAttemptRepo) FindAllByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, attempt := range f.attempts {
		if attempt.UserID == userID && attempt.QuizID == quizID {
			out = append(out, *f.load(attempt))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

type fakeHistoryRepo struct {
	records map[string]model.QuestionHistory
	err     error
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{records: make(map[string]model.QuestionHistory)}
}

func historyKey(userID, quizID, questionID uint) string {
	return fmt.Sprintf("%d/%d/%d", userID, quizID, questionID)
}

func (f *fakeHistoryRepo) Upsert(record *model.QuestionHistory) error {
	if f.err != nil {
		return f.err
	}
	f.records[historyKey(record.UserID, record.QuizID, record.QuestionID)] = *record
	return nil
}

func (f *fakeHistoryRepo) FindQuestionIDs(userID, quizID uint) ([]uint, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []uint
	for _, record := range f.records {
		if record.UserID == userID && record.QuizID == quizID {
			ids = append(ids, record.QuestionID)
		}
	}
	return ids, nil
}

type fakePurchaseRepo struct {
	success map[[2]uint]bool
	err     error
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{success: make(map[[2]uint]bool)}
}

func (f *fakePurchaseRepo) Create(purchase *model.Purchase) error {
	if f.err != nil {
		return f.err
	}
	if purchase.Status == model.PurchaseSuccess {
		f.success[[2]uint{purchase.UserID, purchase.QuizID}] = true
	}
	return nil
}

func (f *fakePurchaseRepo) HasSuccessfulPurchase(userID, quizID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.success[[2]uint{userID, quizID}], nil
}

// testEnv wires the attempt service over the fakes with a controllable clock.
type testEnv struct {
	quizzes   *fakeQuizRepo
	questions *fakeQuestionRepo
	attempts  *fakeAttemptRepo
	history   *fakeHistoryRepo
	purchases *fakePurchaseRepo
	now       time.Time
	svc       AttemptService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		quizzes:   newFakeQuizRepo(),
		questions: newFakeQuestionRepo(),
		history:   newFakeHistoryRepo(),
		purchases: newFakePurchaseRepo(),
		now:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	env.attempts = newFakeAttemptRepo(env.questions)

	cfg := &config.Config{}
	cfg.Quiz.AttemptQuestionCount = 10
	cfg.Quiz.AttemptDurationHours = 24

	access := NewAccessService(env.quizzes, env.purchases)
	env.svc = NewAttemptServiceWithClock(
		env.quizzes, env.questions, env.attempts, env.history, access, cfg,
		func() time.Time { return env.now },
	)
	return env
}

func (e *testEnv) addQuiz(id uint, price int64) {
	e.quizzes.quizzes[id] = model.Quiz{ID: id, Title: fmt.Sprintf("Quiz %d", id), Price: price, IsActive: true}
}

// addQuestions seeds n single-answer questions on the quiz, each with options
// A-D and correct answer "A". Returns the created ids.
func (e *testEnv) addQuestions(quizID uint, n int) []uint {
	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		question := &model.Question{
			QuizID:      quizID,
			Title:       fmt.Sprintf("Question %d", i+1),
			Type:        "single_choice",
			Options:     []string{"A", "B", "C", "D"},
			Answer:      []string{"A"},
			IsActive:    true,
			QuestionFor: model.QuestionForFree,
		}
		e.questions.Create(question)
		ids = append(ids, question.ID)
	}
	return ids
}
