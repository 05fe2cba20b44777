package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuizAttemptController struct {
	attemptService     service.AttemptService
	quizService        service.QuizService
	leaderboardService service.LeaderboardService
	reportService      service.ReportService
}

func NewQuizAttemptController(
	attemptService service.AttemptService,
	quizService service.QuizService,
	leaderboardService service.LeaderboardService,
	reportService service.ReportService,
) *QuizAttemptController {
	return &QuizAttemptController{
		attemptService:     attemptService,
		quizService:        quizService,
		leaderboardService: leaderboardService,
		reportService:      reportService,
	}
}

// currentUserID resolves the authenticated principal. Temporary: read from
// the X-User-ID header or user_id query until the auth middleware lands.
func currentUserID(ctx *gin.Context) (uint, bool) {
	raw := ctx.GetHeader("X-User-ID")
	if raw == "" {
		raw = ctx.Query("user_id")
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || val == 0 {
		return 0, false
	}
	return uint(val), true
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(val), true
}

// respondDomainError maps the attempt engine's error taxonomy onto HTTP.
// Anything unrecognized collapses to a generic 500.
func respondDomainError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrQuizNotFound),
		errors.Is(err, model.ErrAttemptNotFound),
		errors.Is(err, model.ErrQuestionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrForbidden),
		errors.Is(err, model.ErrQuizNotPurchased):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrQuestionNotInAttempt):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrInsufficientQuestions):
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, model.ErrAttemptNotActive),
		errors.Is(err, model.ErrAttemptExpired),
		errors.Is(err, model.ErrAlreadyCompleted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// StartQuiz godoc
// @Summary Start or resume a quiz attempt
// @Description Starts a timed attempt with freshly selected questions, or resumes the user's live attempt on this quiz.
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_id query int true "User ID (temporary, until auth middleware)"
// @Success 200 {object} dto.AttemptResponse
// @Failure 403 {object} dto.ErrorResponse "Quiz not purchased"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 422 {object} dto.ErrorResponse "Not enough unseen questions"
// @Router /quizzes/{quiz_id}/start [post]
func (c *QuizAttemptController) StartQuiz(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid user identity"})
		return
	}

	attempt, err := c.attemptService.StartQuiz(userID, quizID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SubmitAnswer godoc
// @Summary Submit an answer for one question of an attempt
// @Description Records the answer, grades it against the correct set, and updates the exposure history. Correct answers are never returned mid-attempt.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query int true "User ID (temporary, until auth middleware)"
// @Param answer body dto.SubmitAnswerRequest true "Question ID and answer value(s)"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse "Question not part of attempt"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt expired or not active"
// @Router /attempts/{attempt_id}/answers [post]
func (c *QuizAttemptController) SubmitAnswer(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid user identity"})
		return
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	answer, err := req.Values()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Answer must be a string or a list of strings"})
		return
	}

	result, err := c.attemptService.SubmitAnswer(attemptID, userID, req.QuestionID, answer)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CompleteQuiz godoc
// @Summary Finalize an attempt and return the scored breakdown
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query int true "User ID (temporary, until auth middleware)"
// @Success 200 {object} dto.CompleteAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Already completed or expired"
// @Router /attempts/{attempt_id}/complete [post]
func (c *QuizAttemptController) CompleteQuiz(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid user identity"})
		return
	}

	result, err := c.attemptService.CompleteQuiz(attemptID, userID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAttempt godoc
// @Summary Get the resume view of an attempt
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query int true "User ID (temporary, until auth middleware)"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt expired"
// @Router /attempts/{attempt_id} [get]
func (c *QuizAttemptController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid user identity"})
		return
	}

	attempt, err := c.attemptService.GetAttempt(attemptID, userID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetLeaderboard godoc
// @Summary Ranked completed attempts for a quiz
// @Tags Leaderboard
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Router /quizzes/{quiz_id}/leaderboard [get]
func (c *QuizAttemptController) GetLeaderboard(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.leaderboardService.Leaderboard(quizID, page, limit)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetReport godoc
// @Summary Detailed report for an attempt
// @Description Completed attempts get percentage, letter grade, pass flag and improvement delta; live attempts get a limited status view.
// @Tags Reports
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query int true "User ID (temporary, until auth middleware)"
// @Success 200 {object} dto.ReportResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/report [get]
func (c *QuizAttemptController) GetReport(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid user identity"})
		return
	}

	report, err := c.reportService.DetailedReport(attemptID, userID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// GetMyAttempts godoc
// @Summary List the caller's attempts on a quiz
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param user_id query int true "User ID (temporary, until auth middleware)"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Router /quizzes/{quiz_id}/my-attempts [get]
func (c *QuizAttemptController) GetMyAttempts(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "quiz_id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Quiz ID format"})
		return
	}
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid user identity"})
		return
	}

	attempts, err := c.reportService.UserAttempts(userID, quizID)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAllQuizzes godoc
// @Summary List active quizzes
// @Tags Quizzes
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.QuizListResponse
// @Router /quizzes [get]
func (c *QuizAttemptController) GetAllQuizzes(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	quizzes, err := c.quizService.ListQuizzes(page, limit)
	if err != nil {
		respondDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}
