package admin

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

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// currentAdminID resolves the authoring principal. Temporary: read from the
// X-Admin-ID header or admin_id query until the auth middleware lands.
func currentAdminID(ctx *gin.Context) (uint, bool) {
	raw := ctx.GetHeader("X-Admin-ID")
	if raw == "" {
		raw = ctx.Query("admin_id")
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || val == 0 {
		return 0, false
	}
	return uint(val), true
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrQuizNotFound), errors.Is(err, model.ErrQuestionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// CreateQuestion godoc
// @Summary (Admin) Create a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param admin_id query int true "Admin ID (temporary, until auth middleware)"
// @Param question body dto.CreateQuestionRequest true "Question payload"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	adminID, ok := currentAdminID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid admin identity"})
		return
	}

	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.CreateQuestion(adminID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary (Admin) List own questions
// @Tags Admin - Questions
// @Produce json
// @Param admin_id query int true "Admin ID (temporary, until auth middleware)"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param filter query string false "Question type filter"
// @Param search query string false "Title search"
// @Success 200 {object} dto.AdminQuestionListResponse
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	adminID, ok := currentAdminID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid admin identity"})
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	questions, err := c.questionService.ListQuestions(adminID, ctx.Query("filter"), ctx.Query("search"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetQuestion godoc
// @Summary (Admin) Get a question by id
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Question ID format"})
		return
	}

	question, svcErr := c.questionService.GetQuestion(uint(id))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Edits apply to future grading only; answers already graded into attempts keep their result.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param admin_id query int true "Admin ID (temporary, until auth middleware)"
// @Param question_id path int true "Question ID"
// @Param question body dto.UpdateQuestionRequest true "Question payload"
// @Success 200 {object} dto.AdminQuestionDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	adminID, ok := currentAdminID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or invalid admin identity"})
		return
	}
	id, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Question ID format"})
		return
	}

	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, svcErr := c.questionService.UpdateQuestion(adminID, uint(id), req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Question ID format"})
		return
	}

	if svcErr := c.questionService.DeleteQuestion(uint(id)); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
