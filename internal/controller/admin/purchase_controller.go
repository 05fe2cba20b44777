package admin

import (
	"net/http"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/dto"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PurchaseController struct {
	purchaseService service.PurchaseService
}

func NewPurchaseController(purchaseService service.PurchaseService) *PurchaseController {
	return &PurchaseController{purchaseService: purchaseService}
}

type grantPurchaseRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	QuizID uint `json:"quiz_id" binding:"required"`
}

// GrantPurchase godoc
// @Summary (Admin) Grant a quiz entitlement to a user
// @Tags Admin - Purchases
// @Accept json
// @Produce json
// @Param grant body grantPurchaseRequest true "User and quiz"
// @Success 201 {object} model.Purchase
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /admin/purchases [post]
func (c *PurchaseController) GrantPurchase(ctx *gin.Context) {
	var req grantPurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("GrantPurchase: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	purchase, err := c.purchaseService.Grant(req.UserID, req.QuizID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, purchase)
}
