package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/creat233/idfinder-sub001/internal/services"
	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"
)

type AdminHandler struct {
	payoutService services.PayoutService
	logger        *logger.Logger
}

func NewAdminHandler(payoutService services.PayoutService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		payoutService: payoutService,
		logger:        log,
	}
}

// ConfirmPayment handles POST /admin/reports/:id/confirm-payment
func (h *AdminHandler) ConfirmPayment(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid item id")
		return
	}

	confirmation, err := h.payoutService.ConfirmPayment(c.Request.Context(), itemID, adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			utils.NotFoundResponse(c, "reported item")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, utils.ErrPaymentNotPending)
		default:
			h.logger.WithError(err).Error("Payment confirmation failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, confirmation.Message, confirmation)
}

// PendingRequests handles GET /admin/reports/pending
func (h *AdminHandler) PendingRequests(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	items, total, err := h.payoutService.PendingRequests(c.Request.Context(), params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list pending recovery requests")
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(items),
	}
	utils.SuccessResponseWithMeta(c, "pending recovery requests", items, meta)
}
