package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/creat233/idfinder-sub001/internal/models"
	"github.com/creat233/idfinder-sub001/internal/services"
	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"
)

type ReportHandler struct {
	recoveryService services.RecoveryService
	logger          *logger.Logger
}

func NewReportHandler(recoveryService services.RecoveryService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		recoveryService: recoveryService,
		logger:          log,
	}
}

// CreateReport handles POST /reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	reporterID, ok := getUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var sub models.ReportSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	item, err := h.recoveryService.SubmitReport(c.Request.Context(), reporterID, &sub)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "document reported", item)
}

// ListReports handles GET /reports (the caller's own reports)
func (h *ReportHandler) ListReports(c *gin.Context) {
	reporterID, ok := getUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	items, total, err := h.recoveryService.ListReporterItems(c.Request.Context(), reporterID, params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list reported items")
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(items),
	}
	utils.SuccessResponseWithMeta(c, "reported items", items, meta)
}

// GetReport handles GET /reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid item id")
		return
	}

	item, err := h.recoveryService.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "reported item", item)
}

// SubmitRecovery handles POST /reports/:id/recovery
func (h *ReportHandler) SubmitRecovery(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid item id")
		return
	}

	var sub models.RecoverySubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	result, err := h.recoveryService.SubmitRecovery(c.Request.Context(), itemID, &sub)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "recovery requested", result)
}

func (h *ReportHandler) respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.ValidationErrorResponse(c, validationErr.Details)
	case errors.Is(err, services.ErrItemNotFound):
		utils.NotFoundResponse(c, "reported item")
	case errors.Is(err, services.ErrPromoNotFound), errors.Is(err, services.ErrPromoInactive):
		// Unknown and unusable codes look identical to the caller.
		utils.UnprocessableResponse(c, "PROMO_INVALID", utils.ErrPromoCodeInvalid)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, "item is not in a state that allows this operation")
	default:
		h.logger.WithError(err).Error("Report request failed")
		utils.InternalServerErrorResponse(c)
	}
}

func getUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	userID, ok := raw.(primitive.ObjectID)
	return userID, ok
}
