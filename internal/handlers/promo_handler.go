package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/creat233/idfinder-sub001/internal/services"
	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"
)

type PromoHandler struct {
	promoService services.PromoService
	logger       *logger.Logger
}

func NewPromoHandler(promoService services.PromoService, log *logger.Logger) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
		logger:       log,
	}
}

type validateCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateCode handles POST /promo-codes/validate. Dry-run only: nothing
// is recorded, no discount is reserved.
func (h *PromoHandler) ValidateCode(c *gin.Context) {
	var req validateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	code, err := h.promoService.Validate(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromoNotFound), errors.Is(err, services.ErrPromoInactive):
			utils.UnprocessableResponse(c, "PROMO_INVALID", utils.ErrPromoCodeInvalid)
		default:
			h.logger.WithError(err).Error("Promo validation failed")
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "promo code is valid", gin.H{
		"code":       code.Code,
		"expires_at": code.ExpiresAt,
		"discount":   utils.DefaultPromoDiscount,
	})
}

// MyCodes handles GET /promo-codes/mine
func (h *PromoHandler) MyCodes(c *gin.Context) {
	ownerID, ok := getUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	codes, total, err := h.promoService.GetOwnerCodes(c.Request.Context(), ownerID, params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list promo codes")
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(codes),
	}
	utils.SuccessResponseWithMeta(c, "promo codes", codes, meta)
}

// CodeUsages handles GET /promo-codes/:id/usages
func (h *PromoHandler) CodeUsages(c *gin.Context) {
	ownerID, ok := getUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	codeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid promo code id")
		return
	}

	code, err := h.promoService.GetCode(c.Request.Context(), codeID)
	if err != nil {
		if errors.Is(err, services.ErrPromoNotFound) {
			utils.NotFoundResponse(c, "promo code")
			return
		}
		h.logger.WithError(err).Error("Failed to load promo code")
		utils.InternalServerErrorResponse(c)
		return
	}
	if code.OwnerID != ownerID {
		utils.ForbiddenResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	usages, total, err := h.promoService.GetCodeUsages(c.Request.Context(), codeID, params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list promo usages")
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(usages),
	}
	utils.SuccessResponseWithMeta(c, "promo code usages", usages, meta)
}
