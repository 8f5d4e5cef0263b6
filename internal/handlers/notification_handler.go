package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/creat233/idfinder-sub001/internal/repositories/interfaces"
	"github.com/creat233/idfinder-sub001/internal/services"
	"github.com/creat233/idfinder-sub001/internal/utils"
	"github.com/creat233/idfinder-sub001/pkg/logger"
)

type NotificationHandler struct {
	notificationService services.NotificationService
	logger              *logger.Logger
}

func NewNotificationHandler(notificationService services.NotificationService, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              log,
	}
}

// ListNotifications handles GET /notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	notifications, total, err := h.notificationService.ListUserNotifications(c.Request.Context(), userID, params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list notifications")
		utils.InternalServerErrorResponse(c)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(notifications),
	}
	utils.SuccessResponseWithMeta(c, "notifications", notifications, meta)
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid notification id")
		return
	}

	if err := h.notificationService.MarkNotificationRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "notification")
			return
		}
		h.logger.WithError(err).Error("Failed to mark notification read")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "notification marked read", nil)
}

// UnreadCount handles GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count unread notifications")
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "unread notifications", gin.H{"count": count})
}
