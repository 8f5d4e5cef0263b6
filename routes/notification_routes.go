package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creat233/idfinder-sub001/internal/handlers"
	"github.com/creat233/idfinder-sub001/internal/middleware"
)

// SetupNotificationRoutes sets up the in-app notification inbox routes
func SetupNotificationRoutes(r *gin.RouterGroup, notificationHandler *handlers.NotificationHandler, jwtSecret string) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthRequired(jwtSecret))
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}
}
