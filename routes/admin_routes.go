package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creat233/idfinder-sub001/internal/handlers"
	"github.com/creat233/idfinder-sub001/internal/middleware"
)

// SetupAdminRoutes sets up the operator-only payment confirmation routes
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/reports/pending", adminHandler.PendingRequests)
		admin.POST("/reports/:id/confirm-payment", adminHandler.ConfirmPayment)
	}
}
