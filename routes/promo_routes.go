package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creat233/idfinder-sub001/internal/handlers"
	"github.com/creat233/idfinder-sub001/internal/middleware"
)

// SetupPromoRoutes sets up routes for promo code validation and ownership
func SetupPromoRoutes(r *gin.RouterGroup, promoHandler *handlers.PromoHandler, jwtSecret string) {
	promos := r.Group("/promo-codes")
	{
		// Dry-run validation is open: owners check codes before claiming
		promos.POST("/validate", promoHandler.ValidateCode)
	}

	authed := r.Group("/promo-codes")
	authed.Use(middleware.AuthRequired(jwtSecret))
	{
		authed.GET("/mine", promoHandler.MyCodes)
		authed.GET("/:id/usages", promoHandler.CodeUsages)
	}
}
