package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/creat233/idfinder-sub001/internal/handlers"
	"github.com/creat233/idfinder-sub001/internal/middleware"
)

// SetupReportRoutes sets up routes for reported documents and recovery requests
func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler, jwtSecret string) {
	reports := r.Group("/reports")
	{
		// Owners look up and claim items without an account
		reports.GET("/:id", reportHandler.GetReport)
		reports.POST("/:id/recovery", reportHandler.SubmitRecovery)
	}

	authed := r.Group("/reports")
	authed.Use(middleware.AuthRequired(jwtSecret))
	{
		authed.POST("", reportHandler.CreateReport)
		authed.GET("", reportHandler.ListReports)
	}
}
