package routes

import (
	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/handlers"
	"hireflow_backend/internal/logger"
)

// RegisterRoutes registers all HTTP routes under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.CompanyHandler.RegisterRoutes(api)
		appHandlers.CandidateHandler.RegisterRoutes(api)
		appHandlers.InterviewHandler.RegisterRoutes(api)
		appHandlers.JobTemplateHandler.RegisterRoutes(api)
		appHandlers.ImportHandler.RegisterRoutes(api)
		appHandlers.AuditHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}

	logger.Info("HTTP routes registered", "prefix", "/api/v1")
}
