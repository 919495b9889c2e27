package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/services"
)

// AdminHandler exposes operations for system administrators: listing
// tenants and repairing candidate statuses.
type AdminHandler struct {
	*BaseHandler
	companyService  services.CompanyService
	pipelineService services.PipelineService
}

func NewAdminHandler(base *BaseHandler, companyService services.CompanyService, pipelineService services.PipelineService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:     base,
		companyService:  companyService,
		pipelineService: pipelineService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/companies", h.ListCompanies)
		admin.POST("/companies/:id/reconcile", h.ReconcileStatuses)
	}
}

func (h *AdminHandler) ListCompanies(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	companies, err := h.companyService.ListCompanies(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, companies)
}

// ReconcileStatuses scans a tenant's candidates and repairs any whose
// status drifted from their interview history.
func (h *AdminHandler) ReconcileStatuses(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.pipelineService.ReconcileStatuses(c.Param("id"), &userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
