package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/services"
	"hireflow_backend/internal/services/dto"
)

type AuditHandler struct {
	*BaseHandler
	auditService services.AuditService
}

func NewAuditHandler(base *BaseHandler, auditService services.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler:  base,
		auditService: auditService,
	}
}

func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit-logs")
	audit.Use(middleware.AuthMiddleware())
	audit.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
	{
		audit.GET("", h.ListEntries)
	}
}

func (h *AuditHandler) ListEntries(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	var criteria dto.AuditSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	entries, err := h.auditService.ListEntries(companyID, &criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
