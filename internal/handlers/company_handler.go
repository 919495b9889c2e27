package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/services"
	"hireflow_backend/internal/services/dto"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	company := rg.Group("/company")
	company.Use(middleware.AuthMiddleware())
	{
		company.GET("", h.GetCompany)
		company.GET("/ai-config", h.GetAIConfig)
	}

	managed := rg.Group("/company")
	managed.Use(middleware.AuthMiddleware())
	managed.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
	{
		managed.PATCH("", h.UpdateCompany)
		managed.PUT("/ai-config", h.UpdateAIConfig)
	}
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompany(companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.UpdateCompany(companyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) GetAIConfig(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	config, err := h.companyService.GetAIConfig(companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}

func (h *CompanyHandler) UpdateAIConfig(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAIConfigRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	config, err := h.companyService.UpdateAIConfig(companyID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}
