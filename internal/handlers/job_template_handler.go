package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/services"
	"hireflow_backend/internal/services/dto"
)

type JobTemplateHandler struct {
	*BaseHandler
	templateService services.JobTemplateService
}

func NewJobTemplateHandler(base *BaseHandler, templateService services.JobTemplateService) *JobTemplateHandler {
	return &JobTemplateHandler{
		BaseHandler:     base,
		templateService: templateService,
	}
}

func (h *JobTemplateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	templates := rg.Group("/job-templates")
	templates.Use(middleware.AuthMiddleware())
	{
		templates.GET("", h.ListTemplates)
		templates.GET("/:id", h.GetTemplate)
	}

	managed := rg.Group("/job-templates")
	managed.Use(middleware.AuthMiddleware())
	managed.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
	{
		managed.POST("", h.CreateTemplate)
		managed.PATCH("/:id", h.UpdateTemplate)
		managed.DELETE("/:id", h.DeleteTemplate)
	}
}

func (h *JobTemplateHandler) CreateTemplate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	var req dto.CreateJobTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	template, err := h.templateService.CreateTemplate(companyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

func (h *JobTemplateHandler) GetTemplate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(companyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *JobTemplateHandler) ListTemplates(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"

	templates, err := h.templateService.ListTemplates(companyID, activeOnly)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (h *JobTemplateHandler) UpdateTemplate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	template, err := h.templateService.UpdateTemplate(companyID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *JobTemplateHandler) DeleteTemplate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(companyID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job template deleted"})
}
