package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/services"
	"hireflow_backend/pkg/apperrors"
)

type ImportHandler struct {
	*BaseHandler
	importService services.ImportService
}

func NewImportHandler(base *BaseHandler, importService services.ImportService) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   base,
		importService: importService,
	}
}

func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/imports")
	imports.Use(middleware.AuthMiddleware())
	imports.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
	{
		imports.POST("", h.UploadImport)
		imports.GET("", h.ListImports)
		imports.GET("/:id", h.GetImport)
	}
}

// UploadImport accepts a multipart form with a "file" xlsx and an optional
// "job_template_id" applied to every imported candidate.
func (h *ImportHandler) UploadImport(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing import file"))
		return
	}

	var jobTemplateID *string
	if v := c.PostForm("job_template_id"); v != "" {
		jobTemplateID = &v
	}

	job, err := h.importService.EnqueueImport(companyID, userID, jobTemplateID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

func (h *ImportHandler) GetImport(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	job, err := h.importService.GetJob(companyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *ImportHandler) ListImports(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	jobs, err := h.importService.ListJobs(companyID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}
