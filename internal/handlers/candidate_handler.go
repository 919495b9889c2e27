package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/services"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
}

func NewCandidateHandler(base *BaseHandler, candidateService services.CandidateService) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
	}
}

func (h *CandidateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	candidates := rg.Group("/candidates")
	candidates.Use(middleware.AuthMiddleware())
	{
		candidates.GET("", h.ListCandidates)
		candidates.GET("/stats", h.PipelineStats)
		candidates.GET("/:id", h.GetCandidate)
	}

	managed := rg.Group("/candidates")
	managed.Use(middleware.AuthMiddleware())
	managed.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
	{
		managed.POST("", h.CreateCandidate)
		managed.PATCH("/:id", h.UpdateCandidate)
		managed.PUT("/:id/assignee", h.AssignCandidate)
		managed.DELETE("/:id", h.DeleteCandidate)
	}
}

// CreateCandidate accepts a multipart form: candidate fields plus an
// optional "resume" PDF.
func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid form data: "+err.Error()))
		return
	}
	if !h.validateStruct(c, &req) {
		return
	}

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		resumeFile = nil // resume is optional
	}

	candidate, err := h.candidateService.CreateCandidate(companyID, userID, &req, resumeFile)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	candidate, err := h.candidateService.GetCandidate(companyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	var criteria dto.CandidateSearchCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}

	candidates, err := h.candidateService.ListCandidates(companyID, &criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidates)
}

func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	var req dto.UpdateCandidateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	candidate, err := h.candidateService.UpdateCandidate(companyID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) AssignCandidate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AssignCandidateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	candidate, err := h.candidateService.AssignCandidate(companyID, userID, c.Param("id"), req.EmployeeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.candidateService.DeleteCandidate(companyID, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted"})
}

func (h *CandidateHandler) PipelineStats(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	stats, err := h.candidateService.PipelineStats(companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
