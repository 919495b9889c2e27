package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/services"
	"hireflow_backend/internal/services/dto"
)

// InterviewHandler exposes the pipeline operations: scheduling rounds,
// receiving AI evaluations, recording verdicts.
type InterviewHandler struct {
	*BaseHandler
	pipelineService services.PipelineService
}

func NewInterviewHandler(base *BaseHandler, pipelineService services.PipelineService) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:     base,
		pipelineService: pipelineService,
	}
}

func (h *InterviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	interviews := rg.Group("/interviews")
	interviews.Use(middleware.AuthMiddleware())
	{
		interviews.GET("/:id", h.GetInterview)
		interviews.GET("/:id/report", h.GetReport)
	}

	// Verdicts finalize candidates (including out of terminal statuses), so
	// candidate-role accounts are shut out.
	verdicts := rg.Group("/interviews")
	verdicts.Use(middleware.AuthMiddleware())
	verdicts.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR, models.UserRoleEmployee))
	{
		verdicts.POST("/:id/verdict", h.SubmitVerdict)
	}

	managed := rg.Group("/interviews")
	managed.Use(middleware.AuthMiddleware())
	managed.Use(middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleHR))
	{
		managed.POST("", h.ScheduleInterview)
		managed.POST("/:id/complete", h.CompleteInterview)
		managed.POST("/:id/cancel", h.CancelInterview)
	}

	candidates := rg.Group("/candidates")
	candidates.Use(middleware.AuthMiddleware())
	{
		candidates.GET("/:id/interviews", h.ListCandidateInterviews)
	}
}

func (h *InterviewHandler) ScheduleInterview(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ScheduleInterviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	interview, err := h.pipelineService.ScheduleInterview(companyID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

// CompleteInterview receives the AI evaluation for a round and advances
// the candidate through the pipeline.
func (h *InterviewHandler) CompleteInterview(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	var req dto.AIResultRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.pipelineService.CompleteInterview(companyID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *InterviewHandler) CancelInterview(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	interview, err := h.pipelineService.CancelInterview(companyID, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) SubmitVerdict(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitVerdictRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	verdict, err := h.pipelineService.SubmitVerdict(companyID, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, verdict)
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	interview, err := h.pipelineService.GetInterview(companyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) ListCandidateInterviews(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	interviews, err := h.pipelineService.ListInterviews(companyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interviews)
}

func (h *InterviewHandler) GetReport(c *gin.Context) {
	companyID, ok := h.GetAndAuthorizeCompanyID(c)
	if !ok {
		return
	}

	report, err := h.pipelineService.GetReport(companyID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
