package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hireflow_backend/internal/config"
	"hireflow_backend/internal/logger"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/resume"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

type CandidateService interface {
	CreateCandidate(companyID, actorID string, req *dto.CreateCandidateRequest, resumeFile *multipart.FileHeader) (*dto.CandidateResponse, error)
	GetCandidate(companyID, candidateID string) (*dto.CandidateResponse, error)
	ListCandidates(companyID string, criteria *dto.CandidateSearchCriteria) (*dto.CandidateListResponse, error)
	UpdateCandidate(companyID, candidateID string, req *dto.UpdateCandidateRequest) (*dto.CandidateResponse, error)
	AssignCandidate(companyID, actorID, candidateID string, employeeID *string) (*dto.CandidateResponse, error)
	DeleteCandidate(companyID, actorID, candidateID string) error
	PipelineStats(companyID string) (*dto.PipelineStatsResponse, error)
}

type CandidateServiceImpl struct {
	candidateRepo repositories.CandidateRepository
	userRepo      repositories.UserRepository
	templateRepo  repositories.JobTemplateRepository
	auditRepo     repositories.AuditRepository
	uploadDir     string
}

func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	userRepo repositories.UserRepository,
	templateRepo repositories.JobTemplateRepository,
	auditRepo repositories.AuditRepository,
	uploadDir string,
) CandidateService {
	return &CandidateServiceImpl{
		candidateRepo: candidateRepo,
		userRepo:      userRepo,
		templateRepo:  templateRepo,
		auditRepo:     auditRepo,
		uploadDir:     uploadDir,
	}
}

// CreateCandidate stores the candidate with the uploaded resume. Text is
// extracted from the PDF so later scoring has something to read.
func (s *CandidateServiceImpl) CreateCandidate(companyID, actorID string, req *dto.CreateCandidateRequest, resumeFile *multipart.FileHeader) (*dto.CandidateResponse, error) {
	if _, err := s.candidateRepo.FindByEmail(companyID, req.Email); err == nil {
		return nil, apperrors.ErrAlreadyExists(repositories.ErrCandidateAlreadyExists)
	}

	if req.JobTemplateID != nil {
		if err := s.checkTemplateOwnership(companyID, *req.JobTemplateID); err != nil {
			return nil, err
		}
	}

	candidate := &models.Candidate{
		CompanyID:     companyID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Status:        models.CandidateStatusUploaded,
		JobTemplateID: req.JobTemplateID,
	}

	if resumeFile != nil {
		storedPath, err := s.storeResume(companyID, resumeFile)
		if err != nil {
			return nil, err
		}
		candidate.ResumeFileName = resumeFile.Filename

		text, err := resume.ExtractText(storedPath)
		if err != nil {
			// A scanned or malformed PDF is not fatal; the candidate
			// just has no searchable resume text.
			logger.WithError(err).Warn("resume text extraction failed",
				"file", resumeFile.Filename)
		} else {
			candidate.ResumeText = text
		}
	}

	if err := s.candidateRepo.Create(candidate); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.auditRepo.AppendAction(companyID, &actorID, models.AuditCandidateCreated,
		"candidate", candidate.ID, map[string]interface{}{
			"email": candidate.Email,
		}); err != nil {
		logger.WithError(err).Warn("audit append failed", "candidate_id", candidate.ID)
	}

	return buildCandidateResponse(candidate), nil
}

func (s *CandidateServiceImpl) GetCandidate(companyID, candidateID string) (*dto.CandidateResponse, error) {
	candidate, err := s.findCompanyCandidate(companyID, candidateID)
	if err != nil {
		return nil, err
	}
	return buildCandidateResponse(candidate), nil
}

func (s *CandidateServiceImpl) ListCandidates(companyID string, criteria *dto.CandidateSearchCriteria) (*dto.CandidateListResponse, error) {
	filter := repositories.CandidateFilter{
		CompanyID:          companyID,
		Status:             models.CandidateStatus(criteria.Status),
		JobTemplateID:      criteria.JobTemplateID,
		AssignedEmployeeID: criteria.AssignedTo,
		Search:             criteria.Search,
		Page:               criteria.Page,
		PageSize:           criteria.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	candidates, total, err := s.candidateRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		responses = append(responses, buildCandidateResponse(&candidates[i]))
	}

	return &dto.CandidateListResponse{
		Candidates: responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *CandidateServiceImpl) UpdateCandidate(companyID, candidateID string, req *dto.UpdateCandidateRequest) (*dto.CandidateResponse, error) {
	candidate, err := s.findCompanyCandidate(companyID, candidateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Phone != nil {
		candidate.Phone = *req.Phone
	}
	if req.JobTemplateID != nil {
		if err := s.checkTemplateOwnership(companyID, *req.JobTemplateID); err != nil {
			return nil, err
		}
		candidate.JobTemplateID = req.JobTemplateID
	}

	if err := s.candidateRepo.Update(candidate); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCandidateResponse(candidate), nil
}

// AssignCandidate hands the candidate to an employee. Assignment moves a
// freshly uploaded candidate to assigned; unassigning an assigned
// candidate moves them back.
func (s *CandidateServiceImpl) AssignCandidate(companyID, actorID, candidateID string, employeeID *string) (*dto.CandidateResponse, error) {
	candidate, err := s.findCompanyCandidate(companyID, candidateID)
	if err != nil {
		return nil, err
	}

	if employeeID != nil {
		employee, err := s.userRepo.FindByID(*employeeID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if employee.CompanyID != companyID {
			return nil, apperrors.ErrTenantMismatch("user")
		}
	}

	if err := s.candidateRepo.Assign(candidateID, employeeID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	candidate.AssignedEmployeeID = employeeID

	newStatus := candidate.Status
	if employeeID != nil && candidate.Status == models.CandidateStatusUploaded {
		newStatus = models.CandidateStatusAssigned
	} else if employeeID == nil && candidate.Status == models.CandidateStatusAssigned {
		newStatus = models.CandidateStatusUploaded
	}
	if newStatus != candidate.Status {
		if err := s.candidateRepo.UpdateStatus(candidateID, newStatus); err != nil {
			return nil, apperrors.InternalError(err)
		}
		logger.PipelineLog(candidateID, string(candidate.Status), string(newStatus), "assignment")
		candidate.Status = newStatus
	}

	if err := s.auditRepo.AppendAction(companyID, &actorID, models.AuditCandidateAssigned,
		"candidate", candidateID, map[string]interface{}{
			"employee_id": employeeID,
		}); err != nil {
		logger.WithError(err).Warn("audit append failed", "candidate_id", candidateID)
	}

	return buildCandidateResponse(candidate), nil
}

func (s *CandidateServiceImpl) DeleteCandidate(companyID, actorID, candidateID string) error {
	candidate, err := s.findCompanyCandidate(companyID, candidateID)
	if err != nil {
		return err
	}

	if err := s.candidateRepo.Delete(candidateID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.auditRepo.AppendAction(companyID, &actorID, models.AuditCandidateDeleted,
		"candidate", candidateID, map[string]interface{}{
			"email": candidate.Email,
		}); err != nil {
		logger.WithError(err).Warn("audit append failed", "candidate_id", candidateID)
	}
	return nil
}

func (s *CandidateServiceImpl) PipelineStats(companyID string) (*dto.PipelineStatsResponse, error) {
	counts, err := s.candidateRepo.CountByStatus(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.PipelineStatsResponse{
		CompanyID: companyID,
		Counts:    make(map[string]int64, len(counts)),
	}
	for status, count := range counts {
		resp.Counts[string(status)] = count
		resp.Total += count
	}
	return resp, nil
}

// --- helpers ---

func (s *CandidateServiceImpl) findCompanyCandidate(companyID, candidateID string) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.FindByID(candidateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCandidateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if candidate.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch("candidate")
	}
	return candidate, nil
}

func (s *CandidateServiceImpl) checkTemplateOwnership(companyID, templateID string) error {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobTemplateNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if template.CompanyID != companyID {
		return apperrors.ErrTenantMismatch("job_template")
	}
	return nil
}

// storeResume writes the upload under uploadDir/<companyID>/ with a random
// name and returns the stored path.
func (s *CandidateServiceImpl) storeResume(companyID string, fileHeader *multipart.FileHeader) (string, error) {
	cfg := config.GetConfig()
	if fileHeader.Size > cfg.Upload.MaxResumeSize {
		return "", apperrors.NewBadRequestError("Resume file is too large")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return "", apperrors.NewBadRequestError("Only PDF resumes are accepted")
	}

	dir := filepath.Join(s.uploadDir, companyID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.InternalError(err)
	}

	dst := filepath.Join(dir, fmt.Sprintf("%s.pdf", uuid.NewString()))
	src, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		os.Remove(dst)
		return "", apperrors.InternalError(err)
	}
	return dst, nil
}

func buildCandidateResponse(candidate *models.Candidate) *dto.CandidateResponse {
	resp := &dto.CandidateResponse{
		ID:                 candidate.ID,
		CompanyID:          candidate.CompanyID,
		Name:               candidate.Name,
		Email:              candidate.Email,
		Phone:              candidate.Phone,
		Status:             candidate.Status,
		JobTemplateID:      candidate.JobTemplateID,
		AssignedEmployeeID: candidate.AssignedEmployeeID,
		ResumeFileName:     candidate.ResumeFileName,
		CreatedAt:          candidate.CreatedAt,
		UpdatedAt:          candidate.UpdatedAt,
	}
	if candidate.JobTemplate != nil {
		resp.JobTitle = candidate.JobTemplate.Title
	}
	return resp
}
