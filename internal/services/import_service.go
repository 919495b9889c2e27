package services

import (
	"fmt"
	"mime/multipart"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"hireflow_backend/internal/config"
	"hireflow_backend/internal/email"
	"hireflow_backend/internal/logger"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

// ImportService handles bulk candidate imports from xlsx files. The upload
// handler enqueues a job; a worker picks it up and walks the rows.
type ImportService interface {
	EnqueueImport(companyID, actorID string, jobTemplateID *string, file *multipart.FileHeader) (*dto.ImportJobResponse, error)
	GetJob(companyID, jobID string) (*dto.ImportJobResponse, error)
	ListJobs(companyID string, page, pageSize int) (*dto.ImportJobListResponse, error)

	// ProcessJob runs one queued job to completion. Called by the worker.
	ProcessJob(jobID string) error
}

// ImportQueue is the handoff between the enqueuing handler and the worker.
type ImportQueue interface {
	Enqueue(jobID string) bool
}

type ImportServiceImpl struct {
	importRepo    repositories.ImportRepository
	candidateRepo repositories.CandidateRepository
	templateRepo  repositories.JobTemplateRepository
	auditRepo     repositories.AuditRepository
	userRepo      repositories.UserRepository
	emailProvider email.Provider
	queue         ImportQueue
	uploadDir     string
}

func NewImportService(
	importRepo repositories.ImportRepository,
	candidateRepo repositories.CandidateRepository,
	templateRepo repositories.JobTemplateRepository,
	auditRepo repositories.AuditRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	uploadDir string,
) *ImportServiceImpl {
	return &ImportServiceImpl{
		importRepo:    importRepo,
		candidateRepo: candidateRepo,
		templateRepo:  templateRepo,
		auditRepo:     auditRepo,
		userRepo:      userRepo,
		emailProvider: emailProvider,
		uploadDir:     uploadDir,
	}
}

// SetQueue wires the worker queue in after construction; the worker needs
// the service and the service needs the queue.
func (s *ImportServiceImpl) SetQueue(queue ImportQueue) {
	s.queue = queue
}

// EnqueueImport stores the uploaded xlsx and queues a job for the worker.
func (s *ImportServiceImpl) EnqueueImport(companyID, actorID string, jobTemplateID *string, file *multipart.FileHeader) (*dto.ImportJobResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".xlsx" {
		return nil, apperrors.NewBadRequestError("Only .xlsx files are accepted")
	}

	if jobTemplateID != nil {
		template, err := s.templateRepo.FindByID(*jobTemplateID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrJobTemplateNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if template.CompanyID != companyID {
			return nil, apperrors.ErrTenantMismatch("job_template")
		}
	}

	dir := filepath.Join(s.uploadDir, companyID, "imports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.InternalError(err)
	}
	storedPath := filepath.Join(dir, fmt.Sprintf("%s.xlsx", uuid.NewString()))

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	out, err := os.Create(storedPath)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := out.ReadFrom(src); err != nil {
		out.Close()
		os.Remove(storedPath)
		return nil, apperrors.InternalError(err)
	}
	out.Close()

	job := &models.ImportJob{
		CompanyID:     companyID,
		CreatedByID:   actorID,
		FileName:      file.Filename,
		FilePath:      storedPath,
		Status:        models.ImportJobStatusPending,
		JobTemplateID: jobTemplateID,
	}
	if err := s.importRepo.Create(job); err != nil {
		os.Remove(storedPath)
		return nil, apperrors.InternalError(err)
	}

	if s.queue == nil || !s.queue.Enqueue(job.ID) {
		_ = s.importRepo.MarkFinished(job.ID, models.ImportJobStatusFailed, 0, 0, 0,
			[]repositories.ImportRowError{{Row: 0, Reason: "import queue is full"}})
		return nil, apperrors.ErrConflict(nil, "import", "Import queue is full, try again later")
	}

	return buildImportJobResponse(job), nil
}

func (s *ImportServiceImpl) GetJob(companyID, jobID string) (*dto.ImportJobResponse, error) {
	job, err := s.importRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrImportJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch("import_job")
	}
	return buildImportJobResponse(job), nil
}

func (s *ImportServiceImpl) ListJobs(companyID string, page, pageSize int) (*dto.ImportJobListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	jobs, total, err := s.importRepo.FindByCompany(companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ImportJobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildImportJobResponse(&jobs[i]))
	}
	return &dto.ImportJobListResponse{
		Jobs:       responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

// ProcessJob walks the xlsx rows, inserting one candidate per valid row and
// counting failures. Row numbers in errors are 1-based as seen in the file.
func (s *ImportServiceImpl) ProcessJob(jobID string) error {
	job, err := s.importRepo.FindByID(jobID)
	if err != nil {
		return err
	}
	if job.Status != models.ImportJobStatusPending {
		logger.Warn("import job is not pending, skipping", "job_id", jobID, "status", string(job.Status))
		return nil
	}

	if err := s.importRepo.MarkRunning(jobID); err != nil {
		return err
	}

	total, success, rowErrors, err := s.importRows(job)
	status := models.ImportJobStatusCompleted
	if err != nil {
		status = models.ImportJobStatusFailed
		rowErrors = append(rowErrors, repositories.ImportRowError{Row: 0, Reason: err.Error()})
	}

	if err := s.importRepo.MarkFinished(jobID, status, total, success, len(rowErrors), rowErrors); err != nil {
		return err
	}

	if err := s.auditRepo.AppendAction(job.CompanyID, &job.CreatedByID, models.AuditImportCompleted,
		"import_job", jobID, map[string]interface{}{
			"file":    job.FileName,
			"total":   total,
			"success": success,
			"failed":  len(rowErrors),
		}); err != nil {
		logger.WithError(err).Warn("audit append failed", "job_id", jobID)
	}

	s.notifyCreator(job, total, success, len(rowErrors))
	return nil
}

// importRows reads the sheet. Expected columns: name, email, phone. A
// header row matching those labels is skipped.
func (s *ImportServiceImpl) importRows(job *models.ImportJob) (total, success int, rowErrors []repositories.ImportRowError, err error) {
	f, err := excelize.OpenFile(job.FilePath)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, 0, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, 0, nil, fmt.Errorf("read rows: %w", err)
	}

	maxRows := config.GetConfig().Import.MaxRows
	seen := make(map[string]bool)

	for i, row := range rows {
		rowNum := i + 1
		if i == 0 && isHeaderRow(row) {
			continue
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		total++
		if total > maxRows {
			rowErrors = append(rowErrors, repositories.ImportRowError{
				Row: rowNum, Reason: fmt.Sprintf("row limit of %d exceeded", maxRows),
			})
			break
		}

		name, emailAddr, phone := cell(row, 0), cell(row, 1), cell(row, 2)
		if reason := validateImportRow(name, emailAddr); reason != "" {
			rowErrors = append(rowErrors, repositories.ImportRowError{Row: rowNum, Reason: reason})
			continue
		}
		if seen[emailAddr] {
			rowErrors = append(rowErrors, repositories.ImportRowError{Row: rowNum, Reason: "duplicate email in file"})
			continue
		}
		seen[emailAddr] = true

		if _, err := s.candidateRepo.FindByEmail(job.CompanyID, emailAddr); err == nil {
			rowErrors = append(rowErrors, repositories.ImportRowError{Row: rowNum, Reason: "candidate already exists"})
			continue
		}

		candidate := &models.Candidate{
			CompanyID:     job.CompanyID,
			Name:          name,
			Email:         emailAddr,
			Phone:         phone,
			Status:        models.CandidateStatusUploaded,
			JobTemplateID: job.JobTemplateID,
		}
		if err := s.candidateRepo.Create(candidate); err != nil {
			rowErrors = append(rowErrors, repositories.ImportRowError{Row: rowNum, Reason: "insert failed"})
			logger.WithError(err).Warn("import row insert failed", "job_id", job.ID, "row", rowNum)
			continue
		}
		success++
	}

	return total, success, rowErrors, nil
}

func (s *ImportServiceImpl) notifyCreator(job *models.ImportJob, total, success, failed int) {
	creator, err := s.userRepo.FindByID(job.CreatedByID)
	if err != nil {
		return
	}
	go func() {
		sendErr := s.emailProvider.SendTemplate([]string{creator.Email},
			"Candidate import finished", email.TemplateImportJobCompleted,
			email.TemplateData{
				"FileName":     job.FileName,
				"TotalRows":    total,
				"SuccessCount": success,
				"FailureCount": failed,
			})
		if sendErr != nil {
			logger.WithError(sendErr).Warn("import notification failed", "job_id", job.ID)
		}
	}()
}

// --- helpers ---

func validateImportRow(name, emailAddr string) string {
	if name == "" {
		return "name is required"
	}
	if len(name) < 2 || len(name) > 200 {
		return "name must be 2..200 characters"
	}
	if emailAddr == "" {
		return "email is required"
	}
	if _, err := mail.ParseAddress(emailAddr); err != nil {
		return "invalid email"
	}
	return ""
}

func isHeaderRow(row []string) bool {
	if len(row) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	second := strings.ToLower(strings.TrimSpace(row[1]))
	return first == "name" && second == "email"
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func buildImportJobResponse(job *models.ImportJob) *dto.ImportJobResponse {
	var rowErrors []dto.ImportRowErrorDTO
	fromJSON(job.Errors, &rowErrors)
	return &dto.ImportJobResponse{
		ID:           job.ID,
		CompanyID:    job.CompanyID,
		FileName:     job.FileName,
		Status:       job.Status,
		TotalRows:    job.TotalRows,
		SuccessCount: job.SuccessCount,
		FailureCount: job.FailureCount,
		Errors:       rowErrors,
		StartedAt:    job.StartedAt,
		FinishedAt:   job.FinishedAt,
		CreatedAt:    job.CreatedAt,
	}
}
