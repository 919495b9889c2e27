package services

import (
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

type JobTemplateService interface {
	CreateTemplate(companyID string, req *dto.CreateJobTemplateRequest) (*dto.JobTemplateResponse, error)
	GetTemplate(companyID, templateID string) (*dto.JobTemplateResponse, error)
	ListTemplates(companyID string, activeOnly bool) ([]*dto.JobTemplateResponse, error)
	UpdateTemplate(companyID, templateID string, req *dto.UpdateJobTemplateRequest) (*dto.JobTemplateResponse, error)
	DeleteTemplate(companyID, templateID string) error
}

type JobTemplateServiceImpl struct {
	templateRepo repositories.JobTemplateRepository
}

func NewJobTemplateService(templateRepo repositories.JobTemplateRepository) JobTemplateService {
	return &JobTemplateServiceImpl{templateRepo: templateRepo}
}

func (s *JobTemplateServiceImpl) CreateTemplate(companyID string, req *dto.CreateJobTemplateRequest) (*dto.JobTemplateResponse, error) {
	if _, err := s.templateRepo.FindByTitle(companyID, req.Title); err == nil {
		return nil, apperrors.ErrAlreadyExists(repositories.ErrJobTemplateAlreadyExists)
	}

	template := &models.JobTemplate{
		CompanyID:     companyID,
		Title:         req.Title,
		Description:   req.Description,
		Requirements:  toJSON(req.Requirements),
		MinExperience: req.MinExperience,
		IsActive:      true,
	}
	if err := s.templateRepo.Create(template); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobTemplateResponse(template), nil
}

func (s *JobTemplateServiceImpl) GetTemplate(companyID, templateID string) (*dto.JobTemplateResponse, error) {
	template, err := s.findCompanyTemplate(companyID, templateID)
	if err != nil {
		return nil, err
	}
	return buildJobTemplateResponse(template), nil
}

func (s *JobTemplateServiceImpl) ListTemplates(companyID string, activeOnly bool) ([]*dto.JobTemplateResponse, error) {
	templates, err := s.templateRepo.FindByCompany(companyID, activeOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]*dto.JobTemplateResponse, 0, len(templates))
	for i := range templates {
		responses = append(responses, buildJobTemplateResponse(&templates[i]))
	}
	return responses, nil
}

func (s *JobTemplateServiceImpl) UpdateTemplate(companyID, templateID string, req *dto.UpdateJobTemplateRequest) (*dto.JobTemplateResponse, error) {
	template, err := s.findCompanyTemplate(companyID, templateID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != template.Title {
		if _, err := s.templateRepo.FindByTitle(companyID, *req.Title); err == nil {
			return nil, apperrors.ErrAlreadyExists(repositories.ErrJobTemplateAlreadyExists)
		}
		template.Title = *req.Title
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.Requirements != nil {
		template.Requirements = toJSON(req.Requirements)
	}
	if req.MinExperience != nil {
		template.MinExperience = *req.MinExperience
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.templateRepo.Update(template); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildJobTemplateResponse(template), nil
}

func (s *JobTemplateServiceImpl) DeleteTemplate(companyID, templateID string) error {
	if _, err := s.findCompanyTemplate(companyID, templateID); err != nil {
		return err
	}
	if err := s.templateRepo.Delete(templateID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobTemplateServiceImpl) findCompanyTemplate(companyID, templateID string) (*models.JobTemplate, error) {
	template, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobTemplateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if template.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch("job_template")
	}
	return template, nil
}

func buildJobTemplateResponse(template *models.JobTemplate) *dto.JobTemplateResponse {
	var requirements []string
	fromJSON(template.Requirements, &requirements)
	return &dto.JobTemplateResponse{
		ID:            template.ID,
		CompanyID:     template.CompanyID,
		Title:         template.Title,
		Description:   template.Description,
		Requirements:  requirements,
		MinExperience: template.MinExperience,
		IsActive:      template.IsActive,
		CreatedAt:     template.CreatedAt,
	}
}
