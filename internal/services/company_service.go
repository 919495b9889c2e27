package services

import (
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

type CompanyService interface {
	GetCompany(companyID string) (*dto.CompanyResponse, error)
	UpdateCompany(companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	ListCompanies(page, pageSize int) (*dto.CompanyListResponse, error)

	GetAIConfig(companyID string) (*dto.AIConfigResponse, error)
	UpdateAIConfig(companyID, actorID string, req *dto.UpdateAIConfigRequest) (*dto.AIConfigResponse, error)
}

type CompanyServiceImpl struct {
	companyRepo repositories.CompanyRepository
	auditRepo   repositories.AuditRepository
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	auditRepo repositories.AuditRepository,
) CompanyService {
	return &CompanyServiceImpl{
		companyRepo: companyRepo,
		auditRepo:   auditRepo,
	}
}

func (s *CompanyServiceImpl) GetCompany(companyID string) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return buildCompanyResponse(company), nil
}

func (s *CompanyServiceImpl) UpdateCompany(companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil && *req.Name != company.Name {
		if _, err := s.companyRepo.FindByName(*req.Name); err == nil {
			return nil, apperrors.ErrAlreadyExists(repositories.ErrCompanyAlreadyExists)
		}
		company.Name = *req.Name
	}
	if req.EmailDomain != nil {
		company.EmailDomain = req.EmailDomain
	}
	if req.Description != nil {
		company.Description = *req.Description
	}

	if err := s.companyRepo.Update(company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildCompanyResponse(company), nil
}

func (s *CompanyServiceImpl) ListCompanies(page, pageSize int) (*dto.CompanyListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	companies, total, err := s.companyRepo.FindAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, buildCompanyResponse(&companies[i]))
	}

	return &dto.CompanyListResponse{
		Companies:  responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

// AI config operations

func (s *CompanyServiceImpl) GetAIConfig(companyID string) (*dto.AIConfigResponse, error) {
	config, err := s.companyRepo.GetAIConfig(companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAIConfigNotFound) {
			// Missing config reads as the defaults.
			config = &models.CompanyAIConfig{
				CompanyID:       companyID,
				MinPassingScore: 60,
				MinATSScore:     50,
			}
		} else {
			return nil, apperrors.InternalError(err)
		}
	}
	return buildAIConfigResponse(config), nil
}

// UpdateAIConfig validates and persists the thresholds. The auto-reject
// bar must sit at or below the passing bar, otherwise candidates the
// config means to pass would be rejected first.
func (s *CompanyServiceImpl) UpdateAIConfig(companyID, actorID string, req *dto.UpdateAIConfigRequest) (*dto.AIConfigResponse, error) {
	config, err := s.companyRepo.GetAIConfig(companyID)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrAIConfigNotFound) {
			return nil, apperrors.InternalError(err)
		}
		config = &models.CompanyAIConfig{
			CompanyID:       companyID,
			MinPassingScore: 60,
			MinATSScore:     50,
		}
	}

	if req.MinPassingScore != nil {
		config.MinPassingScore = *req.MinPassingScore
	}
	if req.MinATSScore != nil {
		config.MinATSScore = *req.MinATSScore
	}
	if req.DisableAutoReject {
		config.AutoRejectBelow = nil
	} else if req.AutoRejectBelow != nil {
		config.AutoRejectBelow = req.AutoRejectBelow
	}
	if req.RequireEmployeeReview != nil {
		config.RequireEmployeeReview = *req.RequireEmployeeReview
	}
	if req.AutoAdvanceEnabled != nil {
		config.AutoAdvanceEnabled = *req.AutoAdvanceEnabled
	}

	if config.AutoRejectBelow != nil && *config.AutoRejectBelow > config.MinPassingScore {
		return nil, apperrors.ErrInvalidOperation("ai_config",
			"auto_reject_below cannot exceed min_passing_score")
	}

	if err := s.companyRepo.SaveAIConfig(config); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.auditRepo.AppendAction(companyID, &actorID, models.AuditAIConfigUpdated,
		"company_ai_config", config.ID, map[string]interface{}{
			"min_passing_score": config.MinPassingScore,
			"min_ats_score":     config.MinATSScore,
			"auto_reject_below": config.AutoRejectBelow,
		}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildAIConfigResponse(config), nil
}

// --- helpers ---

func buildCompanyResponse(company *models.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		EmailDomain: company.EmailDomain,
		Description: company.Description,
		IsActive:    company.IsActive,
		CreatedAt:   company.CreatedAt,
	}
}

func buildAIConfigResponse(config *models.CompanyAIConfig) *dto.AIConfigResponse {
	return &dto.AIConfigResponse{
		CompanyID:             config.CompanyID,
		MinPassingScore:       config.MinPassingScore,
		MinATSScore:           config.MinATSScore,
		AutoRejectBelow:       config.AutoRejectBelow,
		RequireEmployeeReview: config.RequireEmployeeReview,
		AutoAdvanceEnabled:    config.AutoAdvanceEnabled,
	}
}
