package services

import (
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

type AuditService interface {
	ListEntries(companyID string, criteria *dto.AuditSearchCriteria) (*dto.AuditLogListResponse, error)
}

type AuditServiceImpl struct {
	auditRepo repositories.AuditRepository
}

func NewAuditService(auditRepo repositories.AuditRepository) AuditService {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

func (s *AuditServiceImpl) ListEntries(companyID string, criteria *dto.AuditSearchCriteria) (*dto.AuditLogListResponse, error) {
	filter := repositories.AuditFilter{
		CompanyID:  companyID,
		ActorID:    criteria.ActorID,
		Action:     criteria.Action,
		EntityType: criteria.EntityType,
		EntityID:   criteria.EntityID,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	entries, total, err := s.auditRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, buildAuditLogResponse(&entries[i]))
	}

	return &dto.AuditLogListResponse{
		Entries:    responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func buildAuditLogResponse(entry *models.AuditLog) *dto.AuditLogResponse {
	var details map[string]interface{}
	fromJSON(entry.Details, &details)
	return &dto.AuditLogResponse{
		ID:         entry.ID,
		CompanyID:  entry.CompanyID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    details,
		CreatedAt:  entry.CreatedAt,
	}
}
