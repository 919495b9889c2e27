package repositories

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hireflow_backend/internal/models"
)

type AuditFilter struct {
	CompanyID  string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Page       int
	PageSize   int
}

type AuditRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) AuditRepository

	Append(entry *models.AuditLog) error
	AppendAction(companyID string, actorID *string, action, entityType, entityID string, details map[string]interface{}) error
	FindWithFilter(criteria AuditFilter) ([]models.AuditLog, int64, error)
}

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) WithTx(tx *gorm.DB) AuditRepository {
	return &AuditRepositoryImpl{db: tx}
}

func (r *AuditRepositoryImpl) Append(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// AppendAction is the convenience form used by the pipeline: marshal the
// details and insert in one call.
func (r *AuditRepositoryImpl) AppendAction(companyID string, actorID *string, action, entityType, entityID string, details map[string]interface{}) error {
	var payload datatypes.JSON
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}

	return r.db.Create(&models.AuditLog{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    payload,
	}).Error
}

func (r *AuditRepositoryImpl) FindWithFilter(criteria AuditFilter) ([]models.AuditLog, int64, error) {
	q := r.db.Model(&models.AuditLog{}).Where("company_id = ?", criteria.CompanyID)

	if criteria.ActorID != "" {
		q = q.Where("actor_id = ?", criteria.ActorID)
	}
	if criteria.Action != "" {
		q = q.Where("action = ?", criteria.Action)
	}
	if criteria.EntityType != "" {
		q = q.Where("entity_type = ?", criteria.EntityType)
	}
	if criteria.EntityID != "" {
		q = q.Where("entity_id = ?", criteria.EntityID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	var entries []models.AuditLog
	err := q.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&entries).Error
	return entries, total, err
}
