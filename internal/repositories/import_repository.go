package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hireflow_backend/internal/models"
)

var ErrImportJobNotFound = errors.New("import job not found")

// ImportRowError is one failed row in a bulk import.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportRepository interface {
	Create(job *models.ImportJob) error
	FindByID(id string) (*models.ImportJob, error)
	FindByCompany(companyID string, limit, offset int) ([]models.ImportJob, int64, error)
	MarkRunning(jobID string) error
	MarkFinished(jobID string, status models.ImportJobStatus, totalRows, successCount, failureCount int, rowErrors []ImportRowError) error
}

type ImportRepositoryImpl struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) ImportRepository {
	return &ImportRepositoryImpl{db: db}
}

func (r *ImportRepositoryImpl) Create(job *models.ImportJob) error {
	return r.db.Create(job).Error
}

func (r *ImportRepositoryImpl) FindByID(id string) (*models.ImportJob, error) {
	var job models.ImportJob
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImportJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *ImportRepositoryImpl) FindByCompany(companyID string, limit, offset int) ([]models.ImportJob, int64, error) {
	var jobs []models.ImportJob
	var total int64

	q := r.db.Model(&models.ImportJob{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error
	return jobs, total, err
}

func (r *ImportRepositoryImpl) MarkRunning(jobID string) error {
	now := time.Now()
	result := r.db.Model(&models.ImportJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     models.ImportJobStatusRunning,
		"started_at": now,
		"updated_at": now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrImportJobNotFound
	}
	return nil
}

func (r *ImportRepositoryImpl) MarkFinished(jobID string, status models.ImportJobStatus, totalRows, successCount, failureCount int, rowErrors []ImportRowError) error {
	var payload datatypes.JSON
	if len(rowErrors) > 0 {
		raw, err := json.Marshal(rowErrors)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}

	now := time.Now()
	result := r.db.Model(&models.ImportJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":        status,
		"total_rows":    totalRows,
		"success_count": successCount,
		"failure_count": failureCount,
		"errors":        payload,
		"finished_at":   now,
		"updated_at":    now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrImportJobNotFound
	}
	return nil
}
