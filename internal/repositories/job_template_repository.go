package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hireflow_backend/internal/models"
)

var (
	ErrJobTemplateNotFound      = errors.New("job template not found")
	ErrJobTemplateAlreadyExists = errors.New("job template already exists")
)

type JobTemplateRepository interface {
	FindByID(id string) (*models.JobTemplate, error)
	Create(template *models.JobTemplate) error
	Update(template *models.JobTemplate) error
	Delete(id string) error
	FindByCompany(companyID string, activeOnly bool) ([]models.JobTemplate, error)
	FindByTitle(companyID, title string) (*models.JobTemplate, error)
}

type JobTemplateRepositoryImpl struct {
	db *gorm.DB
}

func NewJobTemplateRepository(db *gorm.DB) JobTemplateRepository {
	return &JobTemplateRepositoryImpl{db: db}
}

func (r *JobTemplateRepositoryImpl) FindByID(id string) (*models.JobTemplate, error) {
	var template models.JobTemplate
	err := r.db.First(&template, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *JobTemplateRepositoryImpl) Create(template *models.JobTemplate) error {
	var existing models.JobTemplate
	err := r.db.Where("company_id = ? AND title = ?", template.CompanyID, template.Title).
		First(&existing).Error
	if err == nil {
		return ErrJobTemplateAlreadyExists
	}
	return r.db.Create(template).Error
}

func (r *JobTemplateRepositoryImpl) Update(template *models.JobTemplate) error {
	result := r.db.Model(template).Updates(map[string]interface{}{
		"title":          template.Title,
		"description":    template.Description,
		"requirements":   template.Requirements,
		"min_experience": template.MinExperience,
		"is_active":      template.IsActive,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobTemplateNotFound
	}
	return nil
}

func (r *JobTemplateRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.JobTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobTemplateNotFound
	}
	return nil
}

func (r *JobTemplateRepositoryImpl) FindByCompany(companyID string, activeOnly bool) ([]models.JobTemplate, error) {
	q := r.db.Where("company_id = ?", companyID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var templates []models.JobTemplate
	err := q.Order("title").Find(&templates).Error
	return templates, err
}

func (r *JobTemplateRepositoryImpl) FindByTitle(companyID, title string) (*models.JobTemplate, error) {
	var template models.JobTemplate
	err := r.db.First(&template, "company_id = ? AND title = ?", companyID, title).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}
