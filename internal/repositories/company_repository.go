package repositories

import (
	"errors"

	"gorm.io/gorm"

	"hireflow_backend/internal/models"
)

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyAlreadyExists = errors.New("company already exists")
	ErrAIConfigNotFound     = errors.New("company AI config not found")
)

type CompanyRepository interface {
	FindByID(id string) (*models.Company, error)
	FindByName(name string) (*models.Company, error)
	Create(company *models.Company) error
	Update(company *models.Company) error
	FindAll(limit, offset int) ([]models.Company, int64, error)

	// AI config operations
	GetAIConfig(companyID string) (*models.CompanyAIConfig, error)
	SaveAIConfig(config *models.CompanyAIConfig) error
}

type CompanyRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &CompanyRepositoryImpl{db: db}
}

func (r *CompanyRepositoryImpl) FindByID(id string) (*models.Company, error) {
	var company models.Company
	err := r.db.Preload("AIConfig").First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByName(name string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) Create(company *models.Company) error {
	var existing models.Company
	if err := r.db.Where("name = ?", company.Name).First(&existing).Error; err == nil {
		return ErrCompanyAlreadyExists
	}
	return r.db.Create(company).Error
}

func (r *CompanyRepositoryImpl) Update(company *models.Company) error {
	result := r.db.Model(company).Updates(map[string]interface{}{
		"name":         company.Name,
		"email_domain": company.EmailDomain,
		"description":  company.Description,
		"is_active":    company.IsActive,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) FindAll(limit, offset int) ([]models.Company, int64, error) {
	var companies []models.Company
	var total int64

	if err := r.db.Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&companies).Error
	return companies, total, err
}

// AI config operations

func (r *CompanyRepositoryImpl) GetAIConfig(companyID string) (*models.CompanyAIConfig, error) {
	var config models.CompanyAIConfig
	err := r.db.First(&config, "company_id = ?", companyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAIConfigNotFound
		}
		return nil, err
	}
	return &config, nil
}

func (r *CompanyRepositoryImpl) SaveAIConfig(config *models.CompanyAIConfig) error {
	var existing models.CompanyAIConfig
	err := r.db.First(&existing, "company_id = ?", config.CompanyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(config).Error
	}
	if err != nil {
		return err
	}

	config.ID = existing.ID
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"min_passing_score":       config.MinPassingScore,
		"min_ats_score":           config.MinATSScore,
		"auto_reject_below":       config.AutoRejectBelow,
		"require_employee_review": config.RequireEmployeeReview,
		"auto_advance_enabled":    config.AutoAdvanceEnabled,
	}).Error
}
