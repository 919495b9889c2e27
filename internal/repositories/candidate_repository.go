package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hireflow_backend/internal/models"
)

var (
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrCandidateAlreadyExists = errors.New("candidate already exists")
)

type CandidateFilter struct {
	CompanyID          string
	Status             models.CandidateStatus
	JobTemplateID      string
	AssignedEmployeeID string
	Search             string
	Page               int
	PageSize           int
}

type CandidateRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) CandidateRepository

	FindByID(id string) (*models.Candidate, error)
	FindByEmail(companyID, email string) (*models.Candidate, error)
	Create(candidate *models.Candidate) error
	Update(candidate *models.Candidate) error
	UpdateStatus(candidateID string, status models.CandidateStatus) error
	Assign(candidateID string, employeeID *string) error
	Delete(candidateID string) error
	FindWithFilter(criteria CandidateFilter) ([]models.Candidate, int64, error)
	CountByStatus(companyID string) (map[models.CandidateStatus]int64, error)
	FindByCompany(companyID string) ([]models.Candidate, error)
}

type CandidateRepositoryImpl struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &CandidateRepositoryImpl{db: db}
}

func (r *CandidateRepositoryImpl) WithTx(tx *gorm.DB) CandidateRepository {
	return &CandidateRepositoryImpl{db: tx}
}

func (r *CandidateRepositoryImpl) FindByID(id string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.Preload("JobTemplate").Preload("AssignedEmployee").
		First(&candidate, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) FindByEmail(companyID, email string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.First(&candidate, "company_id = ? AND email = ?", companyID, email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return &candidate, nil
}

func (r *CandidateRepositoryImpl) Create(candidate *models.Candidate) error {
	var existing models.Candidate
	err := r.db.Where("company_id = ? AND email = ?", candidate.CompanyID, candidate.Email).
		First(&existing).Error
	if err == nil {
		return ErrCandidateAlreadyExists
	}
	return r.db.Create(candidate).Error
}

func (r *CandidateRepositoryImpl) Update(candidate *models.Candidate) error {
	result := r.db.Model(candidate).Updates(map[string]interface{}{
		"name":             candidate.Name,
		"phone":            candidate.Phone,
		"job_template_id":  candidate.JobTemplateID,
		"resume_file_name": candidate.ResumeFileName,
		"resume_text":      candidate.ResumeText,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) UpdateStatus(candidateID string, status models.CandidateStatus) error {
	result := r.db.Model(&models.Candidate{}).Where("id = ?", candidateID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) Assign(candidateID string, employeeID *string) error {
	result := r.db.Model(&models.Candidate{}).Where("id = ?", candidateID).Updates(map[string]interface{}{
		"assigned_employee_id": employeeID,
		"updated_at":           time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) Delete(candidateID string) error {
	result := r.db.Delete(&models.Candidate{}, "id = ?", candidateID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}

func (r *CandidateRepositoryImpl) FindWithFilter(criteria CandidateFilter) ([]models.Candidate, int64, error) {
	q := r.db.Model(&models.Candidate{}).Where("company_id = ?", criteria.CompanyID)

	if criteria.Status != "" {
		q = q.Where("status = ?", criteria.Status)
	}
	if criteria.JobTemplateID != "" {
		q = q.Where("job_template_id = ?", criteria.JobTemplateID)
	}
	if criteria.AssignedEmployeeID != "" {
		q = q.Where("assigned_employee_id = ?", criteria.AssignedEmployeeID)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", search, search)
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
		pageSize = 20
	}

	var candidates []models.Candidate
	err := q.Preload("JobTemplate").
		Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *CandidateRepositoryImpl) CountByStatus(companyID string) (map[models.CandidateStatus]int64, error) {
	type row struct {
		Status models.CandidateStatus
		Count  int64
	}

	var rows []row
	err := r.db.Model(&models.Candidate{}).
		Select("status, count(*) as count").
		Where("company_id = ?", companyID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.CandidateStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *CandidateRepositoryImpl) FindByCompany(companyID string) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.Where("company_id = ?", companyID).Order("created_at").Find(&candidates).Error
	return candidates, err
}
