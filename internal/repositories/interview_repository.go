package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hireflow_backend/internal/models"
)

var (
	ErrInterviewNotFound = errors.New("interview not found")
	ErrVerdictNotFound   = errors.New("human verdict not found")
	ErrVerdictExists     = errors.New("verdict already exists for this interview")
	ErrReportNotFound    = errors.New("ai report not found")
)

type InterviewRepository interface {
	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *gorm.DB) InterviewRepository

	// Interview operations
	FindByID(id string) (*models.Interview, error)
	Create(interview *models.Interview) error
	Update(interview *models.Interview) error
	UpdateStatus(interviewID string, status models.InterviewStatus) error
	FindByCandidate(candidateID string) ([]models.Interview, error)
	FindLatestByCandidate(candidateID string) (*models.Interview, error)
	NextRoundNumber(candidateID string) (int, error)
	FindScheduledBetween(from, to time.Time) ([]models.Interview, error)

	// Verdict operations
	CreateVerdict(verdict *models.HumanVerdict) error
	FindVerdictByInterview(interviewID string) (*models.HumanVerdict, error)

	// Report operations
	CreateReport(report *models.AIReport) error
	FindReportByInterview(interviewID string) (*models.AIReport, error)
}

type InterviewRepositoryImpl struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &InterviewRepositoryImpl{db: db}
}

func (r *InterviewRepositoryImpl) WithTx(tx *gorm.DB) InterviewRepository {
	return &InterviewRepositoryImpl{db: tx}
}

// Interview operations

func (r *InterviewRepositoryImpl) FindByID(id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.Preload("Candidate").Preload("Verdict").
		First(&interview, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepositoryImpl) Create(interview *models.Interview) error {
	return r.db.Create(interview).Error
}

func (r *InterviewRepositoryImpl) Update(interview *models.Interview) error {
	result := r.db.Model(interview).Updates(map[string]interface{}{
		"scheduled_at":      interview.ScheduledAt,
		"completed_at":      interview.CompletedAt,
		"status":            interview.Status,
		"behavior_score":    interview.BehaviorScore,
		"confidence_score":  interview.ConfidenceScore,
		"answer_score":      interview.AnswerScore,
		"ats_score":         interview.ATSScore,
		"overall_score":     interview.OverallScore,
		"ai_recommendation": interview.AIRecommendation,
		"ai_feedback":       interview.AIFeedback,
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepositoryImpl) UpdateStatus(interviewID string, status models.InterviewStatus) error {
	result := r.db.Model(&models.Interview{}).Where("id = ?", interviewID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepositoryImpl) FindByCandidate(candidateID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.Where("candidate_id = ?", candidateID).
		Preload("Verdict").
		Order("round_number").
		Find(&interviews).Error
	return interviews, err
}

func (r *InterviewRepositoryImpl) FindLatestByCandidate(candidateID string) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.Where("candidate_id = ?", candidateID).
		Preload("Verdict").
		Order("round_number DESC").
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepositoryImpl) NextRoundNumber(candidateID string) (int, error) {
	var maxRound int
	err := r.db.Model(&models.Interview{}).
		Where("candidate_id = ?", candidateID).
		Select("COALESCE(MAX(round_number), 0)").
		Scan(&maxRound).Error
	if err != nil {
		return 0, err
	}
	return maxRound + 1, nil
}

func (r *InterviewRepositoryImpl) FindScheduledBetween(from, to time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.Where("status = ? AND scheduled_at BETWEEN ? AND ?",
		models.InterviewStatusScheduled, from, to).
		Preload("Candidate").
		Find(&interviews).Error
	return interviews, err
}

// Verdict operations

func (r *InterviewRepositoryImpl) CreateVerdict(verdict *models.HumanVerdict) error {
	var existing models.HumanVerdict
	err := r.db.Where("interview_id = ?", verdict.InterviewID).First(&existing).Error
	if err == nil {
		return ErrVerdictExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(verdict).Error
}

func (r *InterviewRepositoryImpl) FindVerdictByInterview(interviewID string) (*models.HumanVerdict, error) {
	var verdict models.HumanVerdict
	err := r.db.Preload("Reviewer").First(&verdict, "interview_id = ?", interviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerdictNotFound
		}
		return nil, err
	}
	return &verdict, nil
}

// Report operations

func (r *InterviewRepositoryImpl) CreateReport(report *models.AIReport) error {
	return r.db.Create(report).Error
}

func (r *InterviewRepositoryImpl) FindReportByInterview(interviewID string) (*models.AIReport, error) {
	var report models.AIReport
	err := r.db.Order("created_at DESC").First(&report, "interview_id = ?", interviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}
