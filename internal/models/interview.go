package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interview is one round for a candidate. AI score fields stay nil until an
// evaluation arrives.
type Interview struct {
	BaseModel
	CompanyID   string `gorm:"type:uuid;not null;index"`
	CandidateID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_interviews_candidate_round,priority:1"`
	RoundNumber int    `gorm:"not null;uniqueIndex:idx_interviews_candidate_round,priority:2"`

	InterviewerID *string `gorm:"type:uuid"` // nil for fully AI-run rounds
	ScheduledAt   time.Time
	CompletedAt   *time.Time
	Status        InterviewStatus `gorm:"type:varchar(20);default:'scheduled';index"`

	BehaviorScore   *float64
	ConfidenceScore *float64
	AnswerScore     *float64
	ATSScore        *float64
	OverallScore    *float64

	AIRecommendation *AIRecommendation `gorm:"type:varchar(10)"`
	AIFeedback       string            `gorm:"type:text"`

	// Relations
	Candidate   *Candidate    `gorm:"foreignKey:CandidateID"`
	Interviewer *User         `gorm:"foreignKey:InterviewerID"`
	Verdict     *HumanVerdict `gorm:"foreignKey:InterviewID"`
	Report      *AIReport     `gorm:"foreignKey:InterviewID"`
}

// HumanVerdict is a reviewer's final decision on one round. At most one per
// interview; it overrides or confirms the AI recommendation.
type HumanVerdict struct {
	BaseModel
	CompanyID   string          `gorm:"type:uuid;not null;index"`
	InterviewID string          `gorm:"type:uuid;not null;uniqueIndex"`
	ReviewerID  string          `gorm:"type:uuid;not null"`
	Decision    VerdictDecision `gorm:"type:varchar(10);not null"`
	Comment     string          `gorm:"type:text"`
	IsOverride  bool            `gorm:"default:false"` // decision contradicts the AI recommendation

	// Relations
	Reviewer *User `gorm:"foreignKey:ReviewerID"`
}

// AIReport stores the raw evaluation payload from the scoring provider.
// Append-only.
type AIReport struct {
	BaseModel
	CompanyID   string         `gorm:"type:uuid;not null;index"`
	InterviewID string         `gorm:"type:uuid;not null;index"`
	Payload     datatypes.JSON `gorm:"type:jsonb"` // raw scores, strengths, weaknesses
	ModelName   string
}
