package dto

import (
	"time"

	"hireflow_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type ScheduleInterviewRequest struct {
	CandidateID   string    `json:"candidate_id" validate:"required,uuid"`
	InterviewerID *string   `json:"interviewer_id,omitempty" validate:"omitempty,uuid"`
	ScheduledAt   time.Time `json:"scheduled_at" validate:"required"`
}

// AIResultRequest is the payload the AI scoring provider posts back when an
// interview has been evaluated. Scores are on the 0..100 scale.
type AIResultRequest struct {
	BehaviorScore   float64                 `json:"behavior_score" validate:"score"`
	ConfidenceScore float64                 `json:"confidence_score" validate:"score"`
	AnswerScore     float64                 `json:"answer_score" validate:"score"`
	ATSScore        float64                 `json:"ats_score" validate:"score"`
	Recommendation  models.AIRecommendation `json:"recommendation" validate:"required,is-ai-recommendation"`
	Feedback        string                  `json:"feedback" validate:"omitempty,max=20000"`
	RawReport       map[string]interface{}  `json:"raw_report,omitempty"`
	ModelName       string                  `json:"model_name" validate:"omitempty,max=100"`
}

type SubmitVerdictRequest struct {
	Decision models.VerdictDecision `json:"decision" validate:"required,is-verdict-decision"`
	Comment  string                 `json:"comment" validate:"omitempty,max=5000"`
}

// ======================
// Response DTOs
// ======================

type InterviewResponse struct {
	ID               string                   `json:"id"`
	CandidateID      string                   `json:"candidate_id"`
	RoundNumber      int                      `json:"round_number"`
	InterviewerID    *string                  `json:"interviewer_id,omitempty"`
	ScheduledAt      time.Time                `json:"scheduled_at"`
	CompletedAt      *time.Time               `json:"completed_at,omitempty"`
	Status           models.InterviewStatus   `json:"status"`
	BehaviorScore    *float64                 `json:"behavior_score,omitempty"`
	ConfidenceScore  *float64                 `json:"confidence_score,omitempty"`
	AnswerScore      *float64                 `json:"answer_score,omitempty"`
	ATSScore         *float64                 `json:"ats_score,omitempty"`
	OverallScore     *float64                 `json:"overall_score,omitempty"`
	AIRecommendation *models.AIRecommendation `json:"ai_recommendation,omitempty"`
	AIFeedback       string                   `json:"ai_feedback,omitempty"`
	Verdict          *VerdictResponse         `json:"verdict,omitempty"`
}

type VerdictResponse struct {
	ID          string                 `json:"id"`
	InterviewID string                 `json:"interview_id"`
	ReviewerID  string                 `json:"reviewer_id"`
	Decision    models.VerdictDecision `json:"decision"`
	Comment     string                 `json:"comment,omitempty"`
	IsOverride  bool                   `json:"is_override"`
	CreatedAt   time.Time              `json:"created_at"`
}

type AIReportResponse struct {
	ID          string                 `json:"id"`
	InterviewID string                 `json:"interview_id"`
	ModelName   string                 `json:"model_name,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// CompleteInterviewResponse reports the transition the state machine made.
type CompleteInterviewResponse struct {
	Interview       *InterviewResponse     `json:"interview"`
	CandidateStatus models.CandidateStatus `json:"candidate_status"`
	HeldForReview   bool                   `json:"held_for_review"`
}

// ReconcileResult is one repaired candidate from a reconcile run.
type ReconcileResult struct {
	CandidateID string                 `json:"candidate_id"`
	OldStatus   models.CandidateStatus `json:"old_status"`
	NewStatus   models.CandidateStatus `json:"new_status"`
	Reason      string                 `json:"reason"`
}

type ReconcileResponse struct {
	CompanyID string            `json:"company_id"`
	Scanned   int               `json:"scanned"`
	Repaired  []ReconcileResult `json:"repaired"`
}
