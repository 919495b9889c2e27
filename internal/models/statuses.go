package models

type UserStatus string
type UserRole string
type CandidateStatus string
type InterviewStatus string
type AIRecommendation string
type VerdictDecision string
type ImportJobStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleAdmin     UserRole = "admin"
	UserRoleHR        UserRole = "hr"
	UserRoleEmployee  UserRole = "employee"
	UserRoleCandidate UserRole = "candidate"

	CandidateStatusUploaded           CandidateStatus = "uploaded"
	CandidateStatusAssigned           CandidateStatus = "assigned"
	CandidateStatusInterviewScheduled CandidateStatus = "interview_scheduled"
	CandidateStatusInterviewCompleted CandidateStatus = "interview_completed"
	CandidateStatusAIReview           CandidateStatus = "ai_review"
	CandidateStatusAIPassed           CandidateStatus = "ai_passed"
	CandidateStatusAIRejected         CandidateStatus = "ai_rejected"
	CandidateStatusAutoRejected       CandidateStatus = "auto_rejected"
	CandidateStatusHired              CandidateStatus = "hired"
	CandidateStatusRejected           CandidateStatus = "rejected"

	InterviewStatusScheduled  InterviewStatus = "scheduled"
	InterviewStatusInProgress InterviewStatus = "in_progress"
	InterviewStatusCompleted  InterviewStatus = "completed"
	InterviewStatusCancelled  InterviewStatus = "cancelled"

	AIRecommendationHire   AIRecommendation = "HIRE"
	AIRecommendationReject AIRecommendation = "REJECT"
	AIRecommendationReview AIRecommendation = "REVIEW"

	VerdictDecisionHire   VerdictDecision = "hire"
	VerdictDecisionReject VerdictDecision = "reject"

	ImportJobStatusPending   ImportJobStatus = "pending"
	ImportJobStatusRunning   ImportJobStatus = "running"
	ImportJobStatusCompleted ImportJobStatus = "completed"
	ImportJobStatusFailed    ImportJobStatus = "failed"
)

// candidateTransitions encodes the legal pipeline moves. Terminal statuses
// (hired, rejected, auto_rejected) are deliberately absent as sources: the
// only way out of them is an explicit human override, which is checked
// separately in the pipeline service.
var candidateTransitions = map[CandidateStatus][]CandidateStatus{
	CandidateStatusUploaded: {
		CandidateStatusAssigned,
		CandidateStatusInterviewScheduled,
	},
	CandidateStatusAssigned: {
		CandidateStatusInterviewScheduled,
	},
	CandidateStatusInterviewScheduled: {
		CandidateStatusInterviewCompleted,
		CandidateStatusAIReview,
		CandidateStatusAIPassed,
		CandidateStatusAIRejected,
		CandidateStatusAutoRejected,
		// Cancelling the only scheduled round puts the candidate back
		CandidateStatusAssigned,
		CandidateStatusUploaded,
	},
	CandidateStatusInterviewCompleted: {
		CandidateStatusAIReview,
		CandidateStatusAIPassed,
		CandidateStatusAIRejected,
		CandidateStatusAutoRejected,
	},
	CandidateStatusAIReview: {
		CandidateStatusHired,
		CandidateStatusRejected,
		// A follow-up round can be scheduled while under review
		CandidateStatusInterviewScheduled,
	},
	CandidateStatusAIPassed: {
		CandidateStatusHired,
		CandidateStatusRejected,
		CandidateStatusInterviewScheduled,
	},
	CandidateStatusAIRejected: {
		CandidateStatusHired,
		CandidateStatusRejected,
		CandidateStatusInterviewScheduled,
	},
}

// IsTerminal reports whether the status ends the pipeline.
func (s CandidateStatus) IsTerminal() bool {
	switch s {
	case CandidateStatusHired, CandidateStatusRejected, CandidateStatusAutoRejected:
		return true
	}
	return false
}

// IsValid reports whether the value is a known candidate status.
func (s CandidateStatus) IsValid() bool {
	switch s {
	case CandidateStatusUploaded, CandidateStatusAssigned,
		CandidateStatusInterviewScheduled, CandidateStatusInterviewCompleted,
		CandidateStatusAIReview, CandidateStatusAIPassed, CandidateStatusAIRejected,
		CandidateStatusAutoRejected, CandidateStatusHired, CandidateStatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether from -> to is a legal pipeline move.
// Self-transitions are allowed (idempotent re-application).
func CanTransition(from, to CandidateStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range candidateTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidUserRole reports whether the value is a known user role.
func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleAdmin, UserRoleHR, UserRoleEmployee, UserRoleCandidate:
		return true
	}
	return false
}

// IsValid reports whether the value is a known AI recommendation.
func (r AIRecommendation) IsValid() bool {
	switch r {
	case AIRecommendationHire, AIRecommendationReject, AIRecommendationReview:
		return true
	}
	return false
}

// IsValid reports whether the value is a known verdict decision.
func (d VerdictDecision) IsValid() bool {
	return d == VerdictDecisionHire || d == VerdictDecisionReject
}
