package models

import (
	"gorm.io/datatypes"
)

// AuditLog is append-only. ActorID is nil for system-initiated actions
// (workers, auto transitions).
type AuditLog struct {
	BaseModel
	CompanyID  string         `gorm:"type:uuid;not null;index"`
	ActorID    *string        `gorm:"type:uuid;index"`
	Action     string         `gorm:"not null;index"` // "candidate.status_changed", "verdict.submitted", ...
	EntityType string         `gorm:"not null"`       // "candidate", "interview", "verdict", ...
	EntityID   string         `gorm:"type:uuid;not null;index"`
	Details    datatypes.JSON `gorm:"type:jsonb"` // {"from": "ai_review", "to": "hired", ...}
}

// Audit action names. Kept as constants so the audit trail stays greppable.
const (
	AuditCandidateCreated       = "candidate.created"
	AuditCandidateAssigned      = "candidate.assigned"
	AuditCandidateStatusChanged = "candidate.status_changed"
	AuditCandidateDeleted       = "candidate.deleted"
	AuditInterviewScheduled     = "interview.scheduled"
	AuditInterviewCompleted     = "interview.completed"
	AuditInterviewCancelled     = "interview.cancelled"
	AuditVerdictSubmitted       = "verdict.submitted"
	AuditAIConfigUpdated        = "ai_config.updated"
	AuditImportCompleted        = "import.completed"
	AuditStatusReconciled       = "pipeline.status_reconciled"
)
