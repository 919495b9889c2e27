package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportJob tracks one bulk candidate import (xlsx upload). The worker
// updates counters as it walks the rows; failed rows are recorded in Errors,
// successes and failures are only ever counted, never retried.
type ImportJob struct {
	BaseModel
	CompanyID   string          `gorm:"type:uuid;not null;index"`
	CreatedByID string          `gorm:"type:uuid;not null"`
	FileName    string          `gorm:"not null"`
	FilePath    string          `gorm:"not null"`
	Status      ImportJobStatus `gorm:"type:varchar(20);default:'pending';index"`

	TotalRows    int
	SuccessCount int
	FailureCount int
	Errors       datatypes.JSON `gorm:"type:jsonb"` // [{"row": 7, "reason": "invalid email"}, ...]

	StartedAt  *time.Time
	FinishedAt *time.Time

	JobTemplateID *string `gorm:"type:uuid"` // applied to every imported candidate when set
}
