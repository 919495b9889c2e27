package models

type Company struct {
	BaseModel
	Name        string  `gorm:"uniqueIndex;not null"`
	EmailDomain *string `gorm:"uniqueIndex"`
	Description string
	IsActive    bool `gorm:"default:true"`

	// Relations
	Users        []User           `gorm:"foreignKey:CompanyID"`
	Candidates   []Candidate      `gorm:"foreignKey:CompanyID"`
	JobTemplates []JobTemplate    `gorm:"foreignKey:CompanyID"`
	AIConfig     *CompanyAIConfig `gorm:"foreignKey:CompanyID"`
}

// CompanyAIConfig holds the per-company thresholds that map AI scores to
// candidate statuses. One row per company.
type CompanyAIConfig struct {
	BaseModel
	CompanyID             string   `gorm:"type:uuid;uniqueIndex;not null"`
	MinPassingScore       float64  `gorm:"default:60"`
	MinATSScore           float64  `gorm:"default:50"`
	AutoRejectBelow       *float64 // nil disables auto-reject
	RequireEmployeeReview bool     `gorm:"default:false"`
	AutoAdvanceEnabled    bool     `gorm:"default:true"`
}
