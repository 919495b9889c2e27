package models

import (
	"gorm.io/datatypes"
)

type Candidate struct {
	BaseModel
	CompanyID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_candidates_company_email,priority:1"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null;uniqueIndex:idx_candidates_company_email,priority:2"`
	Phone     string
	Status    CandidateStatus `gorm:"type:varchar(30);default:'uploaded';index"`

	JobTemplateID      *string `gorm:"type:uuid;index"`
	AssignedEmployeeID *string `gorm:"type:uuid;index"`

	ResumeFileName string
	ResumeText     string `gorm:"type:text"`

	// Relations
	Company          *Company     `gorm:"foreignKey:CompanyID"`
	JobTemplate      *JobTemplate `gorm:"foreignKey:JobTemplateID"`
	AssignedEmployee *User        `gorm:"foreignKey:AssignedEmployeeID"`
	Interviews       []Interview  `gorm:"foreignKey:CandidateID"`
}

type JobTemplate struct {
	BaseModel
	CompanyID     string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_job_templates_company_title,priority:1"`
	Title         string         `gorm:"not null;uniqueIndex:idx_job_templates_company_title,priority:2"`
	Description   string         `gorm:"type:text"`
	Requirements  datatypes.JSON `gorm:"type:jsonb"` // ["go", "sql", ...]
	MinExperience int
	IsActive      bool `gorm:"default:true"`
}
