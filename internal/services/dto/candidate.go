package dto

import (
	"time"

	"hireflow_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

// CreateCandidateRequest arrives as multipart form fields; the resume file
// itself is handled by the handler and passed to the service separately.
type CreateCandidateRequest struct {
	Name          string  `form:"name" json:"name" validate:"required,min=2,max=200"`
	Email         string  `form:"email" json:"email" validate:"required,email"`
	Phone         string  `form:"phone" json:"phone" validate:"omitempty,max=50"`
	JobTemplateID *string `form:"job_template_id" json:"job_template_id,omitempty" validate:"omitempty,uuid"`
}

type UpdateCandidateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	JobTemplateID *string `json:"job_template_id,omitempty" validate:"omitempty,uuid"`
}

// AssignCandidateRequest hands a candidate to an employee; nil unassigns.
type AssignCandidateRequest struct {
	EmployeeID *string `json:"employee_id" validate:"omitempty,uuid"`
}

type CandidateSearchCriteria struct {
	Status        string `form:"status" validate:"omitempty,is-candidate-status"`
	JobTemplateID string `form:"job_template_id" validate:"omitempty,uuid"`
	AssignedTo    string `form:"assigned_to" validate:"omitempty,uuid"`
	Search        string `form:"search" validate:"omitempty,max=200"`
	Page          int    `form:"page" validate:"omitempty,min=1"`
	PageSize      int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// ======================
// Job template DTOs
// ======================

type CreateJobTemplateRequest struct {
	Title         string   `json:"title" validate:"required,min=2,max=200"`
	Description   string   `json:"description" validate:"omitempty,max=10000"`
	Requirements  []string `json:"requirements" validate:"omitempty,dive,min=1"`
	MinExperience int      `json:"min_experience" validate:"omitempty,min=0,max=50"`
}

type UpdateJobTemplateRequest struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=10000"`
	Requirements  []string `json:"requirements,omitempty" validate:"omitempty,dive,min=1"`
	MinExperience *int     `json:"min_experience,omitempty" validate:"omitempty,min=0,max=50"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// ======================
// Response DTOs
// ======================

type CandidateResponse struct {
	ID                 string                 `json:"id"`
	CompanyID          string                 `json:"company_id"`
	Name               string                 `json:"name"`
	Email              string                 `json:"email"`
	Phone              string                 `json:"phone,omitempty"`
	Status             models.CandidateStatus `json:"status"`
	JobTemplateID      *string                `json:"job_template_id,omitempty"`
	JobTitle           string                 `json:"job_title,omitempty"`
	AssignedEmployeeID *string                `json:"assigned_employee_id,omitempty"`
	ResumeFileName     string                 `json:"resume_file_name,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

type CandidateListResponse struct {
	Candidates []*CandidateResponse `json:"candidates"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

type JobTemplateResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Requirements  []string  `json:"requirements,omitempty"`
	MinExperience int       `json:"min_experience"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// PipelineStatsResponse is the per-status candidate count for a company.
type PipelineStatsResponse struct {
	CompanyID string           `json:"company_id"`
	Counts    map[string]int64 `json:"counts"`
	Total     int64            `json:"total"`
}
