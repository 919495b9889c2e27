package dto

import "time"

type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	EmailDomain *string `json:"email_domain,omitempty" validate:"omitempty,fqdn"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// UpdateAIConfigRequest updates the per-company scoring thresholds. All
// scores are on the 0..100 scale.
type UpdateAIConfigRequest struct {
	MinPassingScore       *float64 `json:"min_passing_score,omitempty" validate:"omitempty,score"`
	MinATSScore           *float64 `json:"min_ats_score,omitempty" validate:"omitempty,score"`
	AutoRejectBelow       *float64 `json:"auto_reject_below,omitempty" validate:"omitempty,score"`
	DisableAutoReject     bool     `json:"disable_auto_reject,omitempty"`
	RequireEmployeeReview *bool    `json:"require_employee_review,omitempty"`
	AutoAdvanceEnabled    *bool    `json:"auto_advance_enabled,omitempty"`
}

type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EmailDomain *string   `json:"email_domain,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CompanyListResponse struct {
	Companies  []*CompanyResponse `json:"companies"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

type AIConfigResponse struct {
	CompanyID             string   `json:"company_id"`
	MinPassingScore       float64  `json:"min_passing_score"`
	MinATSScore           float64  `json:"min_ats_score"`
	AutoRejectBelow       *float64 `json:"auto_reject_below,omitempty"`
	RequireEmployeeReview bool     `json:"require_employee_review"`
	AutoAdvanceEnabled    bool     `json:"auto_advance_enabled"`
}
