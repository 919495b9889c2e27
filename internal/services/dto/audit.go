package dto

import "time"

type AuditSearchCriteria struct {
	ActorID    string `form:"actor_id" validate:"omitempty,uuid"`
	Action     string `form:"action" validate:"omitempty,max=100"`
	EntityType string `form:"entity_type" validate:"omitempty,max=50"`
	EntityID   string `form:"entity_id" validate:"omitempty,uuid"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"page_size" validate:"omitempty,min=1,max=200"`
}

type AuditLogResponse struct {
	ID         string                 `json:"id"`
	CompanyID  string                 `json:"company_id"`
	ActorID    *string                `json:"actor_id,omitempty"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   string                 `json:"entity_id"`
	Details    map[string]interface{} `json:"details,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

type AuditLogListResponse struct {
	Entries    []*AuditLogResponse `json:"entries"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}
