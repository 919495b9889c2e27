package dto

import (
	"time"

	"hireflow_backend/internal/models"
)

type ImportJobResponse struct {
	ID           string                 `json:"id"`
	CompanyID    string                 `json:"company_id"`
	FileName     string                 `json:"file_name"`
	Status       models.ImportJobStatus `json:"status"`
	TotalRows    int                    `json:"total_rows"`
	SuccessCount int                    `json:"success_count"`
	FailureCount int                    `json:"failure_count"`
	Errors       []ImportRowErrorDTO    `json:"errors,omitempty"`
	StartedAt    *time.Time             `json:"started_at,omitempty"`
	FinishedAt   *time.Time             `json:"finished_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

type ImportRowErrorDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportJobListResponse struct {
	Jobs       []*ImportJobResponse `json:"jobs"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}
