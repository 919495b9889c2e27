package dto

import (
	"time"

	"hireflow_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=200"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Role     models.UserRole `json:"role" validate:"required,is-user-role"`
	RoleID   *string         `json:"role_id,omitempty" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name   *string            `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Role   *models.UserRole   `json:"role,omitempty" validate:"omitempty,is-user-role"`
	Status *models.UserStatus `json:"status,omitempty" validate:"omitempty,oneof=pending active suspended"`
	RoleID *string            `json:"role_id,omitempty" validate:"omitempty,uuid"`
}

// SetManagerRequest links a user to a manager; nil detaches.
type SetManagerRequest struct {
	ManagerID *string `json:"manager_id" validate:"omitempty,uuid"`
}

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,min=3"`
}

type UpdateRoleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Permissions []string `json:"permissions,omitempty" validate:"omitempty,min=1,dive,min=3"`
}

type UserSearchCriteria struct {
	Role     string `form:"role" validate:"omitempty,is-user-role"`
	Status   string `form:"status" validate:"omitempty,oneof=pending active suspended"`
	Search   string `form:"search" validate:"omitempty,max=200"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// ======================
// Response DTOs
// ======================

type UserResponse struct {
	ID        string            `json:"id"`
	CompanyID string            `json:"company_id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Role      models.UserRole   `json:"role"`
	Status    models.UserStatus `json:"status"`
	RoleID    *string           `json:"role_id,omitempty"`
	ManagerID *string           `json:"manager_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type UserListResponse struct {
	Users      []*UserResponse `json:"users"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

type RoleResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}
