package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	CompanyID    string     `gorm:"type:uuid;not null;index"`
	Email        string     `gorm:"uniqueIndex;not null"`
	Name         string     `gorm:"not null"`
	PasswordHash string     `gorm:"not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'"`
	IsVerified   bool       `gorm:"default:false"`

	// Optional custom role and manager link (tree-shaped, no cycles).
	RoleID    *string `gorm:"type:uuid"`
	ManagerID *string `gorm:"type:uuid;index"`

	// Relations
	Company       *Company       `gorm:"foreignKey:CompanyID"`
	CustomRole    *Role          `gorm:"foreignKey:RoleID"`
	Manager       *User          `gorm:"foreignKey:ManagerID"`
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

// Role is a company-defined permission set beyond the built-in UserRole.
type Role struct {
	BaseModel
	CompanyID   string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_roles_company_name,priority:1"`
	Name        string         `gorm:"not null;uniqueIndex:idx_roles_company_name,priority:2"`
	Permissions datatypes.JSON `gorm:"type:jsonb"` // ["candidates:read", "verdicts:write", ...]
}
