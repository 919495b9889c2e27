package services

import (
	"hireflow_backend/internal/email"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	CompanyService     CompanyService
	CandidateService   CandidateService
	JobTemplateService JobTemplateService
	PipelineService    PipelineService
	ImportService      ImportService
	AuditService       AuditService
	EmailService       email.Provider
}
