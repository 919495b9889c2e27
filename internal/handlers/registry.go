package handlers

// AppHandlers holds every HTTP handler the router registers.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	CompanyHandler     *CompanyHandler
	CandidateHandler   *CandidateHandler
	InterviewHandler   *InterviewHandler
	JobTemplateHandler *JobTemplateHandler
	ImportHandler      *ImportHandler
	AuditHandler       *AuditHandler
	AdminHandler       *AdminHandler
	HealthHandler      *HealthHandler
}
