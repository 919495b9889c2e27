package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hireflow_backend/internal/config"
	"hireflow_backend/internal/email"
	"hireflow_backend/internal/handlers"
	"hireflow_backend/internal/logger"
	"hireflow_backend/internal/middleware"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/routes"
	"hireflow_backend/internal/services"
	"hireflow_backend/internal/validator"
	"hireflow_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ginRouter := SetupRouter(cfg, gormDB, ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, workers and handlers into a
// ready gin engine. Workers run until ctx is cancelled.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, ctx context.Context) *gin.Engine {
	serviceContainer, importWorker, reminderWorker := initializeServices(cfg, gormDB)

	importWorker.Start(ctx)
	reminderWorker.Start(ctx)

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) (*services.ServiceContainer, *workers.ImportWorker, *workers.ReminderWorker) {
	var emailService email.Provider
	if cfg.Email.SMTPHost == "" || cfg.Server.Env == "test" {
		logger.Warn("SMTP is not configured, outgoing email is disabled")
		emailService = &MockEmailProvider{}
	} else {
		provider, err := email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailService = provider
	}

	userRepo := repositories.NewUserRepository(gormDB)
	companyRepo := repositories.NewCompanyRepository(gormDB)
	candidateRepo := repositories.NewCandidateRepository(gormDB)
	interviewRepo := repositories.NewInterviewRepository(gormDB)
	templateRepo := repositories.NewJobTemplateRepository(gormDB)
	auditRepo := repositories.NewAuditRepository(gormDB)
	importRepo := repositories.NewImportRepository(gormDB)

	authService := services.NewAuthService(gormDB, userRepo, companyRepo, emailService)
	userService := services.NewUserService(userRepo)
	companyService := services.NewCompanyService(companyRepo, auditRepo)
	candidateService := services.NewCandidateService(candidateRepo, userRepo, templateRepo, auditRepo, cfg.Upload.Dir)
	templateService := services.NewJobTemplateService(templateRepo)
	pipelineService := services.NewPipelineService(gormDB, candidateRepo, interviewRepo, companyRepo, auditRepo, emailService)
	auditService := services.NewAuditService(auditRepo)

	importService := services.NewImportService(importRepo, candidateRepo, templateRepo, auditRepo, userRepo, emailService, cfg.Upload.Dir)
	importWorker := workers.NewImportWorker(importService, cfg.Import.QueueSize, cfg.Import.WorkerCount)
	importService.SetQueue(importWorker)

	reminderWorker := workers.NewReminderWorker(interviewRepo, emailService)

	container := &services.ServiceContainer{
		AuthService:        authService,
		UserService:        userService,
		CompanyService:     companyService,
		CandidateService:   candidateService,
		JobTemplateService: templateService,
		PipelineService:    pipelineService,
		ImportService:      importService,
		AuditService:       auditService,
		EmailService:       emailService,
	}
	return container, importWorker, reminderWorker
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:        handlers.NewUserHandler(baseHandler, container.UserService),
		CompanyHandler:     handlers.NewCompanyHandler(baseHandler, container.CompanyService),
		CandidateHandler:   handlers.NewCandidateHandler(baseHandler, container.CandidateService),
		InterviewHandler:   handlers.NewInterviewHandler(baseHandler, container.PipelineService),
		JobTemplateHandler: handlers.NewJobTemplateHandler(baseHandler, container.JobTemplateService),
		ImportHandler:      handlers.NewImportHandler(baseHandler, container.ImportService),
		AuditHandler:       handlers.NewAuditHandler(baseHandler, container.AuditService),
		AdminHandler:       handlers.NewAdminHandler(baseHandler, container.CompanyService, container.PipelineService),
		HealthHandler:      handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// AutoMigrate keeps the schema in sync on boot.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.CompanyAIConfig{},
		&models.User{},
		&models.RefreshToken{},
		&models.Role{},
		&models.JobTemplate{},
		&models.Candidate{},
		&models.Interview{},
		&models.HumanVerdict{},
		&models.AIReport{},
		&models.AuditLog{},
		&models.ImportJob{},
	)
}

// seedFirstAdmin creates the platform company and the first admin user
// when FIRST_ADMIN_EMAIL / FIRST_ADMIN_PASSWORD are set and no such user
// exists yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var adminUser models.User
		result := tx.Where("email = ?", adminEmail).First(&adminUser)
		if result.Error == nil {
			logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

		const platformName = "Platform Administration"
		var platform models.Company
		if err := tx.Where("name = ?", platformName).First(&platform).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check for platform company: %w", err)
			}
			platform = models.Company{Name: platformName, IsActive: true}
			if err := tx.Create(&platform).Error; err != nil {
				return fmt.Errorf("failed to create platform company: %w", err)
			}
			if err := tx.Create(&models.CompanyAIConfig{CompanyID: platform.ID}).Error; err != nil {
				return fmt.Errorf("failed to create platform ai config: %w", err)
			}
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		newAdmin := &models.User{
			CompanyID:    platform.ID,
			Email:        adminEmail,
			Name:         "Administrator",
			PasswordHash: string(hashedPassword),
			Role:         models.UserRoleAdmin,
			Status:       models.UserStatusActive,
			IsVerified:   true,
		}
		if err := tx.Create(newAdmin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		logger.Info("Created first admin user", "email", adminEmail)
		return nil
	})
}
