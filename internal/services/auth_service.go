package services

import (
	"time"

	"gorm.io/gorm"

	"hireflow_backend/internal/auth"
	"hireflow_backend/internal/config"
	"hireflow_backend/internal/email"
	"hireflow_backend/internal/logger"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
	ChangePassword(userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	db            *gorm.DB
	userRepo      repositories.UserRepository
	companyRepo   repositories.CompanyRepository
	emailProvider email.Provider
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		db:            db,
		userRepo:      userRepo,
		companyRepo:   companyRepo,
		emailProvider: emailProvider,
	}
}

// Register creates a tenant: the company, its default AI config and the
// first HR user, all in one transaction.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var user *models.User
	var company *models.Company

	err = s.db.Transaction(func(tx *gorm.DB) error {
		company = &models.Company{
			Name:     req.CompanyName,
			IsActive: true,
		}
		if req.EmailDomain != "" {
			domain := req.EmailDomain
			company.EmailDomain = &domain
		}

		var existing models.Company
		if err := tx.Where("name = ?", company.Name).First(&existing).Error; err == nil {
			return apperrors.ErrAlreadyExists(repositories.ErrCompanyAlreadyExists)
		}
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		// Every tenant starts with the default thresholds.
		if err := tx.Create(&models.CompanyAIConfig{CompanyID: company.ID}).Error; err != nil {
			return err
		}

		user = &models.User{
			CompanyID:    company.ID,
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hashedPassword,
			Role:         models.UserRoleHR,
			Status:       models.UserStatusActive,
			IsVerified:   true,
		}

		var existingUser models.User
		if err := tx.Where("email = ?", user.Email).First(&existingUser).Error; err == nil {
			return apperrors.ErrEmailAlreadyExists
		}
		return tx.Create(user).Error
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.InternalError(err)
	}

	go func() {
		sendErr := s.emailProvider.SendTemplate(
			[]string{user.Email},
			"Welcome to "+company.Name,
			email.TemplateWelcome,
			email.TemplateData{"Name": user.Name, "CompanyName": company.Name},
		)
		if sendErr != nil {
			logger.WithError(sendErr).Warn("failed to send welcome email", "email", user.Email)
		}
	}()

	return s.issueTokens(user)
}

// Login authenticates the user and issues tokens.
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// RefreshToken rotates the refresh token and issues a new access token.
func (s *AuthServiceImpl) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	token, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		// Not found or any other failure: the token is unusable either way
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.checkUserStatus(user); err != nil {
		return nil, err
	}

	// One-time use: the old token dies with the rotation.
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

// Logout invalidates the refresh token.
func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ChangePassword verifies the current password and stores the new hash.
func (s *AuthServiceImpl) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", hashedPassword).Error; err != nil {
		return apperrors.InternalError(err)
	}

	// All sessions die with the password.
	return s.userRepo.DeleteUserRefreshTokens(userID)
}

// --- helpers ---

func (s *AuthServiceImpl) checkUserStatus(user *models.User) error {
	switch user.Status {
	case models.UserStatusActive:
		return nil
	case models.UserStatusPending:
		return apperrors.NewForbiddenError("User not verified")
	default:
		return apperrors.NewForbiddenError("User account is suspended")
	}
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.LoginResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.CompanyID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     generateRandomToken(),
		ExpiresAt: time.Now().Add(time.Duration(cfg.JWT.RefreshTTL) * time.Hour),
	}
	if err := s.userRepo.CreateRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User:         buildUserResponse(user),
	}, nil
}

func buildUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		CompanyID: user.CompanyID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		RoleID:    user.RoleID,
		ManagerID: user.ManagerID,
		CreatedAt: user.CreatedAt,
	}
}
