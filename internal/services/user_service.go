package services

import (
	"hireflow_backend/internal/auth"
	"hireflow_backend/internal/models"
	"hireflow_backend/internal/repositories"
	"hireflow_backend/internal/services/dto"
	"hireflow_backend/pkg/apperrors"
)

type UserService interface {
	CreateUser(companyID string, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(companyID, userID string) (*dto.UserResponse, error)
	ListUsers(companyID string, criteria *dto.UserSearchCriteria) (*dto.UserListResponse, error)
	UpdateUser(companyID, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(companyID, userID string) error
	SetManager(companyID, userID string, managerID *string) error

	CreateRole(companyID string, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	ListRoles(companyID string) ([]*dto.RoleResponse, error)
	UpdateRole(companyID, roleID string, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error)
	DeleteRole(companyID, roleID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) CreateUser(companyID string, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !models.ValidUserRole(req.Role) {
		return nil, apperrors.ErrInvalidUserRole
	}

	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.RoleID != nil {
		if err := s.checkRoleOwnership(companyID, *req.RoleID); err != nil {
			return nil, err
		}
	}

	user := &models.User{
		CompanyID:    companyID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashedPassword,
		Role:         req.Role,
		Status:       models.UserStatusActive,
		IsVerified:   true,
		RoleID:       req.RoleID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) GetUser(companyID, userID string) (*dto.UserResponse, error) {
	user, err := s.findCompanyUser(companyID, userID)
	if err != nil {
		return nil, err
	}
	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) ListUsers(companyID string, criteria *dto.UserSearchCriteria) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		CompanyID: companyID,
		Role:      models.UserRole(criteria.Role),
		Status:    models.UserStatus(criteria.Status),
		Search:    criteria.Search,
		Page:      criteria.Page,
		PageSize:  criteria.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, buildUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: calculateTotalPages(total, filter.PageSize),
	}, nil
}

func (s *UserServiceImpl) UpdateUser(companyID, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.findCompanyUser(companyID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		if !models.ValidUserRole(*req.Role) {
			return nil, apperrors.ErrInvalidUserRole
		}
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.RoleID != nil {
		if err := s.checkRoleOwnership(companyID, *req.RoleID); err != nil {
			return nil, err
		}
		user.RoleID = req.RoleID
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildUserResponse(user), nil
}

func (s *UserServiceImpl) DeleteUser(companyID, userID string) error {
	if _, err := s.findCompanyUser(companyID, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// SetManager links the user to a manager in the same company. It walks
// the manager chain to reject cycles before writing anything.
func (s *UserServiceImpl) SetManager(companyID, userID string, managerID *string) error {
	user, err := s.findCompanyUser(companyID, userID)
	if err != nil {
		return err
	}

	if managerID != nil {
		if *managerID == user.ID {
			return apperrors.ErrManagerCycle
		}
		manager, err := s.findCompanyUser(companyID, *managerID)
		if err != nil {
			return err
		}

		// Walk up from the proposed manager. Hitting the user again
		// means the assignment would close a loop.
		seen := map[string]bool{user.ID: true}
		current := manager
		for current.ManagerID != nil {
			next := *current.ManagerID
			if seen[next] {
				return apperrors.ErrManagerCycle
			}
			seen[current.ID] = true
			parent, err := s.userRepo.FindByID(next)
			if err != nil {
				break
			}
			current = parent
		}
	}

	if err := s.userRepo.SetManager(userID, managerID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Custom role operations

// validatePermissions rejects permission strings outside the built-in catalog.
func validatePermissions(permissions []string) error {
	for _, p := range permissions {
		if !auth.KnownPermission(p) {
			return apperrors.ErrInvalidOperation("role", "unknown permission: "+p)
		}
	}
	return nil
}

func (s *UserServiceImpl) CreateRole(companyID string, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}

	role := &models.Role{
		CompanyID:   companyID,
		Name:        req.Name,
		Permissions: toJSON(req.Permissions),
	}
	if err := s.userRepo.CreateRole(role); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRoleResponse(role), nil
}

func (s *UserServiceImpl) ListRoles(companyID string) ([]*dto.RoleResponse, error) {
	roles, err := s.userRepo.FindRolesByCompany(companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses := make([]*dto.RoleResponse, 0, len(roles))
	for i := range roles {
		responses = append(responses, buildRoleResponse(&roles[i]))
	}
	return responses, nil
}

func (s *UserServiceImpl) UpdateRole(companyID, roleID string, req *dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := s.userRepo.FindRoleByID(roleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoleNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if role.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch("role")
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Permissions != nil {
		if err := validatePermissions(req.Permissions); err != nil {
			return nil, err
		}
		role.Permissions = toJSON(req.Permissions)
	}

	if err := s.userRepo.UpdateRole(role); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildRoleResponse(role), nil
}

func (s *UserServiceImpl) DeleteRole(companyID, roleID string) error {
	role, err := s.userRepo.FindRoleByID(roleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoleNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if role.CompanyID != companyID {
		return apperrors.ErrTenantMismatch("role")
	}
	if err := s.userRepo.DeleteRole(roleID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// --- helpers ---

func (s *UserServiceImpl) findCompanyUser(companyID, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.CompanyID != companyID {
		return nil, apperrors.ErrTenantMismatch("user")
	}
	return user, nil
}

func (s *UserServiceImpl) checkRoleOwnership(companyID, roleID string) error {
	role, err := s.userRepo.FindRoleByID(roleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRoleNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if role.CompanyID != companyID {
		return apperrors.ErrTenantMismatch("role")
	}
	return nil
}

func buildRoleResponse(role *models.Role) *dto.RoleResponse {
	var permissions []string
	fromJSON(role.Permissions, &permissions)
	return &dto.RoleResponse{
		ID:          role.ID,
		CompanyID:   role.CompanyID,
		Name:        role.Name,
		Permissions: permissions,
		CreatedAt:   role.CreatedAt,
	}
}
