package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/application/identity/dto"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// UserService handles user account management
type UserService struct {
	userRepo   identity.UserRepository
	tenantRepo identity.TenantRepository
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, tenantRepo identity.TenantRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// CreateUserRequest is the payload for creating a user account
type CreateUserRequest struct {
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8,max=128"`
	DisplayName string     `json:"display_name" binding:"omitempty,max=100"`
	Role        string     `json:"role" binding:"required,oneof=admin merchant customer"`
	TenantID    *uuid.UUID `json:"tenant_id"`
}

// CreateUser creates a user account. Non-admin roles must name an existing
// active tenant.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*dto.UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Failed to check email availability", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check email availability")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	if req.TenantID != nil {
		tenant, err := s.tenantRepo.FindByID(ctx, *req.TenantID)
		if err != nil {
			return nil, tenantLookupError(err)
		}
		if !tenant.IsActive() {
			return nil, shared.NewDomainError("TENANT_SUSPENDED", "Cannot add users to a suspended tenant")
		}
	}

	user, err := identity.NewUser(req.Email, req.Password, identity.Role(req.Role), req.TenantID)
	if err != nil {
		return nil, err
	}
	user.DisplayName = req.DisplayName

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return dto.ToUserResponse(user), nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}
	return dto.ToUserResponse(user), nil
}

// ListUsersForTenant returns the users belonging to a tenant
func (s *UserService) ListUsersForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.ToUserResponse(&users[i]))
	}
	return responses, nil
}

// ChangePassword updates a user's password
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return userLookupError(err)
	}

	if err := user.ChangePassword(newPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change password")
	}
	return nil
}

// DeactivateUser disables a user account
func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err)
	}

	user.Deactivate()

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	s.logger.Info("User deactivated", zap.String("user_id", user.ID.String()))
	return dto.ToUserResponse(user), nil
}

func userLookupError(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return shared.NewDomainError("INTERNAL_ERROR", "Failed to load user")
}
