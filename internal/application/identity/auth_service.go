package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	"github.com/shasanksaas/RMS-sub004/internal/application/identity/dto"
	domainaudit "github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/auth"
)

// AuthService handles login, logout, and impersonation token issuance
type AuthService struct {
	userRepo   identity.UserRepository
	tenantRepo identity.TenantRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	auditSvc   *auditapp.Service
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo identity.UserRepository,
	tenantRepo identity.TenantRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	auditSvc *auditapp.Service,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		auditSvc:   auditSvc,
		logger:     logger,
	}
}

// Login authenticates a user and issues a session token. Lookup failures
// and bad passwords return the same error so the endpoint does not leak
// which emails exist.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to authenticate")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Failed login attempt", zap.String("email", user.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "This account has been deactivated")
	}

	if user.TenantID != nil {
		tenant, err := s.tenantRepo.FindByID(ctx, *user.TenantID)
		if err != nil {
			s.logger.Error("Failed to load user's tenant", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to authenticate")
		}
		if !tenant.IsActive() {
			return nil, shared.NewDomainError("TENANT_SUSPENDED", "This tenant account is suspended")
		}
	}

	token, err := s.jwtService.IssueToken(user)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue session token")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds; the timestamp is informational
		s.logger.Warn("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()))

	return &dto.SessionResponse{
		Token:     token.Token,
		TokenType: token.TokenType,
		ExpiresAt: token.ExpiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// Logout revokes the session token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return shared.NewDomainError("INVALID_TOKEN", "Session token carries no ID")
	}

	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke session")
	}

	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Impersonate issues a merchant-scoped session for a platform admin. The
// token carries the merchant role bound to the target tenant plus the
// acting admin's identity; issuance is always audited.
func (s *AuthService) Impersonate(ctx context.Context, adminClaims *auth.Claims, req dto.ImpersonateRequest, actor auditapp.Actor) (*dto.ImpersonationResponse, error) {
	if adminClaims == nil || adminClaims.GetRole() != identity.RoleAdmin {
		return nil, shared.NewDomainError("FORBIDDEN", "Only platform admins can impersonate tenants")
	}

	adminID, err := adminClaims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Session token carries no user ID")
	}

	admin, err := s.userRepo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("FORBIDDEN", "Admin account no longer exists")
		}
		s.logger.Error("Failed to load admin user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue impersonation token")
	}
	if !admin.IsAdmin() || !admin.IsActive() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only active platform admins can impersonate tenants")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, tenantLookupError(err)
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "Cannot impersonate a suspended tenant")
	}

	token, err := s.jwtService.IssueImpersonationToken(admin, tenant.ID)
	if err != nil {
		s.logger.Error("Failed to issue impersonation token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue impersonation token")
	}

	s.auditSvc.Record(ctx, actor, domainaudit.ActionImpersonationStart, &tenant.ID, map[string]any{
		"tenant_slug": tenant.Slug,
		"expires_at":  token.ExpiresAt,
	})

	s.logger.Info("Impersonation token issued",
		zap.String("admin_id", admin.ID.String()),
		zap.String("tenant_id", tenant.ID.String()))

	return &dto.ImpersonationResponse{
		Token:      token.Token,
		TokenType:  token.TokenType,
		ExpiresAt:  token.ExpiresAt,
		TenantID:   tenant.ID,
		TenantSlug: tenant.Slug,
	}, nil
}

// RevokeUserSessions invalidates every outstanding token for a user
func (s *AuthService) RevokeUserSessions(ctx context.Context, userID string) error {
	ttl := s.jwtService.GetAccessTokenExpiration()
	if err := s.blacklist.RevokeUser(ctx, userID, ttl); err != nil {
		s.logger.Error("Failed to revoke user sessions",
			zap.String("user_id", userID),
			zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke sessions")
	}
	return nil
}
