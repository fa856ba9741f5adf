package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	"github.com/shasanksaas/RMS-sub004/internal/application/identity/dto"
	domainaudit "github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/auth"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/config"
)

type authFixture struct {
	svc        *AuthService
	userRepo   *MockUserRepository
	tenantRepo *MockTenantRepository
	auditRepo  *MockAuditLogRepository
	blacklist  *MockTokenBlacklist
	jwtService *auth.JWTService
}

func newAuthFixture() *authFixture {
	userRepo := new(MockUserRepository)
	tenantRepo := new(MockTenantRepository)
	auditRepo := new(MockAuditLogRepository)
	blacklist := new(MockTokenBlacklist)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                  "test-secret-key-that-is-long-enough",
		AccessTokenExpiration:   15 * time.Minute,
		ImpersonationExpiration: time.Hour,
		Issuer:                  "rms-test",
	})
	auditSvc := auditapp.NewService(auditRepo, zap.NewNop())

	return &authFixture{
		svc:        NewAuthService(userRepo, tenantRepo, jwtService, blacklist, auditSvc, zap.NewNop()),
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		auditRepo:  auditRepo,
		blacklist:  blacklist,
		jwtService: jwtService,
	}
}

func newMerchantUser(t *testing.T, tenantID uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser("merchant@example.com", "password123", identity.RoleMerchant, &tenantID)
	require.NoError(t, err)
	return user
}

func newAdminUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("admin@example.com", "password123", identity.RoleAdmin, nil)
	require.NoError(t, err)
	return user
}

func TestAuthService_Login(t *testing.T) {
	t.Run("successful merchant login", func(t *testing.T) {
		f := newAuthFixture()

		tenant, err := identity.NewTenant("acme-returns", "Acme Returns")
		require.NoError(t, err)
		user := newMerchantUser(t, tenant.ID)

		f.userRepo.On("FindByEmail", mock.Anything, "merchant@example.com").Return(user, nil)
		f.tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		f.userRepo.On("Save", mock.Anything, user).Return(nil)

		resp, err := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "merchant@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "merchant", resp.User.Role)
		assert.NotNil(t, user.LastLoginAt)

		claims, err := f.jwtService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, tenant.ID.String(), claims.TenantID)
		assert.False(t, claims.IsImpersonation())
	})

	t.Run("unknown email and bad password return the same error", func(t *testing.T) {
		f := newAuthFixture()

		tenant, err := identity.NewTenant("acme-returns", "Acme Returns")
		require.NoError(t, err)
		user := newMerchantUser(t, tenant.ID)

		f.userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)
		f.userRepo.On("FindByEmail", mock.Anything, "merchant@example.com").Return(user, nil)

		_, errUnknown := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})
		_, errBadPassword := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "merchant@example.com",
			Password: "wrong-password",
		})

		var unknownErr, badPasswordErr *shared.DomainError
		require.ErrorAs(t, errUnknown, &unknownErr)
		require.ErrorAs(t, errBadPassword, &badPasswordErr)
		assert.Equal(t, "INVALID_CREDENTIALS", unknownErr.Code)
		assert.Equal(t, unknownErr.Code, badPasswordErr.Code)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		f := newAuthFixture()

		tenant, err := identity.NewTenant("acme-returns", "Acme Returns")
		require.NoError(t, err)
		user := newMerchantUser(t, tenant.ID)
		user.Deactivate()

		f.userRepo.On("FindByEmail", mock.Anything, "merchant@example.com").Return(user, nil)

		_, err = f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "merchant@example.com",
			Password: "password123",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DISABLED", domainErr.Code)
	})

	t.Run("suspended tenant blocks merchant login", func(t *testing.T) {
		f := newAuthFixture()

		tenant, err := identity.NewTenant("acme-returns", "Acme Returns")
		require.NoError(t, err)
		require.NoError(t, tenant.Suspend())
		user := newMerchantUser(t, tenant.ID)

		f.userRepo.On("FindByEmail", mock.Anything, "merchant@example.com").Return(user, nil)
		f.tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

		_, err = f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "merchant@example.com",
			Password: "password123",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TENANT_SUSPENDED", domainErr.Code)
	})

	t.Run("admin login needs no tenant check", func(t *testing.T) {
		f := newAuthFixture()
		admin := newAdminUser(t)

		f.userRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		f.userRepo.On("Save", mock.Anything, admin).Return(nil)

		resp, err := f.svc.Login(context.Background(), dto.LoginRequest{
			Email:    "admin@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.User.Role)
		f.tenantRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes the token for its remaining lifetime", func(t *testing.T) {
		f := newAuthFixture()
		admin := newAdminUser(t)

		token, err := f.jwtService.IssueToken(admin)
		require.NoError(t, err)
		claims, err := f.jwtService.ValidateToken(token.Token)
		require.NoError(t, err)

		f.blacklist.On("Revoke", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 0 && ttl <= 15*time.Minute
		})).Return(nil)

		require.NoError(t, f.svc.Logout(context.Background(), claims))
		f.blacklist.AssertExpectations(t)
	})

	t.Run("nil claims rejected", func(t *testing.T) {
		f := newAuthFixture()
		err := f.svc.Logout(context.Background(), nil)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
	})
}

func TestAuthService_Impersonate(t *testing.T) {
	start := func(t *testing.T) (*authFixture, *identity.User, *identity.Tenant, *auth.Claims) {
		t.Helper()
		f := newAuthFixture()
		admin := newAdminUser(t)
		tenant, err := identity.NewTenant("acme-returns", "Acme Returns")
		require.NoError(t, err)

		token, err := f.jwtService.IssueToken(admin)
		require.NoError(t, err)
		claims, err := f.jwtService.ValidateToken(token.Token)
		require.NoError(t, err)

		return f, admin, tenant, claims
	}

	t.Run("issues merchant token bound to the tenant and audits", func(t *testing.T) {
		f, admin, tenant, claims := start(t)

		f.userRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
		f.tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
		f.auditRepo.On("Append", mock.Anything, mock.MatchedBy(func(entry *domainaudit.AuditLogEntry) bool {
			return entry.Action == domainaudit.ActionImpersonationStart &&
				entry.TenantID != nil && *entry.TenantID == tenant.ID
		})).Return(nil)

		resp, err := f.svc.Impersonate(context.Background(), claims, dto.ImpersonateRequest{TenantID: tenant.ID}, auditapp.Actor{
			UserID: admin.ID,
			Email:  admin.Email,
		})
		require.NoError(t, err)

		issued, err := f.jwtService.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "merchant", issued.Role)
		assert.Equal(t, tenant.ID.String(), issued.TenantID)
		assert.Equal(t, admin.ID.String(), issued.ActingAdminID)
		assert.True(t, issued.IsImpersonation())
		f.auditRepo.AssertExpectations(t)
	})

	t.Run("non-admin claims rejected", func(t *testing.T) {
		f := newAuthFixture()
		tenantID := uuid.New()
		merchant := newMerchantUser(t, tenantID)

		token, err := f.jwtService.IssueToken(merchant)
		require.NoError(t, err)
		claims, err := f.jwtService.ValidateToken(token.Token)
		require.NoError(t, err)

		_, err = f.svc.Impersonate(context.Background(), claims, dto.ImpersonateRequest{TenantID: tenantID}, auditapp.Actor{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("suspended tenant cannot be impersonated", func(t *testing.T) {
		f, admin, tenant, claims := start(t)
		require.NoError(t, tenant.Suspend())

		f.userRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
		f.tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

		_, err := f.svc.Impersonate(context.Background(), claims, dto.ImpersonateRequest{TenantID: tenant.ID}, auditapp.Actor{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TENANT_SUSPENDED", domainErr.Code)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		f, admin, _, claims := start(t)
		missing := uuid.New()

		f.userRepo.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
		f.tenantRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Impersonate(context.Background(), claims, dto.ImpersonateRequest{TenantID: missing}, auditapp.Actor{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TENANT_NOT_FOUND", domainErr.Code)
	})
}

func TestAuthService_RevokeUserSessions(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New().String()

	f.blacklist.On("RevokeUser", mock.Anything, userID, 15*time.Minute).Return(nil)

	require.NoError(t, f.svc.RevokeUserSessions(context.Background(), userID))
	f.blacklist.AssertExpectations(t)
}
