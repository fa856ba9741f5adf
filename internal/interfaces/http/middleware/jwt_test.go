package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/auth"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	cfg := config.JWTConfig{
		Secret:                  "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:   15 * time.Minute,
		ImpersonationExpiration: time.Hour,
		Issuer:                  "rms-test",
	}
	return auth.NewJWTService(cfg)
}

func newMerchantToken(t *testing.T, jwtService *auth.JWTService) (*auth.IssuedToken, *identity.User) {
	t.Helper()
	tenantID := uuid.New()
	user, err := identity.NewUser("merchant@example.com", "s3cret-pass", identity.RoleMerchant, &tenantID)
	require.NoError(t, err)
	token, err := jwtService.IssueToken(user)
	require.NoError(t, err)
	return token, user
}

func authMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist) gin.HandlerFunc {
	return JWTAuth(JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         zap.NewNop(),
	})
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, user := newMerchantToken(t, jwtService)

	router := gin.New()
	router.Use(authMiddleware(jwtService, auth.NewInMemoryTokenBlacklist()))
	router.GET("/test", func(c *gin.Context) {
		claims := GetClaims(c)
		require.NotNil(t, claims)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, user.TenantID.String(), claims.TenantID)
		assert.Equal(t, "merchant", GetRole(c))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(authMiddleware(jwtService, auth.NewInMemoryTokenBlacklist()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_UNAUTHORIZED")
}

func TestJWTAuth_InvalidHeaderFormat(t *testing.T) {
	jwtService := newTestJWTService()

	router := gin.New()
	router.Use(authMiddleware(jwtService, auth.NewInMemoryTokenBlacklist()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_TamperedToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := newMerchantToken(t, jwtService)

	router := gin.New()
	router.Use(authMiddleware(jwtService, auth.NewInMemoryTokenBlacklist()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token+"x")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RevokedToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := newMerchantToken(t, jwtService)
	blacklist := auth.NewInMemoryTokenBlacklist()

	claims, err := jwtService.ValidateToken(token.Token)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, 15*time.Minute))

	router := gin.New()
	router.Use(authMiddleware(jwtService, blacklist))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_UserSessionsRevoked(t *testing.T) {
	jwtService := newTestJWTService()
	token, user := newMerchantToken(t, jwtService)
	blacklist := auth.NewInMemoryTokenBlacklist()

	// Revocation after issuance invalidates every earlier token of the user.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, blacklist.RevokeUser(context.Background(), user.ID.String(), 15*time.Minute))

	router := gin.New()
	router.Use(authMiddleware(jwtService, blacklist))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_NilBlacklistSkipsRevocationChecks(t *testing.T) {
	jwtService := newTestJWTService()
	token, _ := newMerchantToken(t, jwtService)

	router := gin.New()
	router.Use(authMiddleware(jwtService, nil))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
