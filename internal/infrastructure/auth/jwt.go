package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrMissingRole      = errors.New("missing role in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims represents the custom JWT claims. A normal session carries the
// user's own role. An impersonation session carries role "merchant" plus the
// acting admin's identity, so downstream authorization treats the session as
// the merchant while the audit trail names the admin.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	TenantID      string `json:"tenant_id,omitempty"`
	ActingAdminID string `json:"acting_admin_id,omitempty"`
}

// IsImpersonation returns true when the session is an admin acting as a merchant
func (c *Claims) IsImpersonation() bool {
	return c.ActingAdminID != ""
}

// GetUserUUID parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetTenantUUID parses the tenant ID from claims. Returns uuid.Nil for
// platform admin sessions with no tenant binding.
func (c *Claims) GetTenantUUID() (uuid.UUID, error) {
	if c.TenantID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(c.TenantID)
}

// GetRole returns the role claim as a domain role
func (c *Claims) GetRole() identity.Role {
	return identity.Role(c.Role)
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IssuedToken is a signed token with its expiry
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"` // Bearer
}

// JWTService signs and validates session tokens
type JWTService struct {
	secret                  []byte
	accessExpiration        time.Duration
	impersonationExpiration time.Duration
	issuer                  string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:                  []byte(cfg.Secret),
		accessExpiration:        cfg.AccessTokenExpiration,
		impersonationExpiration: cfg.ImpersonationExpiration,
		issuer:                  cfg.Issuer,
	}
}

// IssueToken issues a session token for a user
func (s *JWTService) IssueToken(user *identity.User) (*IssuedToken, error) {
	if user == nil {
		return nil, ErrInvalidClaims
	}

	tenantID := ""
	if user.TenantID != nil {
		tenantID = user.TenantID.String()
	}

	return s.sign(&Claims{
		UserID:   user.ID.String(),
		Email:    user.Email,
		Role:     user.Role.String(),
		TenantID: tenantID,
	}, s.accessExpiration)
}

// IssueImpersonationToken issues a short-lived merchant-role token for an
// admin acting inside a target tenant. The admin's identity stays in the
// claims for auditing.
func (s *JWTService) IssueImpersonationToken(admin *identity.User, tenantID uuid.UUID) (*IssuedToken, error) {
	if admin == nil || !admin.IsAdmin() {
		return nil, ErrInvalidClaims
	}
	if tenantID == uuid.Nil {
		return nil, ErrInvalidClaims
	}

	return s.sign(&Claims{
		UserID:        admin.ID.String(),
		Email:         admin.Email,
		Role:          identity.RoleMerchant.String(),
		TenantID:      tenantID.String(),
		ActingAdminID: admin.ID.String(),
	}, s.impersonationExpiration)
}

func (s *JWTService) sign(claims *Claims, expiration time.Duration) (*IssuedToken, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		Audience:  jwt.ClaimStrings{s.issuer},
		ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     signed,
		ExpiresAt: now.Add(expiration),
		TokenType: "Bearer",
	}, nil
}

// ValidateToken validates a session token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if !claims.GetRole().IsValid() {
		return nil, ErrMissingRole
	}

	return claims, nil
}

// GetAccessTokenExpiration returns the access token expiration duration
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.accessExpiration
}
