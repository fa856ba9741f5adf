package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
)

// LoginRequest is the credential payload for a session login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ImpersonateRequest asks for a merchant session bound to a tenant
type ImpersonateRequest struct {
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
}

// UserResponse is the API representation of a user account
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name,omitempty"`
	Role        string     `json:"role"`
	TenantID    *uuid.UUID `json:"tenant_id,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role.String(),
		TenantID:    user.TenantID,
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
	}
}

// SessionResponse carries a signed token and the authenticated user
type SessionResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user,omitempty"`
}

// ImpersonationResponse carries an impersonation token and its scope
type ImpersonationResponse struct {
	Token      string    `json:"token"`
	TokenType  string    `json:"token_type"`
	ExpiresAt  time.Time `json:"expires_at"`
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantSlug string    `json:"tenant_slug"`
}
