package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shasanksaas/RMS-sub004/internal/application/identity"
	"github.com/shasanksaas/RMS-sub004/internal/application/identity/dto"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
	userService *identityapp.UserService
	authMW      gin.HandlerFunc
	guard       *middleware.Guard
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService, userService *identityapp.UserService, authMW gin.HandlerFunc, guard *middleware.Guard) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		authMW:      authMW,
		guard:       guard,
	}
}

// RegisterRoutes registers authentication routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)

		authed := auth.Group("", h.authMW)
		{
			authed.POST("/logout", h.Logout)
			authed.GET("/me", h.Me)
			authed.POST("/impersonate", h.guard.RequireAdmin(), h.Impersonate)
		}
	}
}

// Login godoc
//
//	@Summary	Authenticate with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	dto.SessionResponse
//	@Failure	401		{object}	dto.SessionResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Logout godoc
//
//	@Summary	Revoke the current session token
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Router		/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Me godoc
//
//	@Summary	Get the authenticated user's account
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.UserResponse
//	@Router		/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid session")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Impersonate godoc
//
//	@Summary	Issue a merchant session bound to a tenant
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.ImpersonateRequest	true	"Target tenant"
//	@Success	200		{object}	dto.ImpersonationResponse
//	@Router		/auth/impersonate [post]
func (h *AuthHandler) Impersonate(c *gin.Context) {
	var req dto.ImpersonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	claims := middleware.GetClaims(c)
	actor := middleware.ActorFromContext(c)

	session, err := h.authService.Impersonate(c.Request.Context(), claims, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}
