package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shasanksaas/RMS-sub004/internal/application/identity"
	httpdto "github.com/shasanksaas/RMS-sub004/internal/interfaces/http/dto"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
)

// UserHandler handles user administration HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
	authService *identityapp.AuthService
	authMW      gin.HandlerFunc
	guard       *middleware.Guard
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService, authService *identityapp.AuthService, authMW gin.HandlerFunc, guard *middleware.Guard) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		authMW:      authMW,
		guard:       guard,
	}
}

// RegisterRoutes registers user administration routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/admin/users", h.authMW, h.guard.RequireAdmin())
	{
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id/password", h.ChangePassword)
		users.POST("/:id/deactivate", h.DeactivateUser)
		users.POST("/:id/revoke-sessions", h.RevokeSessions)
	}
}

// CreateUser godoc
//
//	@Summary	Create a user account
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		identityapp.CreateUserRequest	true	"User"
//	@Success	201		{object}	dto.UserResponse
//	@Router		/admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// GetUser godoc
//
//	@Summary	Get a user by ID
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	dto.UserResponse
//	@Router		/admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// ChangePassword godoc
//
//	@Summary	Set a new password for a user
//	@Tags		users
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Router		/admin/users/{id}/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var idReq httpdto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), idReq.UUID(), req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeactivateUser godoc
//
//	@Summary	Deactivate a user account and revoke its sessions
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	dto.UserResponse
//	@Router		/admin/users/{id}/deactivate [post]
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.DeactivateUser(c.Request.Context(), req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Outstanding tokens keep validating until they expire, so revoke them.
	if err := h.authService.RevokeUserSessions(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// RevokeSessions godoc
//
//	@Summary	Revoke all outstanding sessions for a user
//	@Tags		users
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Router		/admin/users/{id}/revoke-sessions [post]
func (h *UserHandler) RevokeSessions(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.authService.RevokeUserSessions(c.Request.Context(), req.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
