package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shasanksaas/RMS-sub004/internal/application/identity"
	"github.com/shasanksaas/RMS-sub004/internal/application/identity/dto"
	httpdto "github.com/shasanksaas/RMS-sub004/internal/interfaces/http/dto"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant administration HTTP requests
type TenantHandler struct {
	BaseHandler
	tenantService *identityapp.TenantService
	userService   *identityapp.UserService
	authMW        gin.HandlerFunc
	guard         *middleware.Guard
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *identityapp.TenantService, userService *identityapp.UserService, authMW gin.HandlerFunc, guard *middleware.Guard) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		userService:   userService,
		authMW:        authMW,
		guard:         guard,
	}
}

// RegisterRoutes registers tenant administration routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/admin/tenants", h.authMW, h.guard.RequireAdmin())
	{
		tenants.POST("", h.CreateTenant)
		tenants.GET("", h.ListTenants)
		tenants.GET("/:id", h.GetTenant)
		tenants.PUT("/:id", h.UpdateTenant)
		tenants.DELETE("/:id", h.DeleteTenant)
		tenants.POST("/:id/suspend", h.SuspendTenant)
		tenants.POST("/:id/activate", h.ActivateTenant)
		tenants.GET("/:id/users", h.ListTenantUsers)
	}
}

// CreateTenant godoc
//
//	@Summary	Create a tenant
//	@Tags		tenants
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateTenantRequest	true	"Tenant"
//	@Success	201		{object}	dto.TenantResponse
//	@Router		/admin/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// ListTenants godoc
//
//	@Summary	List tenants
//	@Tags		tenants
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query	int		false	"Page number"
//	@Param		page_size	query	int		false	"Page size"
//	@Param		search		query	string	false	"Search by slug or name"
//	@Success	200	{object}	dto.TenantResponse
//	@Router		/admin/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	var req httpdto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.tenantService.ListTenants(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetTenant godoc
//
//	@Summary	Get a tenant by ID
//	@Tags		tenants
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Tenant ID"
//	@Success	200	{object}	dto.TenantResponse
//	@Router		/admin/tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// UpdateTenant godoc
//
//	@Summary	Update a tenant
//	@Tags		tenants
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"Tenant ID"
//	@Param		request	body		dto.UpdateTenantRequest	true	"Fields to update"
//	@Success	200		{object}	dto.TenantResponse
//	@Router		/admin/tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var idReq httpdto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), idReq.UUID(), req, middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// DeleteTenant godoc
//
//	@Summary	Delete a tenant and its scoped data
//	@Tags		tenants
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Tenant ID"
//	@Success	204
//	@Router		/admin/tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), req.UUID(), middleware.ActorFromContext(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SuspendTenant godoc
//
//	@Summary	Suspend a tenant
//	@Tags		tenants
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Tenant ID"
//	@Success	200	{object}	dto.TenantResponse
//	@Router		/admin/tenants/{id}/suspend [post]
func (h *TenantHandler) SuspendTenant(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.SuspendTenant(c.Request.Context(), req.UUID(), middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// ActivateTenant godoc
//
//	@Summary	Reactivate a suspended tenant
//	@Tags		tenants
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Tenant ID"
//	@Success	200	{object}	dto.TenantResponse
//	@Router		/admin/tenants/{id}/activate [post]
func (h *TenantHandler) ActivateTenant(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantService.ActivateTenant(c.Request.Context(), req.UUID(), middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// ListTenantUsers godoc
//
//	@Summary	List users belonging to a tenant
//	@Tags		tenants
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Tenant ID"
//	@Success	200	{object}	dto.UserResponse
//	@Router		/admin/tenants/{id}/users [get]
func (h *TenantHandler) ListTenantUsers(c *gin.Context) {
	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var listReq httpdto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.HandleBindError(c, err)
		return
	}

	users, err := h.userService.ListUsersForTenant(c.Request.Context(), req.UUID(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, users)
}
