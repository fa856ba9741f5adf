package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	httpdto "github.com/shasanksaas/RMS-sub004/internal/interfaces/http/dto"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
)

// AuditHandler serves the audit log, platform-wide for admins and
// tenant-scoped for merchant sessions.
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.Service
	authMW       gin.HandlerFunc
	guard        *middleware.Guard
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.Service, authMW gin.HandlerFunc, guard *middleware.Guard) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		authMW:       authMW,
		guard:        guard,
	}
}

// RegisterRoutes registers audit log routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/audit", h.authMW, h.guard.RequireAdmin(), h.ListAll)
	rg.GET("/audit", h.authMW, h.guard.RequireAdminOrImpersonation(), h.guard.RequireTenant(), h.ListForTenant)
}

// ListAll godoc
//
//	@Summary	List audit log entries across all tenants
//	@Tags		audit
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	audit.AuditLogEntry
//	@Router		/admin/audit [get]
func (h *AuditHandler) ListAll(c *gin.Context) {
	var req httpdto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.auditService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListForTenant godoc
//
//	@Summary	List audit log entries for the session's tenant
//	@Tags		audit
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	audit.AuditLogEntry
//	@Router		/audit [get]
func (h *AuditHandler) ListForTenant(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req httpdto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	result, err := h.auditService.ListForTenant(c.Request.Context(), tenant, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
