package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/shasanksaas/RMS-sub004/internal/application/identity"
	returnsapp "github.com/shasanksaas/RMS-sub004/internal/application/returns"
	"github.com/shasanksaas/RMS-sub004/internal/application/returns/dto"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// PublicHandler serves the unauthenticated customer surface: draft
// submission against a tenant slug and status lookup by token.
type PublicHandler struct {
	BaseHandler
	draftService  *returnsapp.DraftService
	tenantService *identityapp.TenantService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(draftService *returnsapp.DraftService, tenantService *identityapp.TenantService) *PublicHandler {
	return &PublicHandler{
		draftService:  draftService,
		tenantService: tenantService,
	}
}

// RegisterRoutes registers public routes. No auth middleware applies here.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/public")
	{
		public.POST("/:slug/returns", h.SubmitDraft)
		public.GET("/returns/:token", h.GetDraftStatus)
	}
}

// SubmitDraft godoc
//
//	@Summary	Submit a customer return request
//	@Tags		public
//	@Accept		json
//	@Produce	json
//	@Param		slug	path		string					true	"Tenant slug"
//	@Param		request	body		dto.SubmitDraftRequest	true	"Return request"
//	@Success	201		{object}	dto.DraftResponse
//	@Router		/public/{slug}/returns [post]
func (h *PublicHandler) SubmitDraft(c *gin.Context) {
	tenant, err := h.tenantService.GetTenantBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if tenant.Status != string(identity.TenantStatusActive) {
		h.HandleError(c, shared.NewDomainError("TENANT_SUSPENDED", "This store is not accepting returns right now"))
		return
	}

	var req dto.SubmitDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	draft, err := h.draftService.SubmitDraft(c.Request.Context(), tenant.ID, returns.ChannelCustomer, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, draft)
}

// GetDraftStatus godoc
//
//	@Summary	Look up the status of a submitted return by its token
//	@Tags		public
//	@Produce	json
//	@Param		token	path		string	true	"Status token"
//	@Success	200		{object}	dto.DraftStatusResponse
//	@Router		/public/returns/{token} [get]
func (h *PublicHandler) GetDraftStatus(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		h.BadRequest(c, "Invalid status token")
		return
	}

	status, err := h.draftService.GetDraftStatus(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}
