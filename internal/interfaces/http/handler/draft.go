package handler

import (
	"github.com/gin-gonic/gin"

	returnsapp "github.com/shasanksaas/RMS-sub004/internal/application/returns"
	"github.com/shasanksaas/RMS-sub004/internal/application/returns/dto"
	rulesapp "github.com/shasanksaas/RMS-sub004/internal/application/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	httpdto "github.com/shasanksaas/RMS-sub004/internal/interfaces/http/dto"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
)

// DraftHandler handles return draft HTTP requests for the merchant surface
type DraftHandler struct {
	BaseHandler
	draftService *returnsapp.DraftService
	ruleService  *rulesapp.RuleService
	authMW       gin.HandlerFunc
	guard        *middleware.Guard
}

// NewDraftHandler creates a new DraftHandler
func NewDraftHandler(draftService *returnsapp.DraftService, ruleService *rulesapp.RuleService, authMW gin.HandlerFunc, guard *middleware.Guard) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		ruleService:  ruleService,
		authMW:       authMW,
		guard:        guard,
	}
}

// RegisterRoutes registers return draft routes
func (h *DraftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/returns", h.authMW, h.guard.RequireAdminOrImpersonation(), h.guard.RequireTenant())
	{
		drafts.POST("", h.SubmitDraft)
		drafts.GET("", h.ListDrafts)
		drafts.GET("/counts", h.CountDrafts)
		drafts.GET("/for-order", h.FindDraftsForOrder)
		drafts.GET("/:id", h.GetDraft)
		drafts.GET("/:id/decisions", h.GetDraftDecisions)
		drafts.POST("/:id/approve", h.ApproveDraft)
		drafts.POST("/:id/reject", h.RejectDraft)
		drafts.POST("/:id/link", h.LinkDraft)
	}
}

// SubmitDraft godoc
//
//	@Summary	Submit a return draft on behalf of a customer
//	@Tags		returns
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.SubmitDraftRequest	true	"Draft"
//	@Success	201		{object}	dto.DraftResponse
//	@Router		/returns [post]
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req dto.SubmitDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	draft, err := h.draftService.SubmitDraft(c.Request.Context(), tenant, returns.ChannelAdmin, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, draft)
}

type listDraftsRequest struct {
	httpdto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=pending_validation approved rejected linked"`
}

// ListDrafts godoc
//
//	@Summary	List return drafts for the tenant
//	@Tags		returns
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status	query		string	false	"Filter by review status"
//	@Param		search	query		string	false	"Search customer name, email or order number"
//	@Success	200		{object}	dto.DraftResponse
//	@Router		/returns [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req listDraftsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var result *shared.Paginated[dto.DraftResponse]
	if req.Status != "" {
		result, err = h.draftService.ListDraftsByStatus(c.Request.Context(), tenant, returns.DraftStatus(req.Status), req.ToFilter())
	} else {
		result, err = h.draftService.ListDrafts(c.Request.Context(), tenant, req.ToFilter())
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// CountDrafts godoc
//
//	@Summary	Count return drafts per review status
//	@Tags		returns
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]int64
//	@Router		/returns/counts [get]
func (h *DraftHandler) CountDrafts(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	counts, err := h.draftService.CountDraftsByStatus(c.Request.Context(), tenant)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, counts)
}

type forOrderRequest struct {
	OrderNumber string `form:"order_number" binding:"required,max=100"`
}

// FindDraftsForOrder godoc
//
//	@Summary	List drafts captured against an order number
//	@Tags		returns
//	@Produce	json
//	@Security	BearerAuth
//	@Param		order_number	query		string	true	"Order number"
//	@Success	200				{object}	dto.DraftResponse
//	@Router		/returns/for-order [get]
func (h *DraftHandler) FindDraftsForOrder(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req forOrderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	drafts, err := h.draftService.FindDraftsForOrder(c.Request.Context(), tenant, req.OrderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, drafts)
}

// GetDraft godoc
//
//	@Summary	Get a return draft by ID
//	@Tags		returns
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Draft ID"
//	@Success	200	{object}	dto.DraftResponse
//	@Router		/returns/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), tenant, req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// GetDraftDecisions godoc
//
//	@Summary	List rule decisions recorded for a draft
//	@Tags		returns
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Draft ID"
//	@Success	200	{object}	dto.DraftResponse
//	@Router		/returns/{id}/decisions [get]
func (h *DraftHandler) GetDraftDecisions(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	decisions, err := h.ruleService.GetDecisionsForDraft(c.Request.Context(), tenant, req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, decisions)
}

// ApproveDraft godoc
//
//	@Summary	Approve a pending return draft
//	@Tags		returns
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Draft ID"
//	@Success	200	{object}	dto.DraftResponse
//	@Router		/returns/{id}/approve [post]
func (h *DraftHandler) ApproveDraft(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	draft, err := h.draftService.ApproveDraft(c.Request.Context(), tenant, req.UUID(), middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// RejectDraft godoc
//
//	@Summary	Reject a pending return draft with a reason
//	@Tags		returns
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"Draft ID"
//	@Param		request	body		dto.RejectDraftRequest	true	"Rejection reason"
//	@Success	200		{object}	dto.DraftResponse
//	@Router		/returns/{id}/reject [post]
func (h *DraftHandler) RejectDraft(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var idReq httpdto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	var req dto.RejectDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	draft, err := h.draftService.RejectDraft(c.Request.Context(), tenant, idReq.UUID(), req, middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// LinkDraft godoc
//
//	@Summary	Link a draft to a verified platform order
//	@Tags		returns
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Draft ID"
//	@Param		request	body		dto.LinkDraftRequest	true	"Platform order"
//	@Success	200		{object}	dto.DraftResponse
//	@Router		/returns/{id}/link [post]
func (h *DraftHandler) LinkDraft(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var idReq httpdto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	var req dto.LinkDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	draft, err := h.draftService.LinkDraft(c.Request.Context(), tenant, idReq.UUID(), req, middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}
