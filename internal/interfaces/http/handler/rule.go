package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	rulesapp "github.com/shasanksaas/RMS-sub004/internal/application/rules"
	"github.com/shasanksaas/RMS-sub004/internal/application/rules/dto"
	httpdto "github.com/shasanksaas/RMS-sub004/internal/interfaces/http/dto"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
)

// RuleHandler handles return rule HTTP requests
type RuleHandler struct {
	BaseHandler
	ruleService *rulesapp.RuleService
	authMW      gin.HandlerFunc
	guard       *middleware.Guard
}

// NewRuleHandler creates a new RuleHandler
func NewRuleHandler(ruleService *rulesapp.RuleService, authMW gin.HandlerFunc, guard *middleware.Guard) *RuleHandler {
	return &RuleHandler{
		ruleService: ruleService,
		authMW:      authMW,
		guard:       guard,
	}
}

// RegisterRoutes registers return rule routes
func (h *RuleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rules := rg.Group("/rules", h.authMW, h.guard.RequireAdminOrImpersonation(), h.guard.RequireTenant())
	{
		rules.POST("", h.CreateRule)
		rules.GET("", h.ListRules)
		rules.GET("/decisions", h.ListDecisions)
		rules.GET("/:id", h.GetRule)
		rules.PUT("/:id", h.UpdateRule)
		rules.DELETE("/:id", h.DeleteRule)
	}
}

// CreateRule godoc
//
//	@Summary	Create a return rule
//	@Tags		rules
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateRuleRequest	true	"Rule"
//	@Success	201		{object}	dto.RuleResponse
//	@Router		/rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	rule, err := h.ruleService.CreateRule(c.Request.Context(), tenant, req, middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rule)
}

// ListRules godoc
//
//	@Summary	List return rules for the tenant
//	@Tags		rules
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.RuleResponse
//	@Router		/rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
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

	result, err := h.ruleService.ListRules(c.Request.Context(), tenant, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetRule godoc
//
//	@Summary	Get a return rule by ID
//	@Tags		rules
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Rule ID"
//	@Success	200	{object}	dto.RuleResponse
//	@Router		/rules/{id} [get]
func (h *RuleHandler) GetRule(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid rule ID")
		return
	}

	rule, err := h.ruleService.GetRule(c.Request.Context(), tenant, req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rule)
}

// UpdateRule godoc
//
//	@Summary	Update a return rule
//	@Tags		rules
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"Rule ID"
//	@Param		request	body		dto.UpdateRuleRequest	true	"Rule"
//	@Success	200		{object}	dto.RuleResponse
//	@Router		/rules/{id} [put]
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var idReq httpdto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid rule ID")
		return
	}

	var req dto.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	rule, err := h.ruleService.UpdateRule(c.Request.Context(), tenant, idReq.UUID(), req, middleware.ActorFromContext(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rule)
}

// DeleteRule godoc
//
//	@Summary	Delete a return rule
//	@Tags		rules
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Rule ID"
//	@Success	204
//	@Router		/rules/{id} [delete]
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid rule ID")
		return
	}

	if err := h.ruleService.DeleteRule(c.Request.Context(), tenant, req.UUID(), middleware.ActorFromContext(c)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type listDecisionsRequest struct {
	httpdto.ListRequest
	From string `form:"from" binding:"omitempty"`
	To   string `form:"to" binding:"omitempty"`
}

// ListDecisions godoc
//
//	@Summary	List rule decisions for the tenant
//	@Tags		rules
//	@Produce	json
//	@Security	BearerAuth
//	@Param		from	query		string	false	"Start of window (RFC 3339)"
//	@Param		to		query		string	false	"End of window (RFC 3339)"
//	@Success	200		{object}	dto.DecisionResponse
//	@Router		/rules/decisions [get]
func (h *RuleHandler) ListDecisions(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req listDecisionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	var from, to time.Time
	if req.From != "" {
		if from, err = time.Parse(time.RFC3339, req.From); err != nil {
			h.BadRequest(c, "Invalid 'from' timestamp, expected RFC 3339")
			return
		}
	}
	if req.To != "" {
		if to, err = time.Parse(time.RFC3339, req.To); err != nil {
			h.BadRequest(c, "Invalid 'to' timestamp, expected RFC 3339")
			return
		}
	}

	result, err := h.ruleService.ListDecisions(c.Request.Context(), tenant, from, to, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
