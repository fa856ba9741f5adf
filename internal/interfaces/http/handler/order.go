package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/shasanksaas/RMS-sub004/internal/application/orders"
	httpdto "github.com/shasanksaas/RMS-sub004/internal/interfaces/http/dto"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
)

// OrderHandler handles order snapshot HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *ordersapp.OrderService
	authMW       gin.HandlerFunc
	guard        *middleware.Guard
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *ordersapp.OrderService, authMW gin.HandlerFunc, guard *middleware.Guard) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		authMW:       authMW,
		guard:        guard,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.authMW, h.guard.RequireAdminOrImpersonation(), h.guard.RequireTenant())
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/lookup", h.LookupOrder)
		orders.POST("/sync", h.SyncOrder)
		orders.POST("/sync/recent", h.SyncRecentOrders)
		orders.POST("/import", h.ImportOrders)
	}
}

// ListOrders godoc
//
//	@Summary	List order snapshots for the tenant
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponse
//	@Router		/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
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

	result, err := h.orderService.ListOrders(c.Request.Context(), tenant, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetOrder godoc
//
//	@Summary	Get an order snapshot by ID
//	@Tags		orders
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	dto.OrderResponse
//	@Router		/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req httpdto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), tenant, req.UUID())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

type lookupOrderRequest struct {
	OrderNumber string `json:"order_number" binding:"required,max=100"`
}

// LookupOrder godoc
//
//	@Summary	Look up an order locally, falling back to the platform
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		lookupOrderRequest	true	"Order number"
//	@Success	200		{object}	dto.OrderResponse
//	@Router		/orders/lookup [post]
func (h *OrderHandler) LookupOrder(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req lookupOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	order, err := h.orderService.LookupOrder(c.Request.Context(), tenant, req.OrderNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

type syncOrderRequest struct {
	PlatformOrderID string `json:"platform_order_id" binding:"required,max=100"`
}

// SyncOrder godoc
//
//	@Summary	Pull a single order from the connected platform
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		syncOrderRequest	true	"Platform order ID"
//	@Success	200		{object}	dto.OrderResponse
//	@Router		/orders/sync [post]
func (h *OrderHandler) SyncOrder(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req syncOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	order, err := h.orderService.SyncOrder(c.Request.Context(), tenant, req.PlatformOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

type syncRecentRequest struct {
	Since string `json:"since" binding:"required"`
	Until string `json:"until" binding:"omitempty"`
}

// SyncRecentOrders godoc
//
//	@Summary	Pull recent orders from the connected platform
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		syncRecentRequest	true	"Sync window"
//	@Success	200		{object}	dto.SyncResultResponse
//	@Router		/orders/sync/recent [post]
func (h *OrderHandler) SyncRecentOrders(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	var req syncRecentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	since, err := time.Parse(time.RFC3339, req.Since)
	if err != nil {
		h.BadRequest(c, "Invalid 'since' timestamp, expected RFC 3339")
		return
	}
	until := time.Now().UTC()
	if req.Until != "" {
		if until, err = time.Parse(time.RFC3339, req.Until); err != nil {
			h.BadRequest(c, "Invalid 'until' timestamp, expected RFC 3339")
			return
		}
	}

	result, err := h.orderService.SyncRecentOrders(c.Request.Context(), tenant, since, until)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// maxImportBodySize caps order import uploads at 10MB
const maxImportBodySize = 10 << 20

// ImportOrders godoc
//
//	@Summary	Bulk-import order snapshots from a CSV upload
//	@Tags		orders
//	@Accept		text/csv
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ImportResultResponse
//	@Router		/orders/import [post]
func (h *OrderHandler) ImportOrders(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant scope required")
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBodySize)
	result, err := h.orderService.ImportOrders(c.Request.Context(), tenant, body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
