package integration

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Platform adapter errors
var (
	ErrPlatformNotConfigured   = errors.New("integration: platform not configured")
	ErrPlatformNotConnected    = errors.New("integration: tenant not connected to a platform")
	ErrPlatformUnavailable     = errors.New("integration: platform temporarily unavailable")
	ErrPlatformRequestFailed   = errors.New("integration: platform request failed")
	ErrPlatformInvalidResponse = errors.New("integration: invalid platform response")
	ErrPlatformAuthFailed      = errors.New("integration: platform authentication failed")
	ErrPlatformRateLimited     = errors.New("integration: platform rate limited")
	ErrOrderNotFound           = errors.New("integration: platform order not found")
)

// PlatformLineItem is a line item on a platform order
type PlatformLineItem struct {
	SKU       string
	Title     string
	Variant   string
	Quantity  int
	UnitPrice decimal.Decimal
}

// PlatformOrder is an order as reported by the connected platform.
// The orders package turns these into tenant-scoped snapshots.
type PlatformOrder struct {
	PlatformOrderID string
	OrderNumber     string
	CustomerEmail   string
	CustomerName    string
	PlacedAt        time.Time
	LineItems       []PlatformLineItem
}

// OrderPullRequest asks the platform for orders updated in a time window
type OrderPullRequest struct {
	TenantID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Page      int
	PageSize  int
}

// OrderPullResponse is one page of pulled orders
type OrderPullResponse struct {
	Orders     []PlatformOrder
	TotalCount int
	HasMore    bool
}

// OrderPlatform is the adapter interface for a connected e-commerce platform.
// One implementation exists per provider; the registry resolves the adapter
// for a tenant from its connected provider.
type OrderPlatform interface {
	// Provider returns the provider key this adapter handles, e.g. "shopify"
	Provider() string

	// IsConnected reports whether the tenant has working credentials
	IsConnected(ctx context.Context, tenantID uuid.UUID) (bool, error)

	// GetOrder retrieves a single order by its platform ID
	GetOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*PlatformOrder, error)

	// GetOrderByNumber retrieves a single order by its customer-facing number
	GetOrderByNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*PlatformOrder, error)

	// PullOrders pulls orders updated within the requested time range
	PullOrders(ctx context.Context, req *OrderPullRequest) (*OrderPullResponse, error)
}

// PlatformRegistry resolves adapters by provider key
type PlatformRegistry interface {
	// Get returns the adapter for the provider, or ErrPlatformNotConfigured
	Get(provider string) (OrderPlatform, error)

	// Register adds an adapter to the registry
	Register(platform OrderPlatform)
}
