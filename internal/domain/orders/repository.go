package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// OrderRepository defines the persistence interface for order snapshots
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its customer-facing number
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)

	// FindByPlatformOrderID finds an order by its platform identifier
	FindByPlatformOrderID(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*Order, error)

	// FindAllForTenant finds orders for a tenant with filtering.
	// Filter.Search matches order number, customer name, and email.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)

	// Save creates or updates an order snapshot with its items.
	// (tenant_id, order_number) is unique; syncing an existing order
	// replaces the snapshot.
	Save(ctx context.Context, order *Order) error

	// Delete removes an order snapshot
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
