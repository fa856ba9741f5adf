package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/application/orders/dto"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/integration"
	"github.com/shasanksaas/RMS-sub004/internal/domain/orders"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// maxSyncPages caps one sync run so a huge backlog cannot hold the request
// open indefinitely
const maxSyncPages = 10

// OrderService handles order snapshot lookup and platform sync. Snapshots
// are read models for rule evaluation and draft linking; the connected
// platform stays the source of truth.
type OrderService struct {
	orderRepo  orders.OrderRepository
	tenantRepo identity.TenantRepository
	registry   integration.PlatformRegistry
	logger     *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo orders.OrderRepository,
	tenantRepo identity.TenantRepository,
	registry integration.PlatformRegistry,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:  orderRepo,
		tenantRepo: tenantRepo,
		registry:   registry,
		logger:     logger,
	}
}

// GetOrder returns an order snapshot scoped to a tenant
func (s *OrderService) GetOrder(ctx context.Context, tenantID, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, orderLookupError(err)
	}
	return dto.ToOrderResponse(order), nil
}

// LookupOrder finds an order by its customer-facing number. A local miss
// falls through to the tenant's connected platform; a platform hit is
// saved as a snapshot before returning.
func (s *OrderService) LookupOrder(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err == nil {
		return dto.ToOrderResponse(order), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to look up order")
	}

	platform, err := s.platformForTenant(ctx, tenantID)
	if err != nil {
		return nil, orderLookupError(shared.ErrNotFound)
	}

	platformOrder, err := platform.GetOrderByNumber(ctx, tenantID, orderNumber)
	if err != nil {
		if errors.Is(err, integration.ErrOrderNotFound) {
			return nil, orderLookupError(shared.ErrNotFound)
		}
		s.logger.Error("Platform order lookup failed", zap.Error(err))
		return nil, shared.NewDomainError("PLATFORM_ERROR", "Failed to reach the connected platform")
	}

	snapshot, err := s.saveSnapshot(ctx, tenantID, platformOrder)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(snapshot), nil
}

// SyncOrder fetches one order from the tenant's platform by its platform
// ID and stores the snapshot
func (s *OrderService) SyncOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*dto.OrderResponse, error) {
	platform, err := s.platformForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	platformOrder, err := platform.GetOrder(ctx, tenantID, platformOrderID)
	if err != nil {
		if errors.Is(err, integration.ErrOrderNotFound) {
			return nil, orderLookupError(shared.ErrNotFound)
		}
		s.logger.Error("Platform order fetch failed", zap.Error(err))
		return nil, shared.NewDomainError("PLATFORM_ERROR", "Failed to reach the connected platform")
	}

	snapshot, err := s.saveSnapshot(ctx, tenantID, platformOrder)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order synced",
		zap.String("tenant_id", tenantID.String()),
		zap.String("platform_order_id", platformOrderID))

	return dto.ToOrderResponse(snapshot), nil
}

// SyncRecentOrders pulls orders updated within the window and stores their
// snapshots. Individual order failures are counted, not fatal.
func (s *OrderService) SyncRecentOrders(ctx context.Context, tenantID uuid.UUID, since, until time.Time) (*dto.SyncResultResponse, error) {
	platform, err := s.platformForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := &dto.SyncResultResponse{}

	for page := 1; page <= maxSyncPages; page++ {
		resp, err := platform.PullOrders(ctx, &integration.OrderPullRequest{
			TenantID:  tenantID,
			StartTime: since,
			EndTime:   until,
			Page:      page,
		})
		if err != nil {
			s.logger.Error("Order pull failed", zap.Error(err))
			return nil, shared.NewDomainError("PLATFORM_ERROR", "Failed to pull orders from the platform")
		}

		for i := range resp.Orders {
			if _, err := s.saveSnapshot(ctx, tenantID, &resp.Orders[i]); err != nil {
				result.FailedCount++
				continue
			}
			result.SyncedCount++
		}

		if !resp.HasMore {
			break
		}
		if page == maxSyncPages {
			result.HasMore = true
		}
	}

	s.logger.Info("Order sync completed",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("synced", result.SyncedCount),
		zap.Int("failed", result.FailedCount))

	return result, nil
}

// ListOrders returns a tenant's order snapshots. Filter.Search matches
// order number, customer name, and email.
func (s *OrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[dto.OrderResponse], error) {
	page, err := s.orderRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}
	return dto.ToOrderList(page), nil
}

func (s *OrderService) platformForTenant(ctx context.Context, tenantID uuid.UUID) (integration.OrderPlatform, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		s.logger.Error("Failed to load tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load tenant")
	}
	if !tenant.IsConnected() {
		return nil, shared.NewDomainError("NOT_CONNECTED", "Tenant is not connected to a platform")
	}

	platform, err := s.registry.Get(tenant.ConnectedProvider.String())
	if err != nil {
		s.logger.Error("No adapter for provider",
			zap.String("provider", tenant.ConnectedProvider.String()))
		return nil, shared.NewDomainError("NOT_CONNECTED", "No adapter available for the connected platform")
	}
	return platform, nil
}

func (s *OrderService) saveSnapshot(ctx context.Context, tenantID uuid.UUID, platformOrder *integration.PlatformOrder) (*orders.Order, error) {
	order, err := orders.NewOrder(
		tenantID,
		platformOrder.OrderNumber,
		platformOrder.PlatformOrderID,
		platformOrder.CustomerEmail,
		platformOrder.CustomerName,
		platformOrder.PlacedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range platformOrder.LineItems {
		if _, err := order.AddItem(line.SKU, line.Title, line.Quantity, line.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		s.logger.Error("Failed to save order snapshot",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save order snapshot")
	}

	return order, nil
}

func orderLookupError(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	return shared.NewDomainError("INTERNAL_ERROR", "Failed to load order")
}
