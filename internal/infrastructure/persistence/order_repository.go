package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shasanksaas/RMS-sub004/internal/domain/orders"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/persistence/models"
)

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"placed_at":    true,
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: tx}
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithItems(ctx, &model)
}

// FindByIDForTenant finds an order by ID scoped to a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithItems(ctx, &model)
}

// FindByOrderNumber finds an order by its customer-facing number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithItems(ctx, &model)
}

// FindByPlatformOrderID finds an order by its platform identifier
func (r *GormOrderRepository) FindByPlatformOrderID(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*orders.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND platform_order_id = ?", tenantID, platformOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithItems(ctx, &model)
}

// FindAllForTenant finds orders for a tenant with filtering
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[orders.Order], error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?", search, search, search)
	}
	for key, value := range filter.Filters {
		switch key {
		case "email":
			query = query.Where("customer_email = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePagination(filter)
	sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var orderModels []models.OrderModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	items, err := r.toDomainSlice(ctx, orderModels)
	if err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(items, total, page, pageSize)
	return &paginated, nil
}

// Save creates or updates an order snapshot with its items.
// (tenant_id, order_number) is unique: re-syncing an order that already
// exists under a different ID replaces the old snapshot.
func (r *GormOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.OrderModel
		err := tx.
			Where("tenant_id = ? AND order_number = ?", order.TenantID, order.OrderNumber).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil && existing.ID != order.ID {
			if err := tx.Where("order_id = ?", existing.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.OrderModel{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
		}

		model := models.OrderModelFromDomain(order)
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		for i := range order.Items {
			itemModel := models.OrderItemModelFromDomain(&order.Items[i])
			if err := tx.Create(itemModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an order snapshot and its items
func (r *GormOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.OrderModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormOrderRepository) toDomainWithItems(ctx context.Context, model *models.OrderModel) (*orders.Order, error) {
	order := model.ToDomain()

	var itemModels []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", model.ID).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	for i := range itemModels {
		order.Items = append(order.Items, itemModels[i].ToDomain())
	}
	return order, nil
}

func (r *GormOrderRepository) toDomainSlice(ctx context.Context, orderModels []models.OrderModel) ([]orders.Order, error) {
	if len(orderModels) == 0 {
		return []orders.Order{}, nil
	}

	orderIDs := make([]uuid.UUID, len(orderModels))
	for i := range orderModels {
		orderIDs[i] = orderModels[i].ID
	}

	var itemModels []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	itemsByOrder := make(map[uuid.UUID][]orders.OrderItem, len(orderModels))
	for i := range itemModels {
		item := itemModels[i].ToDomain()
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	result := make([]orders.Order, len(orderModels))
	for i := range orderModels {
		order := orderModels[i].ToDomain()
		if items, ok := itemsByOrder[order.ID]; ok {
			order.Items = items
		}
		result[i] = *order
	}
	return result, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ orders.OrderRepository = (*GormOrderRepository)(nil)
