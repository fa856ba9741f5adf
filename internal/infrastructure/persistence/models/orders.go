package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shasanksaas/RMS-sub004/internal/domain/orders"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// OrderModel is the persistence model for the Order snapshot aggregate.
// (tenant_id, order_number) is unique; re-syncing replaces the snapshot.
type OrderModel struct {
	TenantAggregateModel
	OrderNumber     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_orders_tenant_number,priority:2"`
	PlatformOrderID string    `gorm:"type:varchar(100);index:idx_orders_platform_id,priority:2"`
	CustomerEmail   string    `gorm:"type:varchar(200);index:idx_orders_tenant_email,priority:2"`
	CustomerName    string    `gorm:"type:varchar(200)"`
	PlacedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
// Items are attached by the repository.
func (m *OrderModel) ToDomain() *orders.Order {
	order := &orders.Order{
		OrderNumber:     m.OrderNumber,
		PlatformOrderID: m.PlatformOrderID,
		CustomerEmail:   m.CustomerEmail,
		CustomerName:    m.CustomerName,
		PlacedAt:        m.PlacedAt,
		Items:           make([]orders.OrderItem, 0),
	}
	m.PopulateTenantAggregateRoot(&order.TenantAggregateRoot)
	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *orders.Order) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.PlatformOrderID = o.PlatformOrderID
	m.CustomerEmail = o.CustomerEmail
	m.CustomerName = o.CustomerName
	m.PlacedAt = o.PlacedAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *orders.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for order line items
type OrderItemModel struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"type:varchar(100)"`
	Title     string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(20,8);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() orders.OrderItem {
	return orders.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		SKU:       m.SKU,
		Title:     m.Title,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderItem
func (m *OrderItemModel) FromDomain(item *orders.OrderItem) {
	m.FromDomainBaseEntity(shared.BaseEntity{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	})
	m.OrderID = item.OrderID
	m.SKU = item.SKU
	m.Title = item.Title
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem
func OrderItemModelFromDomain(item *orders.OrderItem) *OrderItemModel {
	m := &OrderItemModel{}
	m.FromDomain(item)
	return m
}
