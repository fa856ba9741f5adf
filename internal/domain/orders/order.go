package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItem is a line item on a synced platform order
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	SKU       string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID uuid.UUID, sku, title string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item title cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		SKU:       sku,
		Title:     strings.TrimSpace(title),
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// LineTotal returns quantity times unit price
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a tenant-scoped snapshot of a platform order. It is a read model
// synced from the connected platform; returns are validated and linked
// against it, it is never the source of truth for the order itself.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber     string
	PlatformOrderID string
	CustomerEmail   string
	CustomerName    string
	PlacedAt        time.Time
	Items           []OrderItem
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order snapshot
func NewOrder(tenantID uuid.UUID, orderNumber, platformOrderID, customerEmail, customerName string, placedAt time.Time) (*Order, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if placedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_PLACED_AT", "Order placement time cannot be zero")
	}

	return &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         strings.TrimSpace(orderNumber),
		PlatformOrderID:     platformOrderID,
		CustomerEmail:       strings.ToLower(strings.TrimSpace(customerEmail)),
		CustomerName:        customerName,
		PlacedAt:            placedAt,
		Items:               make([]OrderItem, 0),
	}, nil
}

// AddItem adds a line item to the snapshot
func (o *Order) AddItem(sku, title string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	item, err := NewOrderItem(o.ID, sku, title, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()

	return item, nil
}

// AgeInDays returns the number of days since the order was placed
func (o *Order) AgeInDays(now time.Time) float64 {
	return now.Sub(o.PlacedAt).Hours() / 24
}

// Total returns the sum of all line totals
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemSKUs returns the SKUs of all line items
func (o *Order) ItemSKUs() []string {
	skus := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if item.SKU != "" {
			skus = append(skus, item.SKU)
		}
	}
	return skus
}

// ItemTitles returns the titles of all line items
func (o *Order) ItemTitles() []string {
	titles := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		titles = append(titles, item.Title)
	}
	return titles
}
