package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shasanksaas/RMS-sub004/internal/domain/orders"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// OrderItemResponse is the API representation of an order line item
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku,omitempty"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse is the API representation of an order snapshot
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	TenantID        uuid.UUID           `json:"tenant_id"`
	OrderNumber     string              `json:"order_number"`
	PlatformOrderID string              `json:"platform_order_id,omitempty"`
	CustomerEmail   string              `json:"customer_email,omitempty"`
	CustomerName    string              `json:"customer_name,omitempty"`
	PlacedAt        time.Time           `json:"placed_at"`
	Total           decimal.Decimal     `json:"total"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// SyncResultResponse summarizes one order sync run
type SyncResultResponse struct {
	SyncedCount int  `json:"synced_count"`
	FailedCount int  `json:"failed_count"`
	HasMore     bool `json:"has_more"`
}

// ImportRowError describes one rejected row of a CSV order import
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportResultResponse summarizes one CSV order import
type ImportResultResponse struct {
	ImportedCount   int              `json:"imported_count"`
	TotalRows       int              `json:"total_rows"`
	FailedRowCount  int              `json:"failed_row_count"`
	Errors          []ImportRowError `json:"errors,omitempty"`
	ErrorsTruncated bool             `json:"errors_truncated,omitempty"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(order *orders.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			SKU:       item.SKU,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &OrderResponse{
		ID:              order.ID,
		TenantID:        order.TenantID,
		OrderNumber:     order.OrderNumber,
		PlatformOrderID: order.PlatformOrderID,
		CustomerEmail:   order.CustomerEmail,
		CustomerName:    order.CustomerName,
		PlacedAt:        order.PlacedAt,
		Total:           order.Total(),
		Items:           items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// ToOrderList converts a paginated set of domain orders
func ToOrderList(page *shared.Paginated[orders.Order]) *shared.Paginated[OrderResponse] {
	items := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToOrderResponse(&page.Items[i]))
	}
	return &shared.Paginated[OrderResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
