package ecommerce

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shasanksaas/RMS-sub004/internal/domain/integration"
)

// Wire types for the Shopify Admin REST API. Field names follow the
// JSON the API returns; amounts arrive as decimal strings.

type shopifyOrderEnvelope struct {
	Order shopifyOrder `json:"order"`
}

type shopifyOrdersEnvelope struct {
	Orders []shopifyOrder `json:"orders"`
}

type shopifyOrder struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	CreatedAt time.Time         `json:"created_at"`
	Customer  *shopifyCustomer  `json:"customer"`
	LineItems []shopifyLineItem `json:"line_items"`
}

type shopifyCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type shopifyLineItem struct {
	SKU          string `json:"sku"`
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title"`
	Quantity     int    `json:"quantity"`
	Price        string `json:"price"`
}

type shopifyErrorEnvelope struct {
	Errors any `json:"errors"`
}

// toPlatformOrder converts a wire order into the domain value object
func (o *shopifyOrder) toPlatformOrder() *integration.PlatformOrder {
	order := &integration.PlatformOrder{
		PlatformOrderID: strconv.FormatInt(o.ID, 10),
		OrderNumber:     o.Name,
		CustomerEmail:   o.Email,
		PlacedAt:        o.CreatedAt,
		LineItems:       make([]integration.PlatformLineItem, 0, len(o.LineItems)),
	}

	if o.Customer != nil {
		name := o.Customer.FirstName
		if o.Customer.LastName != "" {
			if name != "" {
				name += " "
			}
			name += o.Customer.LastName
		}
		order.CustomerName = name
		if order.CustomerEmail == "" {
			order.CustomerEmail = o.Customer.Email
		}
	}

	for _, item := range o.LineItems {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			price = decimal.Zero
		}
		order.LineItems = append(order.LineItems, integration.PlatformLineItem{
			SKU:       item.SKU,
			Title:     item.Title,
			Variant:   item.VariantTitle,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	return order
}
