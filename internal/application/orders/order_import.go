package orders

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/application/orders/dto"
	"github.com/shasanksaas/RMS-sub004/internal/domain/integration"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	csvimport "github.com/shasanksaas/RMS-sub004/internal/infrastructure/import"
)

// orderImportSchema describes the CSV upload format: one row per line
// item, items of the same order sharing an order_number. Header fields
// (email, name, placed_at) are taken from the order's first row.
var orderImportSchema = csvimport.Schema{Fields: []csvimport.Field{
	{Column: "order_number", Type: csvimport.TypeString, Required: true, MaxLen: 100},
	{Column: "platform_order_id", Type: csvimport.TypeString, MaxLen: 100},
	{Column: "customer_email", Type: csvimport.TypeEmail},
	{Column: "customer_name", Type: csvimport.TypeString, MaxLen: 200},
	{Column: "placed_at", Type: csvimport.TypeDate, Required: true},
	{Column: "sku", Type: csvimport.TypeString, MaxLen: 100},
	{Column: "title", Type: csvimport.TypeString, Required: true, MaxLen: 300},
	{Column: "quantity", Type: csvimport.TypeInt},
	{Column: "unit_price", Type: csvimport.TypeDecimal},
}}

// ImportOrders bulk-loads order snapshots from a CSV upload. This is the
// ingestion path for tenants without a connected platform; rows that fail
// validation or persistence are reported per row, never failing the rest
// of the upload.
func (s *OrderService) ImportOrders(ctx context.Context, tenantID uuid.UUID, upload io.Reader) (*dto.ImportResultResponse, error) {
	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		s.logger.Error("Failed to load tenant for order import", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load tenant")
	}

	parsed, err := csvimport.Read(upload, orderImportSchema)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMPORT", err.Error())
	}

	result := &dto.ImportResultResponse{TotalRows: parsed.TotalRows}

	// Group line-item rows into orders, preserving first-seen order
	type orderGroup struct {
		firstRow int
		order    integration.PlatformOrder
	}
	var sequence []string
	groups := make(map[string]*orderGroup)
	for _, row := range parsed.Rows {
		number := row.String("order_number")
		group, ok := groups[number]
		if !ok {
			group = &orderGroup{
				firstRow: row.Number,
				order: integration.PlatformOrder{
					OrderNumber:     number,
					PlatformOrderID: row.String("platform_order_id"),
					CustomerEmail:   row.String("customer_email"),
					CustomerName:    row.String("customer_name"),
					PlacedAt:        row.Time("placed_at"),
				},
			}
			groups[number] = group
			sequence = append(sequence, number)
		}

		quantity := row.Int("quantity")
		if quantity == 0 {
			quantity = 1
		}
		group.order.LineItems = append(group.order.LineItems, integration.PlatformLineItem{
			SKU:       row.String("sku"),
			Title:     row.String("title"),
			Quantity:  quantity,
			UnitPrice: row.Decimal("unit_price"),
		})
	}

	for _, number := range sequence {
		group := groups[number]
		if _, err := s.saveSnapshot(ctx, tenantID, &group.order); err != nil {
			parsed.Errors.Add(csvimport.RowError{
				Row:     group.firstRow,
				Code:    csvimport.ErrCodeMalformedRow,
				Message: importErrorMessage(err),
			})
			continue
		}
		result.ImportedCount++
	}

	result.FailedRowCount = parsed.Errors.Total()
	result.ErrorsTruncated = parsed.Errors.Truncated()
	for _, rowErr := range parsed.Errors.Errors() {
		result.Errors = append(result.Errors, dto.ImportRowError{
			Row:     rowErr.Row,
			Column:  rowErr.Column,
			Code:    rowErr.Code,
			Message: rowErr.Message,
			Value:   rowErr.Value,
		})
	}

	s.logger.Info("Order import completed",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported_orders", result.ImportedCount),
		zap.Int("failed_rows", result.FailedRowCount))

	return result, nil
}

// importErrorMessage keeps domain validation messages and hides storage
// internals
func importErrorMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "failed to save order"
}
