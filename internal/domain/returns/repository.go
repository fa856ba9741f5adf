package returns

import (
	"context"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// ReturnDraftRepository defines the persistence interface for return drafts
type ReturnDraftRepository interface {
	// FindByID finds a return draft by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnDraft, error)

	// FindByIDForTenant finds a return draft by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ReturnDraft, error)

	// FindAllForTenant finds return drafts for a tenant with filtering.
	// Filter.Search matches order number and email.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ReturnDraft], error)

	// FindByStatus finds return drafts with the given status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status DraftStatus, filter shared.Filter) (*shared.Paginated[ReturnDraft], error)

	// FindByOrderNumber finds drafts submitted against an order number
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) ([]ReturnDraft, error)

	// Save creates or updates a return draft together with its items
	Save(ctx context.Context, draft *ReturnDraft) error

	// Delete removes a return draft
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountByStatus returns the number of drafts per status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[DraftStatus]int64, error)
}
