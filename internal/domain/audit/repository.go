package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// AuditLogRepository defines the persistence interface for the audit log.
// The log is append-only: no update or delete operations exist.
type AuditLogRepository interface {
	// Append stores a new audit log entry
	Append(ctx context.Context, entry *AuditLogEntry) error

	// List returns audit entries, newest first. Filter.Filters supports
	// "action", "admin_user_id", and "tenant_id".
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[AuditLogEntry], error)

	// ListForTenant returns audit entries scoped to a tenant, newest first
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[AuditLogEntry], error)
}
