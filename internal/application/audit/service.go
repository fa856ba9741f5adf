package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// Actor identifies the admin performing an audited action, together with
// the request origin.
type Actor struct {
	UserID    uuid.UUID
	Email     string
	IPAddress string
	UserAgent string
}

// Service records and lists audit log entries. Recording is best-effort:
// a failed append is logged but never fails the calling operation.
type Service struct {
	repo   audit.AuditLogRepository
	logger *zap.Logger
}

// NewService creates a new audit service
func NewService(repo audit.AuditLogRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record appends an audit log entry for an admin action
func (s *Service) Record(ctx context.Context, actor Actor, action string, tenantID *uuid.UUID, details map[string]any) {
	entry, err := audit.NewAuditLogEntry(action, actor.UserID, actor.Email, tenantID, details)
	if err != nil {
		s.logger.Warn("Skipping invalid audit entry",
			zap.String("action", action),
			zap.Error(err))
		return
	}
	entry.WithRequestInfo(actor.IPAddress, actor.UserAgent)

	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			zap.String("action", action),
			zap.String("admin_user_id", actor.UserID.String()),
			zap.Error(err))
	}
}

// List returns audit entries across all tenants, newest first
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[audit.AuditLogEntry], error) {
	return s.repo.List(ctx, filter)
}

// ListForTenant returns audit entries scoped to a tenant, newest first
func (s *Service) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[audit.AuditLogEntry], error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	return s.repo.ListForTenant(ctx, tenantID, filter)
}
