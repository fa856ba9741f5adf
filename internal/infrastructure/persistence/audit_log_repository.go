package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/persistence/models"
)

// GormAuditLogRepository implements AuditLogRepository using GORM.
// The audit log is append-only: the repository exposes no update or delete.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormAuditLogRepository) WithTx(tx *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: tx}
}

// Append stores a new audit log entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.AuditLogEntry) error {
	model := models.AuditLogEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// List returns audit entries, newest first
func (r *GormAuditLogRepository) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[audit.AuditLogEntry], error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLogEntryModel{})
	query = r.applyFilter(query, filter)
	return r.paginate(query, filter)
}

// ListForTenant returns audit entries scoped to a tenant, newest first
func (r *GormAuditLogRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[audit.AuditLogEntry], error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLogEntryModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)
	return r.paginate(query, filter)
}

func (r *GormAuditLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "admin_user_id":
			query = query.Where("admin_user_id = ?", value)
		case "tenant_id":
			query = query.Where("tenant_id = ?", value)
		}
	}
	return query
}

func (r *GormAuditLogRepository) paginate(query *gorm.DB, filter shared.Filter) (*shared.Paginated[audit.AuditLogEntry], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePagination(filter)

	var entryModels []models.AuditLogEntryModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.AuditLogEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}

	paginated := shared.NewPaginated(entries, total, page, pageSize)
	return &paginated, nil
}

// Ensure GormAuditLogRepository implements AuditLogRepository
var _ audit.AuditLogRepository = (*GormAuditLogRepository)(nil)
