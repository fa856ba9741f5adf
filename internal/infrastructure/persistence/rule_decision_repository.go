package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// GormRuleDecisionRepository implements RuleDecisionRepository using GORM.
// Decision records are append-only.
type GormRuleDecisionRepository struct {
	db *gorm.DB
}

// NewGormRuleDecisionRepository creates a new GormRuleDecisionRepository
func NewGormRuleDecisionRepository(db *gorm.DB) *GormRuleDecisionRepository {
	return &GormRuleDecisionRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormRuleDecisionRepository) WithTx(tx *gorm.DB) *GormRuleDecisionRepository {
	return &GormRuleDecisionRepository{db: tx}
}

// Append stores a new decision record
func (r *GormRuleDecisionRepository) Append(ctx context.Context, decision *rules.RuleDecision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

// FindByDraft returns all decisions recorded for a draft, newest first
func (r *GormRuleDecisionRepository) FindByDraft(ctx context.Context, tenantID, draftID uuid.UUID) ([]rules.RuleDecision, error) {
	var decisions []rules.RuleDecision
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND draft_id = ?", tenantID, draftID).
		Order("evaluated_at DESC").
		Find(&decisions).Error; err != nil {
		return nil, err
	}
	return decisions, nil
}

// FindForTenant returns decisions for a tenant within a time range
func (r *GormRuleDecisionRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[rules.RuleDecision], error) {
	query := r.db.WithContext(ctx).Model(&rules.RuleDecision{}).
		Where("tenant_id = ?", tenantID)

	if !from.IsZero() {
		query = query.Where("evaluated_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("evaluated_at <= ?", to)
	}
	for key, value := range filter.Filters {
		switch key {
		case "outcome":
			query = query.Where("outcome = ?", value)
		case "rule_id":
			query = query.Where("rule_id = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePagination(filter)

	var decisions []rules.RuleDecision
	if err := query.
		Order("evaluated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&decisions).Error; err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(decisions, total, page, pageSize)
	return &paginated, nil
}

// Ensure GormRuleDecisionRepository implements RuleDecisionRepository
var _ rules.RuleDecisionRepository = (*GormRuleDecisionRepository)(nil)
