package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/persistence/models"
)

// ReturnRuleSortFields contains allowed sort fields for return rules
var ReturnRuleSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"priority":   true,
}

// GormReturnRuleRepository implements ReturnRuleRepository using GORM
type GormReturnRuleRepository struct {
	db *gorm.DB
}

// NewGormReturnRuleRepository creates a new GormReturnRuleRepository
func NewGormReturnRuleRepository(db *gorm.DB) *GormReturnRuleRepository {
	return &GormReturnRuleRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormReturnRuleRepository) WithTx(tx *gorm.DB) *GormReturnRuleRepository {
	return &GormReturnRuleRepository{db: tx}
}

// FindByID finds a rule by ID
func (r *GormReturnRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*rules.ReturnRule, error) {
	var model models.ReturnRuleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a rule by ID scoped to a tenant
func (r *GormReturnRuleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*rules.ReturnRule, error) {
	var model models.ReturnRuleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all rules for a tenant with filtering
func (r *GormReturnRuleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[rules.ReturnRule], error) {
	query := r.db.WithContext(ctx).Model(&models.ReturnRuleModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", search, search)
	}
	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePagination(filter)
	sortField := ValidateSortField(filter.OrderBy, ReturnRuleSortFields, "priority")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	if sortField == "priority" && filter.OrderBy == "" {
		sortOrder = "ASC"
	}

	var ruleModels []models.ReturnRuleModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}

	items := make([]rules.ReturnRule, len(ruleModels))
	for i := range ruleModels {
		items[i] = *ruleModels[i].ToDomain()
	}

	paginated := shared.NewPaginated(items, total, page, pageSize)
	return &paginated, nil
}

// FindActiveForTenant finds the tenant's active rules in evaluation order:
// priority ascending, creation time ascending.
func (r *GormReturnRuleRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]rules.ReturnRule, error) {
	var ruleModels []models.ReturnRuleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("priority ASC").
		Order("created_at ASC").
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}

	result := make([]rules.ReturnRule, len(ruleModels))
	for i := range ruleModels {
		result[i] = *ruleModels[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a rule
func (r *GormReturnRuleRepository) Save(ctx context.Context, rule *rules.ReturnRule) error {
	model := models.ReturnRuleModelFromDomain(rule)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a rule. Past decisions referencing it are kept.
func (r *GormReturnRuleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ReturnRuleModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReturnRuleRepository implements ReturnRuleRepository
var _ rules.ReturnRuleRepository = (*GormReturnRuleRepository)(nil)
