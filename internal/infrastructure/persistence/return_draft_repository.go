package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/persistence/models"
)

// ReturnDraftSortFields contains allowed sort fields for return drafts
var ReturnDraftSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"email":        true,
	"status":       true,
	"submitted_at": true,
}

// GormReturnDraftRepository implements ReturnDraftRepository using GORM
type GormReturnDraftRepository struct {
	db *gorm.DB
}

// NewGormReturnDraftRepository creates a new GormReturnDraftRepository
func NewGormReturnDraftRepository(db *gorm.DB) *GormReturnDraftRepository {
	return &GormReturnDraftRepository{db: db}
}

// WithTx returns a new repository instance with the given transaction
func (r *GormReturnDraftRepository) WithTx(tx *gorm.DB) *GormReturnDraftRepository {
	return &GormReturnDraftRepository{db: tx}
}

// FindByID finds a return draft by ID
func (r *GormReturnDraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*returns.ReturnDraft, error) {
	var model models.ReturnDraftModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithItems(ctx, &model)
}

// FindByIDForTenant finds a return draft by ID scoped to a tenant
func (r *GormReturnDraftRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*returns.ReturnDraft, error) {
	var model models.ReturnDraftModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.toDomainWithItems(ctx, &model)
}

// FindAllForTenant finds return drafts for a tenant with filtering
func (r *GormReturnDraftRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[returns.ReturnDraft], error) {
	query := r.db.WithContext(ctx).Model(&models.ReturnDraftModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)
	return r.paginate(ctx, query, filter)
}

// FindByStatus finds return drafts with the given status for a tenant
func (r *GormReturnDraftRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status returns.DraftStatus, filter shared.Filter) (*shared.Paginated[returns.ReturnDraft], error) {
	query := r.db.WithContext(ctx).Model(&models.ReturnDraftModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, status)
	query = r.applyFilterWithoutPagination(query, filter)
	return r.paginate(ctx, query, filter)
}

// FindByOrderNumber finds drafts submitted against an order number
func (r *GormReturnDraftRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) ([]returns.ReturnDraft, error) {
	var draftModels []models.ReturnDraftModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		Order("created_at DESC").
		Find(&draftModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(ctx, draftModels)
}

// Save creates or updates a return draft together with its items.
// Items are replaced wholesale: the draft aggregate owns them.
func (r *GormReturnDraftRepository) Save(ctx context.Context, draft *returns.ReturnDraft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ReturnDraftModelFromDomain(draft)
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		if err := tx.Where("draft_id = ?", draft.ID).Delete(&models.DraftItemModel{}).Error; err != nil {
			return err
		}
		for i := range draft.Items {
			itemModel := models.DraftItemModelFromDomain(&draft.Items[i])
			if err := tx.Create(itemModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a return draft and its items
func (r *GormReturnDraftRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", id).Delete(&models.DraftItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.ReturnDraftModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountByStatus returns the number of drafts per status for a tenant
func (r *GormReturnDraftRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (map[returns.DraftStatus]int64, error) {
	type statusCount struct {
		Status returns.DraftStatus
		Count  int64
	}

	var rows []statusCount
	if err := r.db.WithContext(ctx).Model(&models.ReturnDraftModel{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[returns.DraftStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *GormReturnDraftRepository) paginate(ctx context.Context, query *gorm.DB, filter shared.Filter) (*shared.Paginated[returns.ReturnDraft], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := normalizePagination(filter)
	sortField := ValidateSortField(filter.OrderBy, ReturnDraftSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)

	var draftModels []models.ReturnDraftModel
	if err := query.
		Order(sortField + " " + sortOrder).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&draftModels).Error; err != nil {
		return nil, err
	}

	drafts, err := r.toDomainSlice(ctx, draftModels)
	if err != nil {
		return nil, err
	}

	paginated := shared.NewPaginated(drafts, total, page, pageSize)
	return &paginated, nil
}

func (r *GormReturnDraftRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR email ILIKE ?", search, search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "channel":
			query = query.Where("channel = ?", value)
		case "order_number":
			query = query.Where("order_number = ?", value)
		case "email":
			query = query.Where("email = ?", value)
		}
	}

	return query
}

func (r *GormReturnDraftRepository) toDomainWithItems(ctx context.Context, model *models.ReturnDraftModel) (*returns.ReturnDraft, error) {
	draft := model.ToDomain()

	var itemModels []models.DraftItemModel
	if err := r.db.WithContext(ctx).
		Where("draft_id = ?", model.ID).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	for i := range itemModels {
		draft.Items = append(draft.Items, itemModels[i].ToDomain())
	}
	return draft, nil
}

// toDomainSlice converts draft models to domain drafts, loading items for
// the whole batch in one query.
func (r *GormReturnDraftRepository) toDomainSlice(ctx context.Context, draftModels []models.ReturnDraftModel) ([]returns.ReturnDraft, error) {
	if len(draftModels) == 0 {
		return []returns.ReturnDraft{}, nil
	}

	draftIDs := make([]uuid.UUID, len(draftModels))
	for i := range draftModels {
		draftIDs[i] = draftModels[i].ID
	}

	var itemModels []models.DraftItemModel
	if err := r.db.WithContext(ctx).
		Where("draft_id IN ?", draftIDs).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	itemsByDraft := make(map[uuid.UUID][]returns.DraftItem, len(draftModels))
	for i := range itemModels {
		item := itemModels[i].ToDomain()
		itemsByDraft[item.DraftID] = append(itemsByDraft[item.DraftID], item)
	}

	drafts := make([]returns.ReturnDraft, len(draftModels))
	for i := range draftModels {
		draft := draftModels[i].ToDomain()
		if items, ok := itemsByDraft[draft.ID]; ok {
			draft.Items = items
		}
		drafts[i] = *draft
	}
	return drafts, nil
}

// normalizePagination applies default page and page size when unset
func normalizePagination(filter shared.Filter) (page, pageSize int) {
	page = filter.Page
	if page < 1 {
		page = 1
	}
	pageSize = filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}

// Ensure GormReturnDraftRepository implements ReturnDraftRepository
var _ returns.ReturnDraftRepository = (*GormReturnDraftRepository)(nil)
