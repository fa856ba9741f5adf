package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// Parse failures during model conversion drop the field instead of failing
// the read; they are reported through this logger.
var modelLogger = zap.NewNop()

// SetLogger routes model conversion warnings to the application logger.
// Call once at startup, before serving traffic.
func SetLogger(log *zap.Logger) {
	if log != nil {
		modelLogger = log.Named("persistence.models")
	}
}

// ReturnDraftModel is the persistence model for the ReturnDraft aggregate root.
// Line items live in their own table; the repository stitches them together.
type ReturnDraftModel struct {
	TenantAggregateModel
	OrderNumber          string              `gorm:"type:varchar(100);not null;index:idx_return_drafts_tenant_order,priority:2"`
	Email                string              `gorm:"type:varchar(200);not null;index:idx_return_drafts_tenant_email,priority:2"`
	Channel              returns.Channel     `gorm:"type:varchar(20);not null"`
	Status               returns.DraftStatus `gorm:"type:varchar(30);not null;index:idx_return_drafts_tenant_status,priority:2"`
	SubmittedAt          time.Time           `gorm:"not null"`
	ReviewedAt           *time.Time
	ReviewedBy           *uuid.UUID `gorm:"type:uuid"`
	RejectionReason      string     `gorm:"type:text"`
	LinkedShopifyOrderID string     `gorm:"type:varchar(100)"`
	MetadataJSON         string     `gorm:"column:metadata;type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (ReturnDraftModel) TableName() string {
	return "return_drafts"
}

// ToDomain converts the persistence model to a domain ReturnDraft.
// Items are attached by the repository.
func (m *ReturnDraftModel) ToDomain() *returns.ReturnDraft {
	draft := &returns.ReturnDraft{
		OrderNumber:          m.OrderNumber,
		Email:                m.Email,
		Channel:              m.Channel,
		Status:               m.Status,
		SubmittedAt:          m.SubmittedAt,
		ReviewedAt:           m.ReviewedAt,
		ReviewedBy:           m.ReviewedBy,
		RejectionReason:      m.RejectionReason,
		LinkedShopifyOrderID: m.LinkedShopifyOrderID,
		Items:                make([]returns.DraftItem, 0),
	}
	m.PopulateTenantAggregateRoot(&draft.TenantAggregateRoot)

	if m.MetadataJSON != "" && m.MetadataJSON != "{}" {
		var metadata map[string]any
		if err := json.Unmarshal([]byte(m.MetadataJSON), &metadata); err != nil {
			modelLogger.Warn("failed to parse draft metadata JSON",
				zap.String("draft_id", m.ID.String()),
				zap.Error(err))
		} else {
			draft.Metadata = metadata
		}
	}

	return draft
}

// FromDomain populates the persistence model from a domain ReturnDraft
func (m *ReturnDraftModel) FromDomain(d *returns.ReturnDraft) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.OrderNumber = d.OrderNumber
	m.Email = d.Email
	m.Channel = d.Channel
	m.Status = d.Status
	m.SubmittedAt = d.SubmittedAt
	m.ReviewedAt = d.ReviewedAt
	m.ReviewedBy = d.ReviewedBy
	m.RejectionReason = d.RejectionReason
	m.LinkedShopifyOrderID = d.LinkedShopifyOrderID

	if len(d.Metadata) > 0 {
		if jsonBytes, err := json.Marshal(d.Metadata); err == nil {
			m.MetadataJSON = string(jsonBytes)
		} else {
			m.MetadataJSON = "{}"
		}
	} else {
		m.MetadataJSON = "{}"
	}
}

// ReturnDraftModelFromDomain creates a new persistence model from a domain ReturnDraft
func ReturnDraftModelFromDomain(d *returns.ReturnDraft) *ReturnDraftModel {
	m := &ReturnDraftModel{}
	m.FromDomain(d)
	return m
}

// DraftItemModel is the persistence model for return draft line items
type DraftItemModel struct {
	BaseModel
	DraftID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title         string           `gorm:"type:varchar(200);not null"`
	SKU           string           `gorm:"type:varchar(100)"`
	Variant       string           `gorm:"type:varchar(200)"`
	Quantity      int              `gorm:"not null"`
	Reason        string           `gorm:"type:varchar(200)"`
	PhotoURLsJSON string           `gorm:"column:photo_urls;type:jsonb;default:'[]'"`
	UnitPrice     *decimal.Decimal `gorm:"type:decimal(20,8)"`
}

// TableName returns the table name for GORM
func (DraftItemModel) TableName() string {
	return "return_draft_items"
}

// ToDomain converts the persistence model to a domain DraftItem
func (m *DraftItemModel) ToDomain() returns.DraftItem {
	item := returns.DraftItem{
		ID:        m.ID,
		DraftID:   m.DraftID,
		Title:     m.Title,
		SKU:       m.SKU,
		Variant:   m.Variant,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		UnitPrice: m.UnitPrice,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.PhotoURLsJSON != "" && m.PhotoURLsJSON != "[]" {
		var urls []string
		if err := json.Unmarshal([]byte(m.PhotoURLsJSON), &urls); err != nil {
			modelLogger.Warn("failed to parse draft item photo URLs JSON",
				zap.String("item_id", m.ID.String()),
				zap.Error(err))
		} else {
			item.PhotoURLs = urls
		}
	}

	return item
}

// FromDomain populates the persistence model from a domain DraftItem
func (m *DraftItemModel) FromDomain(item *returns.DraftItem) {
	m.FromDomainBaseEntity(shared.BaseEntity{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	})
	m.DraftID = item.DraftID
	m.Title = item.Title
	m.SKU = item.SKU
	m.Variant = item.Variant
	m.Quantity = item.Quantity
	m.Reason = item.Reason
	m.UnitPrice = item.UnitPrice

	if len(item.PhotoURLs) > 0 {
		if jsonBytes, err := json.Marshal(item.PhotoURLs); err == nil {
			m.PhotoURLsJSON = string(jsonBytes)
		} else {
			m.PhotoURLsJSON = "[]"
		}
	} else {
		m.PhotoURLsJSON = "[]"
	}
}

// DraftItemModelFromDomain creates a new persistence model from a domain DraftItem
func DraftItemModelFromDomain(item *returns.DraftItem) *DraftItemModel {
	m := &DraftItemModel{}
	m.FromDomain(item)
	return m
}
