package returns

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DraftStatus represents the review status of a return draft
type DraftStatus string

const (
	// DraftStatusPendingValidation is the initial status of every draft
	DraftStatusPendingValidation DraftStatus = "pending_validation"
	// DraftStatusApproved means the return was accepted for processing
	DraftStatusApproved DraftStatus = "approved"
	// DraftStatusRejected means the return was declined
	DraftStatusRejected DraftStatus = "rejected"
	// DraftStatusLinked means the draft was matched to a platform order
	DraftStatusLinked DraftStatus = "linked"
)

// AllDraftStatuses returns all valid draft statuses
func AllDraftStatuses() []DraftStatus {
	return []DraftStatus{
		DraftStatusPendingValidation,
		DraftStatusApproved,
		DraftStatusRejected,
		DraftStatusLinked,
	}
}

// IsValid checks if the status is a valid DraftStatus
func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusPendingValidation, DraftStatusApproved, DraftStatusRejected, DraftStatusLinked:
		return true
	default:
		return false
	}
}

// String returns the string representation of DraftStatus
func (s DraftStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DraftStatus) CanTransitionTo(target DraftStatus) bool {
	switch s {
	case DraftStatusPendingValidation:
		return target == DraftStatusApproved || target == DraftStatusRejected || target == DraftStatusLinked
	case DraftStatusApproved, DraftStatusRejected, DraftStatusLinked:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true if no further transition is possible
func (s DraftStatus) IsTerminal() bool {
	return s != DraftStatusPendingValidation
}

// Channel identifies where a draft was submitted from
type Channel string

const (
	// ChannelCustomer is the public customer-facing intake form
	ChannelCustomer Channel = "customer"
	// ChannelAdmin is a draft entered by an operator on a merchant's behalf
	ChannelAdmin Channel = "admin"
)

// IsValid checks if the channel is valid
func (c Channel) IsValid() bool {
	switch c {
	case ChannelCustomer, ChannelAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the channel
func (c Channel) String() string {
	return string(c)
}

// DraftItem represents a line item a customer wants to return
type DraftItem struct {
	ID        uuid.UUID
	DraftID   uuid.UUID
	Title     string
	SKU       string
	Variant   string
	Quantity  int
	Reason    string
	PhotoURLs []string
	UnitPrice *decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDraftItem creates a new draft line item. Quantity must be at least 1.
func NewDraftItem(draftID uuid.UUID, title, sku, variant string, quantity int, reason string) (*DraftItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item title cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}

	now := time.Now()
	return &DraftItem{
		ID:        uuid.New(),
		DraftID:   draftID,
		Title:     strings.TrimSpace(title),
		SKU:       sku,
		Variant:   variant,
		Quantity:  quantity,
		Reason:    reason,
		PhotoURLs: make([]string, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetUnitPrice records the unit price reported for the item
func (i *DraftItem) SetUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.UnitPrice = &price
	i.UpdatedAt = time.Now()
	return nil
}

// AddPhotoURL attaches a photo URL to the item
func (i *DraftItem) AddPhotoURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return shared.NewDomainError("INVALID_PHOTO_URL", "Photo URL cannot be empty")
	}
	i.PhotoURLs = append(i.PhotoURLs, url)
	i.UpdatedAt = time.Now()
	return nil
}

// RefundValue returns quantity times unit price, or zero when no price is set
func (i *DraftItem) RefundValue() decimal.Decimal {
	if i.UnitPrice == nil {
		return decimal.Zero
	}
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ReturnDraft is the aggregate root for a customer-submitted return request.
// A draft starts in pending_validation and moves exactly once to approved,
// rejected, or linked. Review metadata is only ever set by that transition.
type ReturnDraft struct {
	shared.TenantAggregateRoot
	OrderNumber          string
	Email                string
	Channel              Channel
	Items                []DraftItem
	Status               DraftStatus
	SubmittedAt          time.Time
	ReviewedAt           *time.Time
	ReviewedBy           *uuid.UUID
	RejectionReason      string
	LinkedShopifyOrderID string
	Metadata             map[string]any
}

// NewReturnDraft creates a new return draft in pending_validation status
func NewReturnDraft(tenantID uuid.UUID, orderNumber, email string, channel Channel) (*ReturnDraft, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Invalid submission channel")
	}

	draft := &ReturnDraft{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         strings.TrimSpace(orderNumber),
		Email:               strings.ToLower(strings.TrimSpace(email)),
		Channel:             channel,
		Items:               make([]DraftItem, 0),
		Status:              DraftStatusPendingValidation,
		SubmittedAt:         time.Now(),
		Metadata:            make(map[string]any),
	}

	draft.AddDomainEvent(NewDraftSubmittedEvent(draft))

	return draft, nil
}

// TableName returns the table name for GORM
func (ReturnDraft) TableName() string {
	return "return_drafts"
}

// AddItem adds a line item to the draft.
// Only allowed while the draft is pending validation.
func (d *ReturnDraft) AddItem(title, sku, variant string, quantity int, reason string) (*DraftItem, error) {
	if d.Status != DraftStatusPendingValidation {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a reviewed draft")
	}

	item, err := NewDraftItem(d.ID, title, sku, variant, quantity, reason)
	if err != nil {
		return nil, err
	}

	d.Items = append(d.Items, *item)
	d.UpdatedAt = time.Now()

	return item, nil
}

// RemoveItem removes a line item from a pending draft
func (d *ReturnDraft) RemoveItem(itemID uuid.UUID) error {
	if d.Status != DraftStatusPendingValidation {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a reviewed draft")
	}

	for idx, item := range d.Items {
		if item.ID == itemID {
			d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
			d.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Draft item not found")
}

// SetMetadata stores an open metadata value on the draft
func (d *ReturnDraft) SetMetadata(key string, value any) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]any)
	}
	d.Metadata[key] = value
	d.UpdatedAt = time.Now()
}

// Approve transitions the draft to approved and records the reviewer
func (d *ReturnDraft) Approve(reviewerID uuid.UUID) error {
	if err := d.ensureTransition(DraftStatusApproved); err != nil {
		return err
	}

	oldStatus := d.Status
	d.Status = DraftStatusApproved
	d.markReviewed(reviewerID)

	d.AddDomainEvent(NewDraftStatusChangedEvent(d, oldStatus, DraftStatusApproved))

	return nil
}

// Reject transitions the draft to rejected. A non-empty reason is required.
func (d *ReturnDraft) Reject(reviewerID uuid.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason cannot be empty")
	}
	if err := d.ensureTransition(DraftStatusRejected); err != nil {
		return err
	}

	oldStatus := d.Status
	d.Status = DraftStatusRejected
	d.RejectionReason = strings.TrimSpace(reason)
	d.markReviewed(reviewerID)

	d.AddDomainEvent(NewDraftStatusChangedEvent(d, oldStatus, DraftStatusRejected))

	return nil
}

// Link transitions the draft to linked, attaching the platform order it was
// matched against. A non-empty order ID is required.
func (d *ReturnDraft) Link(reviewerID uuid.UUID, shopifyOrderID string) error {
	if strings.TrimSpace(shopifyOrderID) == "" {
		return shared.NewDomainError("INVALID_ORDER_ID", "Linked order ID cannot be empty")
	}
	if err := d.ensureTransition(DraftStatusLinked); err != nil {
		return err
	}

	oldStatus := d.Status
	d.Status = DraftStatusLinked
	d.LinkedShopifyOrderID = strings.TrimSpace(shopifyOrderID)
	d.markReviewed(reviewerID)

	d.AddDomainEvent(NewDraftStatusChangedEvent(d, oldStatus, DraftStatusLinked))

	return nil
}

// IsPending returns true if the draft has not been reviewed yet
func (d *ReturnDraft) IsPending() bool {
	return d.Status == DraftStatusPendingValidation
}

// IsReviewed returns true if the draft reached a terminal status
func (d *ReturnDraft) IsReviewed() bool {
	return d.Status.IsTerminal()
}

// TotalQuantity returns the total number of units across all items
func (d *ReturnDraft) TotalQuantity() int {
	total := 0
	for _, item := range d.Items {
		total += item.Quantity
	}
	return total
}

func (d *ReturnDraft) ensureTransition(target DraftStatus) error {
	if !d.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition draft from "+d.Status.String()+" to "+target.String())
	}
	return nil
}

func (d *ReturnDraft) markReviewed(reviewerID uuid.UUID) {
	now := time.Now()
	d.ReviewedAt = &now
	if reviewerID != uuid.Nil {
		d.ReviewedBy = &reviewerID
	}
	d.UpdatedAt = now
	d.IncrementVersion()
}
