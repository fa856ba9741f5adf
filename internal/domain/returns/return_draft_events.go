package returns

import (
	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// AggregateTypeReturnDraft is the aggregate type identifier for events
const AggregateTypeReturnDraft = "ReturnDraft"

// Event type constants
const (
	EventTypeDraftSubmitted     = "returns.draft.submitted"
	EventTypeDraftStatusChanged = "returns.draft.status_changed"
)

// DraftSubmittedEvent is raised when a new return draft enters the system
type DraftSubmittedEvent struct {
	shared.BaseDomainEvent
	DraftID     uuid.UUID `json:"draft_id"`
	OrderNumber string    `json:"order_number"`
	Email       string    `json:"email"`
	Channel     Channel   `json:"channel"`
}

// NewDraftSubmittedEvent creates a new draft submitted event
func NewDraftSubmittedEvent(d *ReturnDraft) *DraftSubmittedEvent {
	return &DraftSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDraftSubmitted, AggregateTypeReturnDraft, d.ID, d.TenantID),
		DraftID:         d.ID,
		OrderNumber:     d.OrderNumber,
		Email:           d.Email,
		Channel:         d.Channel,
	}
}

// DraftStatusChangedEvent is raised when a draft moves to a terminal status
type DraftStatusChangedEvent struct {
	shared.BaseDomainEvent
	DraftID         uuid.UUID   `json:"draft_id"`
	OrderNumber     string      `json:"order_number"`
	OldStatus       DraftStatus `json:"old_status"`
	NewStatus       DraftStatus `json:"new_status"`
	ReviewedBy      *uuid.UUID  `json:"reviewed_by,omitempty"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	LinkedOrderID   string      `json:"linked_order_id,omitempty"`
}

// NewDraftStatusChangedEvent creates a new draft status changed event
func NewDraftStatusChangedEvent(d *ReturnDraft, oldStatus, newStatus DraftStatus) *DraftStatusChangedEvent {
	return &DraftStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDraftStatusChanged, AggregateTypeReturnDraft, d.ID, d.TenantID),
		DraftID:         d.ID,
		OrderNumber:     d.OrderNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		ReviewedBy:      d.ReviewedBy,
		RejectionReason: d.RejectionReason,
		LinkedOrderID:   d.LinkedShopifyOrderID,
	}
}
