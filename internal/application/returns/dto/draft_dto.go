package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// SubmitItemRequest is one line item on a draft submission
type SubmitItemRequest struct {
	Title     string           `json:"title" binding:"required,max=200"`
	SKU       string           `json:"sku" binding:"omitempty,max=100"`
	Variant   string           `json:"variant" binding:"omitempty,max=200"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	Reason    string           `json:"reason" binding:"omitempty,max=200"`
	PhotoURLs []string         `json:"photo_urls" binding:"omitempty,dive,url"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SubmitDraftRequest is the payload for submitting a return draft
type SubmitDraftRequest struct {
	OrderNumber string              `json:"order_number" binding:"required,max=100"`
	Email       string              `json:"email" binding:"required,email"`
	Items       []SubmitItemRequest `json:"items" binding:"required,min=1,dive"`
	Metadata    map[string]any      `json:"metadata"`
}

// RejectDraftRequest carries the mandatory rejection reason
type RejectDraftRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// LinkDraftRequest names the platform order a draft is matched to
type LinkDraftRequest struct {
	ShopifyOrderID string `json:"shopify_order_id" binding:"required,max=100"`
}

// DraftItemResponse is the API representation of a draft line item
type DraftItemResponse struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	SKU       string           `json:"sku,omitempty"`
	Variant   string           `json:"variant,omitempty"`
	Quantity  int              `json:"quantity"`
	Reason    string           `json:"reason,omitempty"`
	PhotoURLs []string         `json:"photo_urls,omitempty"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// DecisionSummary names the rule outcome attached to a submission response
type DecisionSummary struct {
	Outcome       string     `json:"outcome"`
	RuleID        *uuid.UUID `json:"rule_id,omitempty"`
	RuleName      string     `json:"rule_name,omitempty"`
	GenerateLabel bool       `json:"generate_label"`
}

// DraftResponse is the API representation of a return draft
type DraftResponse struct {
	ID                   uuid.UUID           `json:"id"`
	TenantID             uuid.UUID           `json:"tenant_id"`
	OrderNumber          string              `json:"order_number"`
	Email                string              `json:"email"`
	Channel              string              `json:"channel"`
	Status               string              `json:"status"`
	Items                []DraftItemResponse `json:"items"`
	SubmittedAt          time.Time           `json:"submitted_at"`
	ReviewedAt           *time.Time          `json:"reviewed_at,omitempty"`
	ReviewedBy           *uuid.UUID          `json:"reviewed_by,omitempty"`
	RejectionReason      string              `json:"rejection_reason,omitempty"`
	LinkedShopifyOrderID string              `json:"linked_shopify_order_id,omitempty"`
	Metadata             map[string]any      `json:"metadata,omitempty"`
	Decision             *DecisionSummary    `json:"decision,omitempty"`
}

// DraftStatusResponse is the public status view keyed by the draft token.
// It deliberately omits tenant internals.
type DraftStatusResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderNumber     string     `json:"order_number"`
	Status          string     `json:"status"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// ToDraftResponse converts a domain draft to its API representation
func ToDraftResponse(draft *returns.ReturnDraft) *DraftResponse {
	items := make([]DraftItemResponse, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, DraftItemResponse{
			ID:        item.ID,
			Title:     item.Title,
			SKU:       item.SKU,
			Variant:   item.Variant,
			Quantity:  item.Quantity,
			Reason:    item.Reason,
			PhotoURLs: item.PhotoURLs,
			UnitPrice: item.UnitPrice,
		})
	}

	return &DraftResponse{
		ID:                   draft.ID,
		TenantID:             draft.TenantID,
		OrderNumber:          draft.OrderNumber,
		Email:                draft.Email,
		Channel:              draft.Channel.String(),
		Status:               draft.Status.String(),
		Items:                items,
		SubmittedAt:          draft.SubmittedAt,
		ReviewedAt:           draft.ReviewedAt,
		ReviewedBy:           draft.ReviewedBy,
		RejectionReason:      draft.RejectionReason,
		LinkedShopifyOrderID: draft.LinkedShopifyOrderID,
		Metadata:             draft.Metadata,
	}
}

// WithDecision attaches the evaluation outcome to the response
func (r *DraftResponse) WithDecision(decision *rules.RuleDecision) *DraftResponse {
	if decision == nil {
		return r
	}
	r.Decision = &DecisionSummary{
		Outcome:       decision.Outcome.String(),
		RuleID:        decision.RuleID,
		RuleName:      decision.RuleName,
		GenerateLabel: decision.GenerateLabel,
	}
	return r
}

// ToDraftStatusResponse converts a draft to its public status view
func ToDraftStatusResponse(draft *returns.ReturnDraft) *DraftStatusResponse {
	return &DraftStatusResponse{
		ID:              draft.ID,
		OrderNumber:     draft.OrderNumber,
		Status:          draft.Status.String(),
		SubmittedAt:     draft.SubmittedAt,
		ReviewedAt:      draft.ReviewedAt,
		RejectionReason: draft.RejectionReason,
	}
}

// ToDraftList converts a paginated set of domain drafts
func ToDraftList(page *shared.Paginated[returns.ReturnDraft]) *shared.Paginated[DraftResponse] {
	items := make([]DraftResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToDraftResponse(&page.Items[i]))
	}
	return &shared.Paginated[DraftResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
