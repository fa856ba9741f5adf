package returns

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	"github.com/shasanksaas/RMS-sub004/internal/application/returns/dto"
	rulesapp "github.com/shasanksaas/RMS-sub004/internal/application/rules"
	domainaudit "github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/orders"
	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// DraftService handles return draft submission, review, and lookup.
// Submission runs the tenant's rules and applies any auto transition in the
// same operation; manual review is an admin or merchant action and is
// audited.
type DraftService struct {
	draftRepo returns.ReturnDraftRepository
	orderRepo orders.OrderRepository
	evalSvc   *rulesapp.EvaluationService
	auditSvc  *auditapp.Service
	logger    *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(
	draftRepo returns.ReturnDraftRepository,
	orderRepo orders.OrderRepository,
	evalSvc *rulesapp.EvaluationService,
	auditSvc *auditapp.Service,
	logger *zap.Logger,
) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		draftRepo: draftRepo,
		orderRepo: orderRepo,
		evalSvc:   evalSvc,
		auditSvc:  auditSvc,
		logger:    logger,
	}
}

// SubmitDraft accepts a return request, runs the tenant's rules against it,
// and applies the resulting transition. A failed evaluation leaves the
// draft pending instead of failing the submission.
func (s *DraftService) SubmitDraft(ctx context.Context, tenantID uuid.UUID, channel returns.Channel, req dto.SubmitDraftRequest) (*dto.DraftResponse, error) {
	draft, err := returns.NewReturnDraft(tenantID, req.OrderNumber, req.Email, channel)
	if err != nil {
		return nil, err
	}

	for _, itemReq := range req.Items {
		if _, err := draft.AddItem(itemReq.Title, itemReq.SKU, itemReq.Variant, itemReq.Quantity, itemReq.Reason); err != nil {
			return nil, err
		}
		// AddItem appends by value; mutate the stored copy
		stored := &draft.Items[len(draft.Items)-1]
		if itemReq.UnitPrice != nil {
			if err := stored.SetUnitPrice(*itemReq.UnitPrice); err != nil {
				return nil, err
			}
		}
		for _, url := range itemReq.PhotoURLs {
			if err := stored.AddPhotoURL(url); err != nil {
				return nil, err
			}
		}
	}

	for key, value := range req.Metadata {
		draft.SetMetadata(key, value)
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		s.logger.Error("Failed to save draft", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit return request")
	}

	decision := s.evaluateAndTransition(ctx, draft)

	s.logger.Info("Draft submitted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("draft_id", draft.ID.String()),
		zap.String("status", draft.Status.String()))

	return dto.ToDraftResponse(draft).WithDecision(decision), nil
}

// evaluateAndTransition runs the rule set and applies any auto outcome.
// Auto transitions carry no reviewer; ReviewedBy stays empty.
func (s *DraftService) evaluateAndTransition(ctx context.Context, draft *returns.ReturnDraft) *rules.RuleDecision {
	order := s.lookupOrder(ctx, draft.TenantID, draft.OrderNumber)

	decision, err := s.evalSvc.EvaluateDraft(ctx, draft, order)
	if err != nil {
		s.logger.Error("Rule evaluation failed, draft left pending",
			zap.String("draft_id", draft.ID.String()),
			zap.Error(err))
		return nil
	}

	var transitionErr error
	switch decision.Outcome {
	case rules.OutcomeAutoApproved:
		transitionErr = draft.Approve(uuid.Nil)
	case rules.OutcomeAutoRejected:
		reason := "Rejected by rule"
		if decision.RuleName != "" {
			reason = "Rejected by rule: " + decision.RuleName
		}
		transitionErr = draft.Reject(uuid.Nil, reason)
	default:
		return decision
	}

	if transitionErr != nil {
		s.logger.Error("Failed to apply rule outcome",
			zap.String("draft_id", draft.ID.String()),
			zap.Error(transitionErr))
		return decision
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		s.logger.Error("Failed to persist rule outcome",
			zap.String("draft_id", draft.ID.String()),
			zap.Error(err))
	}

	return decision
}

func (s *DraftService) lookupOrder(ctx context.Context, tenantID uuid.UUID, orderNumber string) *orders.Order {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Order lookup failed during evaluation",
				zap.String("order_number", orderNumber),
				zap.Error(err))
		}
		return nil
	}
	return order
}

// GetDraft returns a draft scoped to a tenant
func (s *DraftService) GetDraft(ctx context.Context, tenantID, id uuid.UUID) (*dto.DraftResponse, error) {
	draft, err := s.draftRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, draftLookupError(err)
	}
	return dto.ToDraftResponse(draft), nil
}

// GetDraftStatus returns the public status view for a draft token. The
// draft's generated ID is the token customers hold.
func (s *DraftService) GetDraftStatus(ctx context.Context, token uuid.UUID) (*dto.DraftStatusResponse, error) {
	draft, err := s.draftRepo.FindByID(ctx, token)
	if err != nil {
		return nil, draftLookupError(err)
	}
	return dto.ToDraftStatusResponse(draft), nil
}

// ListDrafts returns a tenant's drafts. Filter.Search matches order number
// and email; Filters supports "status".
func (s *DraftService) ListDrafts(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[dto.DraftResponse], error) {
	page, err := s.draftRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list drafts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list drafts")
	}
	return dto.ToDraftList(page), nil
}

// ListDraftsByStatus returns a tenant's drafts in one review status
func (s *DraftService) ListDraftsByStatus(ctx context.Context, tenantID uuid.UUID, status returns.DraftStatus, filter shared.Filter) (*shared.Paginated[dto.DraftResponse], error) {
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid draft status")
	}
	page, err := s.draftRepo.FindByStatus(ctx, tenantID, status, filter)
	if err != nil {
		s.logger.Error("Failed to list drafts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list drafts")
	}
	return dto.ToDraftList(page), nil
}

// FindDraftsForOrder returns the drafts submitted against an order number
func (s *DraftService) FindDraftsForOrder(ctx context.Context, tenantID uuid.UUID, orderNumber string) ([]dto.DraftResponse, error) {
	drafts, err := s.draftRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		s.logger.Error("Failed to find drafts for order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find drafts")
	}

	responses := make([]dto.DraftResponse, 0, len(drafts))
	for i := range drafts {
		responses = append(responses, *dto.ToDraftResponse(&drafts[i]))
	}
	return responses, nil
}

// CountDraftsByStatus returns the tenant's draft counts per status
func (s *DraftService) CountDraftsByStatus(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error) {
	counts, err := s.draftRepo.CountByStatus(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to count drafts", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to count drafts")
	}

	result := make(map[string]int64, len(returns.AllDraftStatuses()))
	for _, status := range returns.AllDraftStatuses() {
		result[status.String()] = counts[status]
	}
	return result, nil
}

// ApproveDraft approves a pending draft on behalf of a reviewer
func (s *DraftService) ApproveDraft(ctx context.Context, tenantID, id uuid.UUID, actor auditapp.Actor) (*dto.DraftResponse, error) {
	return s.review(ctx, tenantID, id, actor, domainaudit.ActionDraftApproved, nil, func(draft *returns.ReturnDraft) error {
		return draft.Approve(actor.UserID)
	})
}

// RejectDraft rejects a pending draft with a mandatory reason
func (s *DraftService) RejectDraft(ctx context.Context, tenantID, id uuid.UUID, req dto.RejectDraftRequest, actor auditapp.Actor) (*dto.DraftResponse, error) {
	details := map[string]any{"reason": req.Reason}
	return s.review(ctx, tenantID, id, actor, domainaudit.ActionDraftRejected, details, func(draft *returns.ReturnDraft) error {
		return draft.Reject(actor.UserID, req.Reason)
	})
}

// LinkDraft matches a pending draft to a platform order
func (s *DraftService) LinkDraft(ctx context.Context, tenantID, id uuid.UUID, req dto.LinkDraftRequest, actor auditapp.Actor) (*dto.DraftResponse, error) {
	details := map[string]any{"shopify_order_id": req.ShopifyOrderID}
	return s.review(ctx, tenantID, id, actor, domainaudit.ActionDraftLinked, details, func(draft *returns.ReturnDraft) error {
		return draft.Link(actor.UserID, req.ShopifyOrderID)
	})
}

func (s *DraftService) review(ctx context.Context, tenantID, id uuid.UUID, actor auditapp.Actor, action string, details map[string]any, transition func(*returns.ReturnDraft) error) (*dto.DraftResponse, error) {
	draft, err := s.draftRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, draftLookupError(err)
	}

	if err := transition(draft); err != nil {
		return nil, err
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		s.logger.Error("Failed to save draft", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update draft")
	}

	if details == nil {
		details = make(map[string]any)
	}
	details["draft_id"] = draft.ID.String()
	details["order_number"] = draft.OrderNumber
	s.auditSvc.Record(ctx, actor, action, &tenantID, details)

	s.logger.Info("Draft reviewed",
		zap.String("draft_id", draft.ID.String()),
		zap.String("status", draft.Status.String()),
		zap.String("reviewer_id", actor.UserID.String()))

	return dto.ToDraftResponse(draft), nil
}

func draftLookupError(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("DRAFT_NOT_FOUND", "Return draft not found")
	}
	return shared.NewDomainError("INTERNAL_ERROR", "Failed to load draft")
}
