package rules

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/orders"
	"github.com/shasanksaas/RMS-sub004/internal/domain/returns"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/cache"
)

// EvaluationService runs a tenant's rule set against a submitted draft and
// persists the resulting decision. Active rules are read through the cache;
// a miss falls back to the repository and repopulates the cache.
type EvaluationService struct {
	ruleRepo     rules.ReturnRuleRepository
	decisionRepo rules.RuleDecisionRepository
	ruleCache    cache.RuleCache
	logger       *zap.Logger
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(
	ruleRepo rules.ReturnRuleRepository,
	decisionRepo rules.RuleDecisionRepository,
	ruleCache cache.RuleCache,
	logger *zap.Logger,
) *EvaluationService {
	if ruleCache == nil {
		ruleCache = cache.NopRuleCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{
		ruleRepo:     ruleRepo,
		decisionRepo: decisionRepo,
		ruleCache:    ruleCache,
		logger:       logger,
	}
}

// EvaluateDraft evaluates the tenant's active rules against a draft and
// appends the decision record. The order snapshot is optional; when present
// it supplies the order age.
func (s *EvaluationService) EvaluateDraft(ctx context.Context, draft *returns.ReturnDraft, order *orders.Order) (*rules.RuleDecision, error) {
	if draft == nil {
		return nil, shared.NewDomainError("INVALID_DRAFT", "Draft cannot be nil")
	}

	ruleSet, err := s.activeRules(ctx, draft.TenantID)
	if err != nil {
		return nil, err
	}

	evalCtx := BuildEvaluationContext(draft, order)
	result := rules.EvaluateRules(ruleSet, evalCtx)

	if len(result.SkippedRules) > 0 {
		skipped := make([]string, 0, len(result.SkippedRules))
		for _, id := range result.SkippedRules {
			skipped = append(skipped, id.String())
		}
		s.logger.Warn("Skipped malformed rules during evaluation",
			zap.String("tenant_id", draft.TenantID.String()),
			zap.Strings("rule_ids", skipped))
	}

	var decision *rules.RuleDecision
	if result.Matched() {
		decision, err = rules.NewRuleDecision(draft.TenantID, draft.ID, result.MatchedRule, result.Outcome)
	} else {
		decision, err = rules.NewNoMatchDecision(draft.TenantID, draft.ID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.decisionRepo.Append(ctx, decision); err != nil {
		s.logger.Error("Failed to append decision record", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record decision")
	}

	s.logger.Info("Draft evaluated",
		zap.String("tenant_id", draft.TenantID.String()),
		zap.String("draft_id", draft.ID.String()),
		zap.String("outcome", decision.Outcome.String()),
		zap.Bool("matched", decision.Matched()))

	return decision, nil
}

func (s *EvaluationService) activeRules(ctx context.Context, tenantID uuid.UUID) ([]rules.ReturnRule, error) {
	cached, ok, err := s.ruleCache.GetActiveRules(ctx, tenantID)
	if err != nil {
		// Cache trouble degrades to a repository read
		s.logger.Warn("Rule cache read failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	ruleSet, err := s.ruleRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to load active rules", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load rules")
	}

	if err := s.ruleCache.SetActiveRules(ctx, tenantID, ruleSet); err != nil {
		s.logger.Warn("Failed to populate rule cache",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}

	return ruleSet, nil
}

// BuildEvaluationContext maps a draft and its optional order snapshot into
// the attributes rules can match against. The reason attribute is the first
// non-empty item reason.
func BuildEvaluationContext(draft *returns.ReturnDraft, order *orders.Order) *rules.EvaluationContext {
	evalCtx := &rules.EvaluationContext{
		TenantID:      draft.TenantID.String(),
		OrderNumber:   draft.OrderNumber,
		Email:         draft.Email,
		Channel:       draft.Channel.String(),
		TotalQuantity: draft.TotalQuantity(),
		Attributes:    draft.Metadata,
	}

	for _, item := range draft.Items {
		if evalCtx.Reason == "" && item.Reason != "" {
			evalCtx.Reason = item.Reason
		}
		if item.SKU != "" {
			evalCtx.ItemSKUs = append(evalCtx.ItemSKUs, item.SKU)
		}
		evalCtx.ItemTitles = append(evalCtx.ItemTitles, item.Title)
	}

	if order != nil {
		age := order.AgeInDays(time.Now())
		evalCtx.DaysSinceOrder = &age
		if len(evalCtx.ItemSKUs) == 0 {
			evalCtx.ItemSKUs = order.ItemSKUs()
		}
	}

	return evalCtx
}
