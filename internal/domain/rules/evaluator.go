package rules

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// EvaluationResult is the outcome of running the tenant's rule set against
// one draft. MatchedRule is nil when no rule matched.
type EvaluationResult struct {
	MatchedRule   *ReturnRule
	Outcome       DecisionOutcome
	GenerateLabel bool
	SkippedRules  []uuid.UUID
}

// Matched returns true if a rule matched the draft
func (r EvaluationResult) Matched() bool {
	return r.MatchedRule != nil
}

// Evaluator runs a tenant's active rules against a draft context.
// Rules are evaluated in priority order; the first match wins. Malformed
// rules are skipped so one bad rule never blocks the whole pipeline.
type Evaluator struct {
	ruleRepo ReturnRuleRepository
}

// NewEvaluator creates a new rule evaluator
func NewEvaluator(ruleRepo ReturnRuleRepository) *Evaluator {
	return &Evaluator{ruleRepo: ruleRepo}
}

// Evaluate loads the tenant's active rules and evaluates them against the context
func (e *Evaluator) Evaluate(ctx context.Context, tenantID uuid.UUID, evalCtx *EvaluationContext) (EvaluationResult, error) {
	rules, err := e.ruleRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return EvaluationResult{Outcome: OutcomeManualReview}, err
	}
	return EvaluateRules(rules, evalCtx), nil
}

// EvaluateRules evaluates a pre-fetched rule set against the context.
// Rules are ordered by priority ascending; ties break on creation time, then
// ID, so repeated evaluations of the same set are deterministic.
func EvaluateRules(ruleSet []ReturnRule, evalCtx *EvaluationContext) EvaluationResult {
	result := EvaluationResult{Outcome: OutcomeManualReview}

	if len(ruleSet) == 0 {
		return result
	}

	sorted := make([]ReturnRule, len(ruleSet))
	copy(sorted, ruleSet)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	for idx := range sorted {
		rule := &sorted[idx]
		if !rule.Active {
			continue
		}
		if err := rule.Validate(); err != nil {
			result.SkippedRules = append(result.SkippedRules, rule.ID)
			continue
		}
		if !MatchAnyGroup(rule.ConditionGroups, evalCtx) {
			continue
		}

		result.MatchedRule = rule
		result.GenerateLabel = rule.Actions.GenerateLabel
		switch {
		case rule.Actions.AutoApprove:
			result.Outcome = OutcomeAutoApproved
		case rule.Actions.AutoReject:
			result.Outcome = OutcomeAutoRejected
		default:
			result.Outcome = OutcomeManualReview
		}
		return result
	}

	return result
}
