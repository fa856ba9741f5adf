package rules

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	"github.com/shasanksaas/RMS-sub004/internal/application/rules/dto"
	domainaudit "github.com/shasanksaas/RMS-sub004/internal/domain/audit"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/cache"
)

// RuleService handles return rule management. Every mutation invalidates
// the tenant's cached rule set so the next evaluation sees fresh rules.
type RuleService struct {
	ruleRepo     rules.ReturnRuleRepository
	decisionRepo rules.RuleDecisionRepository
	ruleCache    cache.RuleCache
	auditSvc     *auditapp.Service
	logger       *zap.Logger
}

// NewRuleService creates a new rule service
func NewRuleService(
	ruleRepo rules.ReturnRuleRepository,
	decisionRepo rules.RuleDecisionRepository,
	ruleCache cache.RuleCache,
	auditSvc *auditapp.Service,
	logger *zap.Logger,
) *RuleService {
	if ruleCache == nil {
		ruleCache = cache.NopRuleCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RuleService{
		ruleRepo:     ruleRepo,
		decisionRepo: decisionRepo,
		ruleCache:    ruleCache,
		auditSvc:     auditSvc,
		logger:       logger,
	}
}

// CreateRule creates a new return rule for a tenant
func (s *RuleService) CreateRule(ctx context.Context, tenantID uuid.UUID, req dto.CreateRuleRequest, actor auditapp.Actor) (*dto.RuleResponse, error) {
	groups, err := groupsFromDTO(req.Groups)
	if err != nil {
		return nil, err
	}

	rule, err := rules.NewReturnRule(tenantID, req.Name, groups, req.Actions.ToDomain(), req.Priority)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		rule.SetDescription(req.Description)
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		s.logger.Error("Failed to save rule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create rule")
	}

	s.invalidateCache(ctx, tenantID)
	s.auditSvc.Record(ctx, actor, domainaudit.ActionRuleCreated, &tenantID, map[string]any{
		"rule_id":  rule.ID.String(),
		"name":     rule.Name,
		"priority": rule.Priority,
	})

	s.logger.Info("Rule created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("rule_id", rule.ID.String()))

	return dto.ToRuleResponse(rule), nil
}

// GetRule returns a rule scoped to a tenant
func (s *RuleService) GetRule(ctx context.Context, tenantID, id uuid.UUID) (*dto.RuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, ruleLookupError(err)
	}
	return dto.ToRuleResponse(rule), nil
}

// ListRules returns a tenant's rules, ordered by priority by default
func (s *RuleService) ListRules(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[dto.RuleResponse], error) {
	page, err := s.ruleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list rules", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list rules")
	}
	return dto.ToRuleList(page), nil
}

// UpdateRule replaces a rule's definition
func (s *RuleService) UpdateRule(ctx context.Context, tenantID, id uuid.UUID, req dto.UpdateRuleRequest, actor auditapp.Actor) (*dto.RuleResponse, error) {
	rule, err := s.ruleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, ruleLookupError(err)
	}

	groups, err := groupsFromDTO(req.Groups)
	if err != nil {
		return nil, err
	}

	if err := rule.Update(req.Name, groups, req.Actions.ToDomain(), req.Priority); err != nil {
		return nil, err
	}
	rule.SetDescription(req.Description)
	if req.Active != nil {
		if *req.Active {
			rule.Activate()
		} else {
			rule.Deactivate()
		}
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		s.logger.Error("Failed to save rule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update rule")
	}

	s.invalidateCache(ctx, tenantID)
	s.auditSvc.Record(ctx, actor, domainaudit.ActionRuleUpdated, &tenantID, map[string]any{
		"rule_id":  rule.ID.String(),
		"name":     rule.Name,
		"priority": rule.Priority,
		"active":   rule.Active,
	})

	return dto.ToRuleResponse(rule), nil
}

// DeleteRule removes a rule. Past decisions that reference it are kept.
func (s *RuleService) DeleteRule(ctx context.Context, tenantID, id uuid.UUID, actor auditapp.Actor) error {
	rule, err := s.ruleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return ruleLookupError(err)
	}

	if err := s.ruleRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ruleLookupError(err)
		}
		s.logger.Error("Failed to delete rule", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete rule")
	}

	s.invalidateCache(ctx, tenantID)
	s.auditSvc.Record(ctx, actor, domainaudit.ActionRuleDeleted, &tenantID, map[string]any{
		"rule_id": id.String(),
		"name":    rule.Name,
	})

	return nil
}

// ListDecisions returns a tenant's decision records within a time range
func (s *RuleService) ListDecisions(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[dto.DecisionResponse], error) {
	page, err := s.decisionRepo.FindForTenant(ctx, tenantID, from, to, filter)
	if err != nil {
		s.logger.Error("Failed to list decisions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list decisions")
	}
	return dto.ToDecisionList(page), nil
}

// GetDecisionsForDraft returns the decisions recorded for one draft,
// newest first
func (s *RuleService) GetDecisionsForDraft(ctx context.Context, tenantID, draftID uuid.UUID) ([]dto.DecisionResponse, error) {
	decisions, err := s.decisionRepo.FindByDraft(ctx, tenantID, draftID)
	if err != nil {
		s.logger.Error("Failed to load draft decisions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load decisions")
	}

	responses := make([]dto.DecisionResponse, 0, len(decisions))
	for i := range decisions {
		responses = append(responses, *dto.ToDecisionResponse(&decisions[i]))
	}
	return responses, nil
}

func (s *RuleService) invalidateCache(ctx context.Context, tenantID uuid.UUID) {
	if err := s.ruleCache.Invalidate(ctx, tenantID); err != nil {
		// Stale entries age out at the TTL
		s.logger.Warn("Failed to invalidate rule cache",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
	}
}

func groupsFromDTO(groupDTOs []dto.ConditionGroupDTO) ([]rules.ConditionGroup, error) {
	groups := make([]rules.ConditionGroup, 0, len(groupDTOs))
	for _, g := range groupDTOs {
		group, err := g.ToDomain()
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func ruleLookupError(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("RULE_NOT_FOUND", "Return rule not found")
	}
	return shared.NewDomainError("INTERNAL_ERROR", "Failed to load rule")
}
