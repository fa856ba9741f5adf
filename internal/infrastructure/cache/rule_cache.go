package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
)

// RuleCache caches a tenant's active rule set in evaluation order.
// A nil slice with ok=false means a cache miss; an empty slice with ok=true
// means the tenant has no active rules and the miss was already resolved.
type RuleCache interface {
	// GetActiveRules retrieves the cached active rules for a tenant
	GetActiveRules(ctx context.Context, tenantID uuid.UUID) ([]rules.ReturnRule, bool, error)

	// SetActiveRules caches the active rules for a tenant
	SetActiveRules(ctx context.Context, tenantID uuid.UUID, ruleSet []rules.ReturnRule) error

	// Invalidate drops the cached rule set for a tenant. Called on every
	// rule create, update, or delete.
	Invalidate(ctx context.Context, tenantID uuid.UUID) error

	// Close releases cache resources
	Close() error
}

// NopRuleCache is a RuleCache that caches nothing. Used when rule caching
// is disabled in configuration.
type NopRuleCache struct{}

// NewNopRuleCache creates a no-op rule cache
func NewNopRuleCache() *NopRuleCache {
	return &NopRuleCache{}
}

// GetActiveRules always reports a miss
func (NopRuleCache) GetActiveRules(context.Context, uuid.UUID) ([]rules.ReturnRule, bool, error) {
	return nil, false, nil
}

// SetActiveRules does nothing
func (NopRuleCache) SetActiveRules(context.Context, uuid.UUID, []rules.ReturnRule) error {
	return nil
}

// Invalidate does nothing
func (NopRuleCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}

// Close does nothing
func (NopRuleCache) Close() error {
	return nil
}

var _ RuleCache = (*NopRuleCache)(nil)
