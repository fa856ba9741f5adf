package rules

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// ReturnRuleRepository defines the persistence interface for return rules
type ReturnRuleRepository interface {
	// FindByID finds a rule by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ReturnRule, error)

	// FindByIDForTenant finds a rule by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ReturnRule, error)

	// FindAllForTenant finds all rules for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[ReturnRule], error)

	// FindActiveForTenant finds the tenant's active rules ordered by
	// priority ascending, creation time ascending
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]ReturnRule, error)

	// Save creates or updates a rule
	Save(ctx context.Context, rule *ReturnRule) error

	// Delete removes a rule
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// RuleDecisionRepository defines the persistence interface for decision records
type RuleDecisionRepository interface {
	// Append stores a new decision record. Decisions are never updated.
	Append(ctx context.Context, decision *RuleDecision) error

	// FindByDraft returns all decisions recorded for a draft, newest first
	FindByDraft(ctx context.Context, tenantID, draftID uuid.UUID) ([]RuleDecision, error)

	// FindForTenant returns decisions for a tenant within a time range
	FindForTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time, filter shared.Filter) (*shared.Paginated[RuleDecision], error)
}
