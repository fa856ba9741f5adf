package rules

import (
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// RuleDecision records the outcome of one rule-set evaluation for a draft.
// Decisions are append-only; the draft transition they caused is applied by
// the application layer, not stored here.
type RuleDecision struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	DraftID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RuleID        *uuid.UUID      `gorm:"type:uuid;index"`
	RuleName      string          `gorm:"type:varchar(200)"`
	Outcome       DecisionOutcome `gorm:"type:varchar(20);not null"`
	GenerateLabel bool
	EvaluatedAt   time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (RuleDecision) TableName() string {
	return "rule_decisions"
}

// NewRuleDecision records a decision made by a matching rule
func NewRuleDecision(tenantID, draftID uuid.UUID, rule *ReturnRule, outcome DecisionOutcome) (*RuleDecision, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if draftID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRAFT", "Draft ID cannot be empty")
	}
	if !outcome.IsValid() {
		return nil, shared.NewDomainError("INVALID_OUTCOME", "Invalid decision outcome")
	}

	decision := &RuleDecision{
		ID:          uuid.New(),
		TenantID:    tenantID,
		DraftID:     draftID,
		Outcome:     outcome,
		EvaluatedAt: time.Now(),
	}
	if rule != nil {
		ruleID := rule.ID
		decision.RuleID = &ruleID
		decision.RuleName = rule.Name
		decision.GenerateLabel = rule.Actions.GenerateLabel
	}

	return decision, nil
}

// NewNoMatchDecision records an evaluation where no rule matched
func NewNoMatchDecision(tenantID, draftID uuid.UUID) (*RuleDecision, error) {
	return NewRuleDecision(tenantID, draftID, nil, OutcomeManualReview)
}

// Matched returns true if a rule produced this decision
func (d *RuleDecision) Matched() bool {
	return d.RuleID != nil
}
