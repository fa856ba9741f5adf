package rules

import (
	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// AggregateTypeReturnRule is the aggregate type identifier for events
const AggregateTypeReturnRule = "ReturnRule"

// Event type constants
const (
	EventTypeRuleCreated = "rules.rule.created"
	EventTypeRuleUpdated = "rules.rule.updated"
	EventTypeRuleDeleted = "rules.rule.deleted"
)

// RuleCreatedEvent is raised when a return rule is created
type RuleCreatedEvent struct {
	shared.BaseDomainEvent
	RuleID   uuid.UUID `json:"rule_id"`
	Name     string    `json:"name"`
	Priority int       `json:"priority"`
}

// NewRuleCreatedEvent creates a new rule created event
func NewRuleCreatedEvent(r *ReturnRule) *RuleCreatedEvent {
	return &RuleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRuleCreated, AggregateTypeReturnRule, r.ID, r.TenantID),
		RuleID:          r.ID,
		Name:            r.Name,
		Priority:        r.Priority,
	}
}

// RuleUpdatedEvent is raised when a return rule is modified
type RuleUpdatedEvent struct {
	shared.BaseDomainEvent
	RuleID   uuid.UUID `json:"rule_id"`
	Name     string    `json:"name"`
	Priority int       `json:"priority"`
	Active   bool      `json:"active"`
}

// NewRuleUpdatedEvent creates a new rule updated event
func NewRuleUpdatedEvent(r *ReturnRule) *RuleUpdatedEvent {
	return &RuleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRuleUpdated, AggregateTypeReturnRule, r.ID, r.TenantID),
		RuleID:          r.ID,
		Name:            r.Name,
		Priority:        r.Priority,
		Active:          r.Active,
	}
}

// RuleDeletedEvent is raised when a return rule is removed
type RuleDeletedEvent struct {
	shared.BaseDomainEvent
	RuleID uuid.UUID `json:"rule_id"`
	Name   string    `json:"name"`
}

// NewRuleDeletedEvent creates a new rule deleted event
func NewRuleDeletedEvent(r *ReturnRule) *RuleDeletedEvent {
	return &RuleDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRuleDeleted, AggregateTypeReturnRule, r.ID, r.TenantID),
		RuleID:          r.ID,
		Name:            r.Name,
	}
}
