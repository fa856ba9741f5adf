package rules

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// Condition is a single attribute comparison inside a condition group
type Condition struct {
	Attribute string            `json:"attribute"`
	Operator  ConditionOperator `json:"operator"`
	Values    []string          `json:"values"`
}

// NewCondition creates a new condition
func NewCondition(attribute string, operator ConditionOperator, values []string) (Condition, error) {
	if strings.TrimSpace(attribute) == "" {
		return Condition{}, shared.NewDomainError("INVALID_CONDITION", "Condition attribute cannot be empty")
	}
	if !operator.IsValid() {
		return Condition{}, shared.NewDomainError("INVALID_OPERATOR", "Invalid condition operator")
	}
	if len(values) == 0 {
		return Condition{}, shared.NewDomainError("INVALID_CONDITION", "Condition must have at least one value")
	}

	valuesCopy := make([]string, len(values))
	copy(valuesCopy, values)

	return Condition{
		Attribute: strings.TrimSpace(attribute),
		Operator:  operator,
		Values:    valuesCopy,
	}, nil
}

// ConditionGroup is a set of conditions that must all hold (AND).
// Groups combine with OR at the rule level.
type ConditionGroup struct {
	Conditions []Condition `json:"conditions"`
}

// NewConditionGroup creates a group from one or more conditions
func NewConditionGroup(conditions ...Condition) (ConditionGroup, error) {
	if len(conditions) == 0 {
		return ConditionGroup{}, shared.NewDomainError("INVALID_GROUP", "Condition group must have at least one condition")
	}
	group := ConditionGroup{Conditions: make([]Condition, len(conditions))}
	copy(group.Conditions, conditions)
	return group, nil
}

// RuleActions describes what a matching rule does to a draft
type RuleActions struct {
	AutoApprove   bool `json:"auto_approve"`
	AutoReject    bool `json:"auto_reject"`
	GenerateLabel bool `json:"generate_label"`
}

// IsContradictory returns true when the actions cannot both be honored
func (a RuleActions) IsContradictory() bool {
	return a.AutoApprove && a.AutoReject
}

// ReturnRule is the aggregate root for an automation rule.
// Rules are tenant-scoped and evaluated in priority order; evaluation never
// mutates the rule itself.
type ReturnRule struct {
	shared.TenantAggregateRoot
	Name            string
	Description     string
	ConditionGroups []ConditionGroup
	Actions         RuleActions
	Priority        int
	Active          bool
}

// TableName returns the table name for GORM
func (ReturnRule) TableName() string {
	return "return_rules"
}

// NewReturnRule creates a new active return rule
func NewReturnRule(tenantID uuid.UUID, name string, groups []ConditionGroup, actions RuleActions, priority int) (*ReturnRule, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Rule name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Rule name cannot exceed 200 characters")
	}
	if len(groups) == 0 {
		return nil, shared.NewDomainError("INVALID_GROUP", "Rule must have at least one condition group")
	}
	for _, g := range groups {
		if len(g.Conditions) == 0 {
			return nil, shared.NewDomainError("INVALID_GROUP", "Condition group must have at least one condition")
		}
	}
	if actions.IsContradictory() {
		return nil, shared.NewDomainError("INVALID_ACTIONS", "Rule cannot both auto-approve and auto-reject")
	}
	if priority < 0 {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Rule priority cannot be negative")
	}

	groupsCopy := make([]ConditionGroup, len(groups))
	copy(groupsCopy, groups)

	rule := &ReturnRule{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		ConditionGroups:     groupsCopy,
		Actions:             actions,
		Priority:            priority,
		Active:              true,
	}

	rule.AddDomainEvent(NewRuleCreatedEvent(rule))

	return rule, nil
}

// Update replaces the rule's name, condition groups, actions, and priority
func (r *ReturnRule) Update(name string, groups []ConditionGroup, actions RuleActions, priority int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Rule name cannot be empty")
	}
	if len(groups) == 0 {
		return shared.NewDomainError("INVALID_GROUP", "Rule must have at least one condition group")
	}
	for _, g := range groups {
		if len(g.Conditions) == 0 {
			return shared.NewDomainError("INVALID_GROUP", "Condition group must have at least one condition")
		}
	}
	if actions.IsContradictory() {
		return shared.NewDomainError("INVALID_ACTIONS", "Rule cannot both auto-approve and auto-reject")
	}
	if priority < 0 {
		return shared.NewDomainError("INVALID_PRIORITY", "Rule priority cannot be negative")
	}

	r.Name = strings.TrimSpace(name)
	r.ConditionGroups = groups
	r.Actions = actions
	r.Priority = priority
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRuleUpdatedEvent(r))

	return nil
}

// SetDescription sets the rule's free-form description
func (r *ReturnRule) SetDescription(description string) {
	r.Description = description
	r.UpdatedAt = time.Now()
}

// Activate enables the rule for evaluation
func (r *ReturnRule) Activate() {
	if r.Active {
		return
	}
	r.Active = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Deactivate excludes the rule from evaluation without deleting it
func (r *ReturnRule) Deactivate() {
	if !r.Active {
		return
	}
	r.Active = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Validate reports whether the rule is well-formed for evaluation.
// Persisted rules can go stale (hand-edited JSON, older versions), so the
// evaluator re-checks before matching instead of trusting the constructor.
func (r *ReturnRule) Validate() error {
	if len(r.ConditionGroups) == 0 {
		return shared.NewDomainError("MALFORMED_RULE", "Rule has no condition groups")
	}
	for _, g := range r.ConditionGroups {
		if len(g.Conditions) == 0 {
			return shared.NewDomainError("MALFORMED_RULE", "Rule has an empty condition group")
		}
		for _, c := range g.Conditions {
			if c.Attribute == "" {
				return shared.NewDomainError("MALFORMED_RULE", "Rule condition has no attribute")
			}
			if !c.Operator.IsValid() {
				return shared.NewDomainError("MALFORMED_RULE", "Rule condition has an unknown operator")
			}
			if len(c.Values) == 0 {
				return shared.NewDomainError("MALFORMED_RULE", "Rule condition has no values")
			}
		}
	}
	if r.Actions.IsContradictory() {
		return shared.NewDomainError("MALFORMED_RULE", "Rule actions are contradictory")
	}
	return nil
}
