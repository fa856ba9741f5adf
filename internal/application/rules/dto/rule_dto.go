package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
)

// ConditionDTO represents one rule condition in API requests and responses
type ConditionDTO struct {
	Attribute string   `json:"attribute" binding:"required"`
	Operator  string   `json:"operator" binding:"required"`
	Values    []string `json:"values" binding:"required,min=1"`
}

// ToDomain converts the DTO to a domain condition
func (d ConditionDTO) ToDomain() (rules.Condition, error) {
	return rules.NewCondition(d.Attribute, rules.ConditionOperator(d.Operator), d.Values)
}

// ToConditionDTO converts a domain condition to its API representation
func ToConditionDTO(c rules.Condition) ConditionDTO {
	return ConditionDTO{
		Attribute: c.Attribute,
		Operator:  c.Operator.String(),
		Values:    c.Values,
	}
}

// ConditionGroupDTO represents a group of AND-ed conditions. Groups OR
// together on the rule.
type ConditionGroupDTO struct {
	Conditions []ConditionDTO `json:"conditions" binding:"required,min=1,dive"`
}

// ToDomain converts the DTO to a domain condition group
func (d ConditionGroupDTO) ToDomain() (rules.ConditionGroup, error) {
	conditions := make([]rules.Condition, 0, len(d.Conditions))
	for _, c := range d.Conditions {
		condition, err := c.ToDomain()
		if err != nil {
			return rules.ConditionGroup{}, err
		}
		conditions = append(conditions, condition)
	}
	return rules.NewConditionGroup(conditions...)
}

// ToConditionGroupDTO converts a domain group to its API representation
func ToConditionGroupDTO(g rules.ConditionGroup) ConditionGroupDTO {
	conditions := make([]ConditionDTO, 0, len(g.Conditions))
	for _, c := range g.Conditions {
		conditions = append(conditions, ToConditionDTO(c))
	}
	return ConditionGroupDTO{Conditions: conditions}
}

// RuleActionsDTO represents what a matching rule does
type RuleActionsDTO struct {
	AutoApprove   bool `json:"auto_approve"`
	AutoReject    bool `json:"auto_reject"`
	GenerateLabel bool `json:"generate_label"`
}

// ToDomain converts the DTO to domain rule actions
func (d RuleActionsDTO) ToDomain() rules.RuleActions {
	return rules.RuleActions{
		AutoApprove:   d.AutoApprove,
		AutoReject:    d.AutoReject,
		GenerateLabel: d.GenerateLabel,
	}
}

// CreateRuleRequest is the payload for creating a return rule
type CreateRuleRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Description string              `json:"description" binding:"omitempty,max=1000"`
	Groups      []ConditionGroupDTO `json:"condition_groups" binding:"required,min=1,dive"`
	Actions     RuleActionsDTO      `json:"actions"`
	Priority    int                 `json:"priority" binding:"min=0"`
}

// UpdateRuleRequest is the payload for updating a return rule
type UpdateRuleRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Description string              `json:"description" binding:"omitempty,max=1000"`
	Groups      []ConditionGroupDTO `json:"condition_groups" binding:"required,min=1,dive"`
	Actions     RuleActionsDTO      `json:"actions"`
	Priority    int                 `json:"priority" binding:"min=0"`
	Active      *bool               `json:"active"`
}

// RuleResponse is the API representation of a return rule
type RuleResponse struct {
	ID          uuid.UUID           `json:"id"`
	TenantID    uuid.UUID           `json:"tenant_id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Groups      []ConditionGroupDTO `json:"condition_groups"`
	Actions     RuleActionsDTO      `json:"actions"`
	Priority    int                 `json:"priority"`
	Active      bool                `json:"active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Version     int                 `json:"version"`
}

// ToRuleResponse converts a domain rule to its API representation
func ToRuleResponse(rule *rules.ReturnRule) *RuleResponse {
	groups := make([]ConditionGroupDTO, 0, len(rule.ConditionGroups))
	for _, g := range rule.ConditionGroups {
		groups = append(groups, ToConditionGroupDTO(g))
	}
	return &RuleResponse{
		ID:          rule.ID,
		TenantID:    rule.TenantID,
		Name:        rule.Name,
		Description: rule.Description,
		Groups:      groups,
		Actions: RuleActionsDTO{
			AutoApprove:   rule.Actions.AutoApprove,
			AutoReject:    rule.Actions.AutoReject,
			GenerateLabel: rule.Actions.GenerateLabel,
		},
		Priority:  rule.Priority,
		Active:    rule.Active,
		CreatedAt: rule.CreatedAt,
		UpdatedAt: rule.UpdatedAt,
		Version:   rule.Version,
	}
}

// ToRuleList converts a paginated set of domain rules
func ToRuleList(page *shared.Paginated[rules.ReturnRule]) *shared.Paginated[RuleResponse] {
	items := make([]RuleResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToRuleResponse(&page.Items[i]))
	}
	return &shared.Paginated[RuleResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// DecisionResponse is the API representation of a persisted rule decision
type DecisionResponse struct {
	ID            uuid.UUID  `json:"id"`
	DraftID       uuid.UUID  `json:"draft_id"`
	RuleID        *uuid.UUID `json:"rule_id,omitempty"`
	RuleName      string     `json:"rule_name,omitempty"`
	Outcome       string     `json:"outcome"`
	GenerateLabel bool       `json:"generate_label"`
	EvaluatedAt   time.Time  `json:"evaluated_at"`
}

// ToDecisionResponse converts a domain decision to its API representation
func ToDecisionResponse(decision *rules.RuleDecision) *DecisionResponse {
	return &DecisionResponse{
		ID:            decision.ID,
		DraftID:       decision.DraftID,
		RuleID:        decision.RuleID,
		RuleName:      decision.RuleName,
		Outcome:       decision.Outcome.String(),
		GenerateLabel: decision.GenerateLabel,
		EvaluatedAt:   decision.EvaluatedAt,
	}
}

// ToDecisionList converts a paginated set of domain decisions
func ToDecisionList(page *shared.Paginated[rules.RuleDecision]) *shared.Paginated[DecisionResponse] {
	items := make([]DecisionResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToDecisionResponse(&page.Items[i]))
	}
	return &shared.Paginated[DecisionResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
