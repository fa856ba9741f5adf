package models

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/shasanksaas/RMS-sub004/internal/domain/rules"
)

// ReturnRuleModel is the persistence model for the ReturnRule aggregate root.
// Condition groups and actions are stored as JSONB documents.
type ReturnRuleModel struct {
	TenantAggregateModel
	Name                string `gorm:"type:varchar(200);not null"`
	Description         string `gorm:"type:text"`
	ConditionGroupsJSON string `gorm:"column:condition_groups;type:jsonb;not null;default:'[]'"`
	ActionsJSON         string `gorm:"column:actions;type:jsonb;not null;default:'{}'"`
	Priority            int    `gorm:"not null;default:0;index:idx_return_rules_tenant_priority,priority:2"`
	Active              bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ReturnRuleModel) TableName() string {
	return "return_rules"
}

// ToDomain converts the persistence model to a domain ReturnRule.
// Malformed JSON yields a rule with empty groups, which the domain's
// Validate method reports as malformed instead of crashing evaluation.
func (m *ReturnRuleModel) ToDomain() *rules.ReturnRule {
	rule := &rules.ReturnRule{
		Name:            m.Name,
		Description:     m.Description,
		ConditionGroups: make([]rules.ConditionGroup, 0),
		Priority:        m.Priority,
		Active:          m.Active,
	}
	m.PopulateTenantAggregateRoot(&rule.TenantAggregateRoot)

	if m.ConditionGroupsJSON != "" && m.ConditionGroupsJSON != "[]" {
		var groups []rules.ConditionGroup
		if err := json.Unmarshal([]byte(m.ConditionGroupsJSON), &groups); err != nil {
			modelLogger.Warn("failed to parse rule condition groups JSON",
				zap.String("rule_id", m.ID.String()),
				zap.Error(err))
		} else {
			rule.ConditionGroups = groups
		}
	}

	if m.ActionsJSON != "" && m.ActionsJSON != "{}" {
		var actions rules.RuleActions
		if err := json.Unmarshal([]byte(m.ActionsJSON), &actions); err != nil {
			modelLogger.Warn("failed to parse rule actions JSON",
				zap.String("rule_id", m.ID.String()),
				zap.Error(err))
		} else {
			rule.Actions = actions
		}
	}

	return rule
}

// FromDomain populates the persistence model from a domain ReturnRule
func (m *ReturnRuleModel) FromDomain(r *rules.ReturnRule) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.Name = r.Name
	m.Description = r.Description
	m.Priority = r.Priority
	m.Active = r.Active

	if len(r.ConditionGroups) > 0 {
		if jsonBytes, err := json.Marshal(r.ConditionGroups); err == nil {
			m.ConditionGroupsJSON = string(jsonBytes)
		} else {
			m.ConditionGroupsJSON = "[]"
		}
	} else {
		m.ConditionGroupsJSON = "[]"
	}

	if jsonBytes, err := json.Marshal(r.Actions); err == nil {
		m.ActionsJSON = string(jsonBytes)
	} else {
		m.ActionsJSON = "{}"
	}
}

// ReturnRuleModelFromDomain creates a new persistence model from a domain ReturnRule
func ReturnRuleModelFromDomain(r *rules.ReturnRule) *ReturnRuleModel {
	m := &ReturnRuleModel{}
	m.FromDomain(r)
	return m
}
