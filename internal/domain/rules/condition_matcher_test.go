package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestMatchCondition(t *testing.T) {
	ctx := &EvaluationContext{
		OrderNumber:    "1001",
		Email:          "customer@example.com",
		Channel:        "customer",
		Reason:         "arrived damaged",
		DaysSinceOrder: floatPtr(12),
		TotalQuantity:  3,
		ItemSKUs:       []string{"HOOD-BL-M", "TEE-WH-S"},
		ItemTitles:     []string{"Blue Hoodie", "White Tee"},
		Attributes:     map[string]any{"vip": "true"},
	}

	tests := []struct {
		name      string
		attribute string
		operator  ConditionOperator
		values    []string
		want      bool
	}{
		{"reason equals", "reason", ConditionOperatorEquals, []string{"arrived damaged"}, true},
		{"reason equals is case-insensitive", "reason", ConditionOperatorEquals, []string{"Arrived Damaged"}, true},
		{"reason not equals", "reason", ConditionOperatorNotEquals, []string{"changed mind"}, true},
		{"reason contains", "reason", ConditionOperatorContains, []string{"damaged"}, true},
		{"reason contains misses", "reason", ConditionOperatorContains, []string{"defective"}, false},
		{"channel in", "channel", ConditionOperatorIn, []string{"customer", "admin"}, true},
		{"channel not in", "channel", ConditionOperatorNotIn, []string{"admin"}, true},
		{"days since order greater than", "days_since_order", ConditionOperatorGreaterThan, []string{"7"}, true},
		{"days since order less than", "days_since_order", ConditionOperatorLessThan, []string{"30"}, true},
		{"days since order numeric not lexical", "days_since_order", ConditionOperatorGreaterThan, []string{"9"}, true},
		{"quantity less than", "quantity", ConditionOperatorLessThan, []string{"5"}, true},
		{"quantity greater than misses", "quantity", ConditionOperatorGreaterThan, []string{"3"}, false},
		{"sku matches any item", "sku", ConditionOperatorEquals, []string{"TEE-WH-S"}, true},
		{"sku in list", "sku", ConditionOperatorIn, []string{"TEE-WH-S", "SOCK-GR-L"}, true},
		{"sku not in holds for all items", "sku", ConditionOperatorNotIn, []string{"SOCK-GR-L"}, true},
		{"sku not in fails when one item listed", "sku", ConditionOperatorNotIn, []string{"TEE-WH-S"}, false},
		{"title contains", "title", ConditionOperatorContains, []string{"hoodie"}, true},
		{"custom attribute", "vip", ConditionOperatorEquals, []string{"true"}, true},
		{"unknown attribute never matches", "warehouse", ConditionOperatorEquals, []string{"east"}, false},
		{"email equals", "email", ConditionOperatorEquals, []string{"customer@example.com"}, true},
		{"order number equals", "order_number", ConditionOperatorEquals, []string{"1001"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := Condition{Attribute: tt.attribute, Operator: tt.operator, Values: tt.values}
			assert.Equal(t, tt.want, MatchCondition(cond, ctx))
		})
	}

	t.Run("nil context never matches", func(t *testing.T) {
		cond := Condition{Attribute: "reason", Operator: ConditionOperatorEquals, Values: []string{"x"}}
		assert.False(t, MatchCondition(cond, nil))
	})

	t.Run("missing days since order never matches numeric conditions", func(t *testing.T) {
		noAge := &EvaluationContext{Reason: "damaged"}
		cond := Condition{Attribute: "days_since_order", Operator: ConditionOperatorLessThan, Values: []string{"30"}}
		assert.False(t, MatchCondition(cond, noAge))
	})
}

func TestMatchGroups(t *testing.T) {
	ctx := &EvaluationContext{
		Reason:         "defective",
		Channel:        "customer",
		DaysSinceOrder: floatPtr(5),
	}

	reasonCond := Condition{Attribute: "reason", Operator: ConditionOperatorEquals, Values: []string{"defective"}}
	channelCond := Condition{Attribute: "channel", Operator: ConditionOperatorEquals, Values: []string{"customer"}}
	staleCond := Condition{Attribute: "days_since_order", Operator: ConditionOperatorGreaterThan, Values: []string{"30"}}

	t.Run("group requires all conditions", func(t *testing.T) {
		group := ConditionGroup{Conditions: []Condition{reasonCond, channelCond}}
		assert.True(t, MatchGroup(group, ctx))

		group = ConditionGroup{Conditions: []Condition{reasonCond, staleCond}}
		assert.False(t, MatchGroup(group, ctx))
	})

	t.Run("empty group never matches", func(t *testing.T) {
		assert.False(t, MatchGroup(ConditionGroup{}, ctx))
	})

	t.Run("any group suffices", func(t *testing.T) {
		groups := []ConditionGroup{
			{Conditions: []Condition{staleCond}},
			{Conditions: []Condition{reasonCond}},
		}
		assert.True(t, MatchAnyGroup(groups, ctx))
	})

	t.Run("no groups no match", func(t *testing.T) {
		assert.False(t, MatchAnyGroup(nil, ctx))
	})
}

func TestConditionConstruction(t *testing.T) {
	t.Run("valid condition", func(t *testing.T) {
		cond, err := NewCondition("reason", ConditionOperatorEquals, []string{"defective"})
		require.NoError(t, err)
		assert.Equal(t, "reason", cond.Attribute)
	})

	t.Run("empty attribute rejected", func(t *testing.T) {
		_, err := NewCondition("", ConditionOperatorEquals, []string{"x"})
		assert.Error(t, err)
	})

	t.Run("unknown operator rejected", func(t *testing.T) {
		_, err := NewCondition("reason", ConditionOperator("matches"), []string{"x"})
		assert.Error(t, err)
	})

	t.Run("no values rejected", func(t *testing.T) {
		_, err := NewCondition("reason", ConditionOperatorEquals, nil)
		assert.Error(t, err)
	})
}
