package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// EvaluationContext carries the draft attributes a rule can match against.
// Built by the application layer from the submitted draft and, when the
// order is known, its snapshot.
type EvaluationContext struct {
	TenantID       string
	OrderNumber    string
	Email          string
	Channel        string
	Reason         string
	DaysSinceOrder *float64
	TotalQuantity  int
	ItemSKUs       []string
	ItemTitles     []string
	Attributes     map[string]any
}

// MatchCondition evaluates whether the given condition matches the context.
//
// The attribute is looked up in the following order:
// 1. Built-in attributes: reason, channel, email, order_number,
//    days_since_order, quantity, sku, title
// 2. Custom attributes from the Attributes map
//
// Multi-valued attributes (item SKUs and titles) match when any element
// satisfies the operator.
func MatchCondition(condition Condition, ctx *EvaluationContext) bool {
	if ctx == nil {
		return false
	}

	attrValue := getAttributeValue(condition.Attribute, ctx)

	if values, ok := attrValue.([]string); ok {
		return applyOperatorMulti(condition.Operator, values, condition.Values)
	}

	return applyOperator(condition.Operator, attrValue, condition.Values)
}

// MatchGroup returns true if ALL conditions in the group match (AND logic)
func MatchGroup(group ConditionGroup, ctx *EvaluationContext) bool {
	if ctx == nil || len(group.Conditions) == 0 {
		return false
	}

	for _, condition := range group.Conditions {
		if !MatchCondition(condition, ctx) {
			return false
		}
	}
	return true
}

// MatchAnyGroup returns true if ANY group matches the context (OR logic)
func MatchAnyGroup(groups []ConditionGroup, ctx *EvaluationContext) bool {
	if ctx == nil || len(groups) == 0 {
		return false
	}

	for _, group := range groups {
		if MatchGroup(group, ctx) {
			return true
		}
	}
	return false
}

// getAttributeValue retrieves the value of an attribute from the context
func getAttributeValue(attribute string, ctx *EvaluationContext) any {
	switch strings.ToLower(attribute) {
	case "tenant_id", "tenantid":
		return ctx.TenantID
	case "order_number", "ordernumber":
		return ctx.OrderNumber
	case "email", "customer_email":
		return ctx.Email
	case "channel":
		return ctx.Channel
	case "reason", "return_reason":
		return ctx.Reason
	case "days_since_order", "order_age_days":
		if ctx.DaysSinceOrder == nil {
			return nil
		}
		return *ctx.DaysSinceOrder
	case "quantity", "total_quantity":
		return ctx.TotalQuantity
	case "sku", "item_sku":
		return ctx.ItemSKUs
	case "title", "item_title":
		return ctx.ItemTitles
	}

	if ctx.Attributes != nil {
		if val, ok := ctx.Attributes[attribute]; ok {
			return val
		}
	}

	return nil
}

// applyOperatorMulti applies the operator across a multi-valued attribute.
// Negated operators require the negation to hold for every element.
func applyOperatorMulti(op ConditionOperator, attrValues []string, condValues []string) bool {
	switch op {
	case ConditionOperatorNotEquals, ConditionOperatorNotIn:
		for _, v := range attrValues {
			if !applyOperator(op, v, condValues) {
				return false
			}
		}
		return len(attrValues) > 0
	default:
		for _, v := range attrValues {
			if applyOperator(op, v, condValues) {
				return true
			}
		}
		return false
	}
}

// applyOperator applies the operator to compare the attribute value with the condition values
func applyOperator(op ConditionOperator, attrValue any, condValues []string) bool {
	switch op {
	case ConditionOperatorEquals:
		return operatorEquals(attrValue, condValues)
	case ConditionOperatorNotEquals:
		return !operatorEquals(attrValue, condValues)
	case ConditionOperatorIn:
		return operatorIn(attrValue, condValues)
	case ConditionOperatorNotIn:
		return !operatorIn(attrValue, condValues)
	case ConditionOperatorContains:
		return operatorContains(attrValue, condValues)
	case ConditionOperatorGreaterThan:
		return operatorGreaterThan(attrValue, condValues)
	case ConditionOperatorLessThan:
		return operatorLessThan(attrValue, condValues)
	default:
		return false
	}
}

// operatorEquals checks if the attribute value equals any of the condition values
func operatorEquals(attrValue any, condValues []string) bool {
	if attrValue == nil || len(condValues) == 0 {
		return false
	}

	attrStr := toString(attrValue)
	for _, condValue := range condValues {
		if strings.EqualFold(attrStr, condValue) {
			return true
		}
	}
	return false
}

// operatorIn checks if the attribute value is in the list of condition values.
// Case-insensitive comparison.
func operatorIn(attrValue any, condValues []string) bool {
	if attrValue == nil || len(condValues) == 0 {
		return false
	}

	attrStr := strings.ToLower(toString(attrValue))
	for _, condValue := range condValues {
		if strings.ToLower(condValue) == attrStr {
			return true
		}
	}
	return false
}

// operatorContains checks if the attribute value contains any of the condition values.
// Case-insensitive comparison.
func operatorContains(attrValue any, condValues []string) bool {
	if attrValue == nil || len(condValues) == 0 {
		return false
	}

	attrStr := strings.ToLower(toString(attrValue))
	for _, condValue := range condValues {
		if strings.Contains(attrStr, strings.ToLower(condValue)) {
			return true
		}
	}
	return false
}

// operatorGreaterThan checks if the attribute value is greater than the condition value.
// Numeric comparison when both sides parse as numbers, string comparison otherwise.
func operatorGreaterThan(attrValue any, condValues []string) bool {
	if attrValue == nil || len(condValues) == 0 {
		return false
	}

	if attrNum, ok := toFloat64(attrValue); ok {
		if condNum, err := strconv.ParseFloat(condValues[0], 64); err == nil {
			return attrNum > condNum
		}
	}

	return toString(attrValue) > condValues[0]
}

// operatorLessThan checks if the attribute value is less than the condition value.
// Numeric comparison when both sides parse as numbers, string comparison otherwise.
func operatorLessThan(attrValue any, condValues []string) bool {
	if attrValue == nil || len(condValues) == 0 {
		return false
	}

	if attrNum, ok := toFloat64(attrValue); ok {
		if condNum, err := strconv.ParseFloat(condValues[0], 64); err == nil {
			return attrNum < condNum
		}
	}

	return toString(attrValue) < condValues[0]
}

// toString converts any value to a string representation
func toString(value any) string {
	if value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toFloat64 attempts to convert any value to float64
func toFloat64(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}

	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
