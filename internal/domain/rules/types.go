package rules

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ConditionOperator represents the comparison operator of a rule condition
type ConditionOperator string

const (
	// ConditionOperatorEquals matches exact equality (case-insensitive)
	ConditionOperatorEquals ConditionOperator = "equals"
	// ConditionOperatorNotEquals matches inequality
	ConditionOperatorNotEquals ConditionOperator = "not_equals"
	// ConditionOperatorIn matches membership in the value list
	ConditionOperatorIn ConditionOperator = "in"
	// ConditionOperatorNotIn matches absence from the value list
	ConditionOperatorNotIn ConditionOperator = "not_in"
	// ConditionOperatorContains matches substring presence
	ConditionOperatorContains ConditionOperator = "contains"
	// ConditionOperatorGreaterThan matches numeric or lexical greater-than
	ConditionOperatorGreaterThan ConditionOperator = "greater_than"
	// ConditionOperatorLessThan matches numeric or lexical less-than
	ConditionOperatorLessThan ConditionOperator = "less_than"
)

// AllConditionOperators returns all valid condition operators
func AllConditionOperators() []ConditionOperator {
	return []ConditionOperator{
		ConditionOperatorEquals,
		ConditionOperatorNotEquals,
		ConditionOperatorIn,
		ConditionOperatorNotIn,
		ConditionOperatorContains,
		ConditionOperatorGreaterThan,
		ConditionOperatorLessThan,
	}
}

// IsValid checks if the operator is valid
func (o ConditionOperator) IsValid() bool {
	switch o {
	case ConditionOperatorEquals, ConditionOperatorNotEquals,
		ConditionOperatorIn, ConditionOperatorNotIn,
		ConditionOperatorContains,
		ConditionOperatorGreaterThan, ConditionOperatorLessThan:
		return true
	default:
		return false
	}
}

// String returns the string representation of the operator
func (o ConditionOperator) String() string {
	return string(o)
}

// Scan implements the sql.Scanner interface
func (o *ConditionOperator) Scan(value any) error {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("rules: cannot scan type %T into ConditionOperator", value)
	}
	*o = ConditionOperator(strings.ToLower(s))
	if !o.IsValid() {
		return fmt.Errorf("rules: invalid condition operator: %s", s)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (o ConditionOperator) Value() (driver.Value, error) {
	return string(o), nil
}

// DecisionOutcome represents the result of evaluating the rule set for a draft
type DecisionOutcome string

const (
	// OutcomeAutoApproved means a matching rule auto-approved the draft
	OutcomeAutoApproved DecisionOutcome = "auto_approved"
	// OutcomeAutoRejected means a matching rule auto-rejected the draft
	OutcomeAutoRejected DecisionOutcome = "auto_rejected"
	// OutcomeManualReview means a rule matched but left the draft for review,
	// or no rule matched at all
	OutcomeManualReview DecisionOutcome = "manual_review"
)

// IsValid checks if the outcome is valid
func (o DecisionOutcome) IsValid() bool {
	switch o {
	case OutcomeAutoApproved, OutcomeAutoRejected, OutcomeManualReview:
		return true
	default:
		return false
	}
}

// String returns the string representation of the outcome
func (o DecisionOutcome) String() string {
	return string(o)
}

// Scan implements the sql.Scanner interface
func (o *DecisionOutcome) Scan(value any) error {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("rules: cannot scan type %T into DecisionOutcome", value)
	}
	*o = DecisionOutcome(strings.ToLower(s))
	if !o.IsValid() {
		return fmt.Errorf("rules: invalid decision outcome: %s", s)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (o DecisionOutcome) Value() (driver.Value, error) {
	return string(o), nil
}
