// Package eligibility implements pre-screening of submitted form data
// against a program's field-level eligibility rules.
package eligibility

import (
	"strconv"
	"strings"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// Result is the outcome of evaluating one form against a rule set. The
// submission is eligible only when no criterion failed.
type Result struct {
	FailedCriteria []string
	Eligible       bool
}

// Notes renders the failed criteria as a human-readable summary suitable for
// a project's eligibility notes.
func (r Result) Notes() string {
	if r.Eligible {
		return "All eligibility criteria satisfied"
	}
	return "Failed criteria: " + strings.Join(r.FailedCriteria, "; ")
}

// Evaluate applies every active eligibility criterion to the form data. It is
// a pure function: the caller persists the resulting status and notes.
//
// Missing or unparsable values fail the criterion; a check never silently
// passes.
func Evaluate(formData map[string]model.FieldValue, criteria []model.FieldEligibilityCriterion) Result {
	result := Result{Eligible: true}

	for _, criterion := range criteria {
		if !criterion.IsEligibilityCriteria {
			continue
		}
		if !check(formData, criterion) {
			result.Eligible = false
			result.FailedCriteria = append(result.FailedCriteria, criterion.DisplayName())
		}
	}

	return result
}

// check evaluates a single criterion against the form data.
func check(formData map[string]model.FieldValue, criterion model.FieldEligibilityCriterion) bool {
	value, present := formData[criterion.FieldName]
	cond := criterion.Conditions

	// Absent or empty values fail conservatively, whatever the operator.
	if !present || value.IsEmpty() {
		return false
	}

	switch cond.Operator {
	case model.OpRequired:
		return true

	case model.OpGreaterThan, model.OpLessThan, model.OpGreaterEqual, model.OpLessEqual:
		actual, ok := value.AsNumber()
		if !ok {
			return false
		}
		expected, err := parseFloat(cond.Value)
		if err != nil {
			return false
		}
		switch cond.Operator {
		case model.OpGreaterThan:
			return actual > expected
		case model.OpLessThan:
			return actual < expected
		case model.OpGreaterEqual:
			return actual >= expected
		default:
			return actual <= expected
		}

	case model.OpBetween:
		actual, ok := value.AsNumber()
		if !ok {
			return false
		}
		low, err := parseFloat(cond.Value)
		if err != nil {
			return false
		}
		high, err := parseFloat(cond.Value2)
		if err != nil {
			return false
		}
		return actual >= low && actual <= high

	case model.OpEqual:
		return value.AsString() == cond.Value

	case model.OpNotEqual:
		return value.AsString() != cond.Value

	case model.OpContains:
		return strings.Contains(
			strings.ToLower(value.AsString()),
			strings.ToLower(cond.Value))
	}

	// Unknown operators fail closed.
	return false
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
