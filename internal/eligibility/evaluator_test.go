package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

func eligCriterion(field string, op model.ConditionOperator, value, value2 string) model.FieldEligibilityCriterion {
	return model.FieldEligibilityCriterion{
		FieldName:             field,
		IsEligibilityCriteria: true,
		Conditions: model.Condition{
			Operator: op,
			Value:    value,
			Value2:   value2,
		},
	}
}

func TestEvaluateBetween(t *testing.T) {
	criteria := []model.FieldEligibilityCriterion{
		eligCriterion("team_size", model.OpBetween, "10", "20"),
	}

	tests := []struct {
		form     map[string]model.FieldValue
		name     string
		eligible bool
	}{
		{
			name:     "inside range",
			form:     map[string]model.FieldValue{"team_size": model.NumberValue(15)},
			eligible: true,
		},
		{
			name:     "below range",
			form:     map[string]model.FieldValue{"team_size": model.NumberValue(5)},
			eligible: false,
		},
		{
			name:     "above range",
			form:     map[string]model.FieldValue{"team_size": model.NumberValue(25)},
			eligible: false,
		},
		{
			name:     "boundaries are inclusive",
			form:     map[string]model.FieldValue{"team_size": model.NumberValue(10)},
			eligible: true,
		},
		{
			name:     "absent value fails",
			form:     map[string]model.FieldValue{},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.form, criteria)
			assert.Equal(t, tt.eligible, result.Eligible)
			if !tt.eligible {
				assert.Contains(t, result.FailedCriteria, "team_size")
			}
		})
	}
}

func TestEvaluateNumericOperators(t *testing.T) {
	tests := []struct {
		name     string
		op       model.ConditionOperator
		value    string
		actual   model.FieldValue
		eligible bool
	}{
		{"greater than passes", model.OpGreaterThan, "100", model.NumberValue(150), true},
		{"greater than fails on equal", model.OpGreaterThan, "100", model.NumberValue(100), false},
		{"greater equal passes on equal", model.OpGreaterEqual, "100", model.NumberValue(100), true},
		{"less than passes", model.OpLessThan, "100", model.NumberValue(50), true},
		{"less equal fails above", model.OpLessEqual, "100", model.NumberValue(101), false},
		{"numeric text parses", model.OpGreaterThan, "100", model.TextValue("250"), true},
		{"unparsable text fails", model.OpGreaterThan, "100", model.TextValue("a lot"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := []model.FieldEligibilityCriterion{
				eligCriterion("budget", tt.op, tt.value, ""),
			}
			result := Evaluate(map[string]model.FieldValue{"budget": tt.actual}, criteria)
			assert.Equal(t, tt.eligible, result.Eligible)
		})
	}
}

func TestEvaluateUnparsableRuleValueFails(t *testing.T) {
	// A misconfigured rule value must fail the check, never silently pass.
	criteria := []model.FieldEligibilityCriterion{
		eligCriterion("budget", model.OpGreaterEqual, "not-a-number", ""),
	}
	result := Evaluate(map[string]model.FieldValue{"budget": model.NumberValue(500)}, criteria)
	assert.False(t, result.Eligible)
}

func TestEvaluateStringOperators(t *testing.T) {
	t.Run("equal compares as strings", func(t *testing.T) {
		criteria := []model.FieldEligibilityCriterion{
			eligCriterion("region", model.OpEqual, "west", ""),
		}
		result := Evaluate(map[string]model.FieldValue{"region": model.SelectValue("west")}, criteria)
		assert.True(t, result.Eligible)

		result = Evaluate(map[string]model.FieldValue{"region": model.SelectValue("east")}, criteria)
		assert.False(t, result.Eligible)
	})

	t.Run("not equal", func(t *testing.T) {
		criteria := []model.FieldEligibilityCriterion{
			eligCriterion("sector", model.OpNotEqual, "gambling", ""),
		}
		result := Evaluate(map[string]model.FieldValue{"sector": model.TextValue("health")}, criteria)
		assert.True(t, result.Eligible)
	})

	t.Run("contains is case-insensitive", func(t *testing.T) {
		criteria := []model.FieldEligibilityCriterion{
			eligCriterion("summary", model.OpContains, "renewable", ""),
		}
		result := Evaluate(map[string]model.FieldValue{
			"summary": model.TextareaValue("A Renewable energy initiative"),
		}, criteria)
		assert.True(t, result.Eligible)
	})
}

func TestEvaluateRequired(t *testing.T) {
	criteria := []model.FieldEligibilityCriterion{
		eligCriterion("business_plan", model.OpRequired, "", ""),
	}

	t.Run("present file passes", func(t *testing.T) {
		form := map[string]model.FieldValue{
			"business_plan": model.FileValue(model.FileReference{Name: "plan.pdf", Size: 2048}),
		}
		assert.True(t, Evaluate(form, criteria).Eligible)
	})

	t.Run("empty text fails", func(t *testing.T) {
		form := map[string]model.FieldValue{"business_plan": model.TextValue("  ")}
		assert.False(t, Evaluate(form, criteria).Eligible)
	})

	t.Run("missing fails", func(t *testing.T) {
		assert.False(t, Evaluate(map[string]model.FieldValue{}, criteria).Eligible)
	})
}

func TestEvaluateCollectsAllFailures(t *testing.T) {
	criteria := []model.FieldEligibilityCriterion{
		eligCriterion("budget", model.OpGreaterEqual, "1000", ""),
		eligCriterion("region", model.OpEqual, "west", ""),
		{
			FieldName:             "notes",
			Label:                 "Additional notes",
			IsEligibilityCriteria: false, // inactive, must be skipped
			Conditions:            model.Condition{Operator: model.OpRequired},
		},
	}

	form := map[string]model.FieldValue{
		"budget": model.NumberValue(500),
		"region": model.SelectValue("east"),
	}

	result := Evaluate(form, criteria)
	require.False(t, result.Eligible)
	assert.Equal(t, []string{"budget", "region"}, result.FailedCriteria)
	assert.Contains(t, result.Notes(), "budget")
}

func TestEvaluateNoCriteria(t *testing.T) {
	result := Evaluate(map[string]model.FieldValue{}, nil)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.FailedCriteria)
	assert.Equal(t, "All eligibility criteria satisfied", result.Notes())
}
