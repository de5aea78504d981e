package model

import (
	"errors"
	"fmt"
	"time"
)

// ConditionOperator is the comparison applied by an eligibility condition.
type ConditionOperator string

// Supported eligibility condition operators.
const (
	OpGreaterThan  ConditionOperator = ">"
	OpLessThan     ConditionOperator = "<"
	OpGreaterEqual ConditionOperator = ">="
	OpLessEqual    ConditionOperator = "<="
	OpEqual        ConditionOperator = "=="
	OpNotEqual     ConditionOperator = "!="
	OpBetween      ConditionOperator = "between"
	OpContains     ConditionOperator = "contains"
	OpRequired     ConditionOperator = "required"
)

// Valid reports whether the operator is one of the supported operators.
func (o ConditionOperator) Valid() bool {
	switch o {
	case OpGreaterThan, OpLessThan, OpGreaterEqual, OpLessEqual,
		OpEqual, OpNotEqual, OpBetween, OpContains, OpRequired:
		return true
	}
	return false
}

// Condition is the comparison attached to a field eligibility criterion.
// Value2 is only used by the between operator.
type Condition struct {
	Operator ConditionOperator `json:"operator"`
	Value    string            `json:"value"`
	Value2   string            `json:"value2,omitempty"`
}

// FieldEligibilityCriterion is a pre-screening rule bound to one form field.
// Criteria with IsEligibilityCriteria unset are kept for form rendering but
// ignored by the evaluator.
type FieldEligibilityCriterion struct {
	FieldName             string    `json:"fieldName"`
	Label                 string    `json:"label,omitempty"`
	Conditions            Condition `json:"conditions"`
	IsEligibilityCriteria bool      `json:"isEligibilityCriteria"`
}

// DisplayName returns the label used when reporting a failed criterion.
func (c FieldEligibilityCriterion) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.FieldName
}

// EvaluationCriterion is one weighted scoring axis of a program. Weight is
// the percentage contribution to the total; MaxScore is the raw score cap.
type EvaluationCriterion struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight"`
	MaxScore    float64 `json:"maxScore"`
}

// Program defines the funding rules a project is submitted against.
type Program struct {
	StartDate          time.Time
	EndDate            time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ID                 string
	PartnerID          string
	Name               string
	Description        string
	Currency           string
	CustomAIPrompt     string
	SelectionCriteria  []FieldEligibilityCriterion
	EvaluationCriteria []EvaluationCriterion
	Budget             float64
	IsActive           bool
}

// Program validation errors, surfaced at program-edit time.
var (
	ErrWeightSumExceeded  = errors.New("evaluation criteria weights sum above 100")
	ErrInvalidCriterion   = errors.New("invalid evaluation criterion")
	ErrDuplicateCriterion = errors.New("duplicate evaluation criterion id")
	ErrInvalidCondition   = errors.New("invalid eligibility condition")
)

// ValidateCriteria checks the program's evaluation and selection criteria.
// Weights must each be within [0,100] and sum to at most 100; criterion ids
// must be unique; eligibility operators must be known.
func (p *Program) ValidateCriteria() error {
	seen := make(map[string]struct{}, len(p.EvaluationCriteria))
	var weightSum float64
	for _, c := range p.EvaluationCriteria {
		if c.ID == "" || c.Name == "" {
			return fmt.Errorf("%w: id and name are required", ErrInvalidCriterion)
		}
		if c.Weight < 0 || c.Weight > 100 {
			return fmt.Errorf("%w: weight %.1f for %q out of range", ErrInvalidCriterion, c.Weight, c.ID)
		}
		if c.MaxScore < 0 {
			return fmt.Errorf("%w: negative max score for %q", ErrInvalidCriterion, c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateCriterion, c.ID)
		}
		seen[c.ID] = struct{}{}
		weightSum += c.Weight
	}
	if weightSum > 100 {
		return fmt.Errorf("%w: %.1f", ErrWeightSumExceeded, weightSum)
	}
	for _, sc := range p.SelectionCriteria {
		if sc.FieldName == "" {
			return fmt.Errorf("%w: missing field name", ErrInvalidCondition)
		}
		if !sc.Conditions.Operator.Valid() {
			return fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, sc.Conditions.Operator)
		}
	}
	return nil
}

// CriterionByID returns the evaluation criterion with the given id, or nil.
func (p *Program) CriterionByID(id string) *EvaluationCriterion {
	for i := range p.EvaluationCriteria {
		if p.EvaluationCriteria[i].ID == id {
			return &p.EvaluationCriteria[i]
		}
	}
	return nil
}
