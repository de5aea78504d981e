package model

import "time"

// ProjectStatus tracks where a project sits in the funding pipeline.
type ProjectStatus string

// Project lifecycle states, in pipeline order.
const (
	StatusDraft         ProjectStatus = "draft"
	StatusSubmitted     ProjectStatus = "submitted"
	StatusEligible      ProjectStatus = "eligible"
	StatusIneligible    ProjectStatus = "ineligible"
	StatusUnderReview   ProjectStatus = "under_review"
	StatusPreSelected   ProjectStatus = "pre_selected"
	StatusSelected      ProjectStatus = "selected"
	StatusRejected      ProjectStatus = "rejected"
	StatusFormalization ProjectStatus = "formalization"
	StatusFinanced      ProjectStatus = "financed"
	StatusMonitoring    ProjectStatus = "monitoring"
	StatusClosed        ProjectStatus = "closed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusEligible, StatusIneligible,
		StatusUnderReview, StatusPreSelected, StatusSelected, StatusRejected,
		StatusFormalization, StatusFinanced, StatusMonitoring, StatusClosed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions leave this status.
func (s ProjectStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusClosed
}

// Project is the central mutable entity: one proposal submitted against a
// program, carrying its form data, evaluation results and pipeline status.
type Project struct {
	SubmissionDate       time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	ID                   string
	ProgramID            string
	SubmitterID          string
	Title                string
	Description          string
	Status               ProjectStatus
	RecommendedStatus    ProjectStatus // staged by evaluation, applied by explicit promotion
	EligibilityNotes     string
	EvaluationNotes      string // overall assessment captured during evaluation
	Tags                 []string
	FormData             map[string]FieldValue
	EvaluationScores     map[string]float64 // keyed by evaluation criterion id
	EvaluationComments   map[string]string  // keyed by evaluation criterion id
	TotalEvaluationScore float64
	Budget               float64
	ManuallySubmitted    bool
}

// HasEvaluation reports whether any evaluation scores have been staged.
func (p *Project) HasEvaluation() bool {
	return len(p.EvaluationScores) > 0
}
