// Package workflow governs the project status state machine: which lifecycle
// transitions are legal, who may trigger them, and the two-phase
// stage/commit protocol for evaluation decisions.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/scoring"
)

// Workflow errors.
var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotOwner          = errors.New("only the owning submitter may submit")
	ErrNotManager        = errors.New("manager role required")
	ErrNothingStaged     = errors.New("no recommended status staged")
	ErrUnknownCriterion  = errors.New("score references unknown criterion")
	ErrInvalidDecision   = errors.New("invalid decision status")
	ErrProjectNil        = errors.New("project cannot be nil")
)

// transitions lists every legal status advance. Anything absent is rejected
// before mutation. rejected and closed are terminal.
var transitions = map[model.ProjectStatus][]model.ProjectStatus{
	model.StatusDraft:     {model.StatusSubmitted},
	model.StatusSubmitted: {model.StatusEligible, model.StatusIneligible, model.StatusUnderReview},
	// Eligibility pre-screen states can move forward or reset back.
	model.StatusEligible:      {model.StatusUnderReview, model.StatusSubmitted},
	model.StatusIneligible:    {model.StatusSubmitted},
	model.StatusUnderReview:   {model.StatusPreSelected, model.StatusSelected, model.StatusRejected},
	model.StatusPreSelected:   {model.StatusSelected, model.StatusRejected, model.StatusFormalization},
	model.StatusSelected:      {model.StatusFormalization, model.StatusRejected},
	model.StatusFormalization: {model.StatusFinanced},
	model.StatusFinanced:      {model.StatusMonitoring},
	model.StatusMonitoring:    {model.StatusClosed},
	model.StatusRejected:      {},
	model.StatusClosed:        {},
}

// evaluationOutcomes are only reachable through CommitRecommendation.
var evaluationOutcomes = map[model.ProjectStatus]bool{
	model.StatusPreSelected: true,
	model.StatusSelected:    true,
	model.StatusRejected:    true,
}

// CanTransition reports whether from -> to is a legal advance.
func CanTransition(from, to model.ProjectStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionError describes a rejected status change.
type TransitionError struct {
	From   model.ProjectStatus
	To     model.ProjectStatus
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move project from %q to %q: %s", e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

func isManager(actor *model.User) bool {
	return actor != nil && (actor.Role == model.RoleManager || actor.Role == model.RoleAdmin)
}

// SubmitProject moves a draft into the pipeline. Only the owning submitter
// may submit, only while the project is exactly in draft; the submission
// date is stamped on success.
func SubmitProject(project *model.Project, actor *model.User, now time.Time) error {
	if project == nil {
		return ErrProjectNil
	}
	if actor == nil || actor.ID != project.SubmitterID {
		return ErrNotOwner
	}
	if project.Status != model.StatusDraft {
		return &TransitionError{
			From:   project.Status,
			To:     model.StatusSubmitted,
			Reason: "submission requires draft status",
		}
	}

	project.Status = model.StatusSubmitted
	project.SubmissionDate = now
	project.UpdatedAt = now
	return nil
}

// ApplyScreening records an eligibility pre-screen outcome, moving a
// submitted project to eligible or ineligible and persisting the notes.
func ApplyScreening(project *model.Project, eligible bool, notes string, now time.Time) error {
	if project == nil {
		return ErrProjectNil
	}

	to := model.StatusEligible
	if !eligible {
		to = model.StatusIneligible
	}
	if !CanTransition(project.Status, to) {
		return &TransitionError{From: project.Status, To: to, Reason: "screening requires submitted status"}
	}

	project.Status = to
	project.EligibilityNotes = notes
	project.UpdatedAt = now
	return nil
}

// ResetEligibility undoes a pre-screen outcome, returning the project to
// submitted and clearing the notes. Rejection, by contrast, is terminal.
func ResetEligibility(project *model.Project, actor *model.User, now time.Time) error {
	if project == nil {
		return ErrProjectNil
	}
	if !isManager(actor) {
		return ErrNotManager
	}
	if project.Status != model.StatusEligible && project.Status != model.StatusIneligible {
		return &TransitionError{
			From:   project.Status,
			To:     model.StatusSubmitted,
			Reason: "only eligibility states can be reset",
		}
	}

	project.Status = model.StatusSubmitted
	project.EligibilityNotes = ""
	project.UpdatedAt = now
	return nil
}

// StartReview moves a submitted or eligible project under review.
func StartReview(project *model.Project, actor *model.User, now time.Time) error {
	if project == nil {
		return ErrProjectNil
	}
	if !isManager(actor) {
		return ErrNotManager
	}
	if !CanTransition(project.Status, model.StatusUnderReview) {
		return &TransitionError{
			From:   project.Status,
			To:     model.StatusUnderReview,
			Reason: "review requires a submitted or eligible project",
		}
	}

	project.Status = model.StatusUnderReview
	project.UpdatedAt = now
	return nil
}

// Evaluation carries the inputs of an evaluation pass, manual or AI-driven.
// Decision, when set, overrides the default score banding.
type Evaluation struct {
	Scores   map[string]float64
	Comments map[string]string
	Decision model.ProjectStatus
}

// StageEvaluation is phase one of the two-phase evaluation protocol: it
// writes scores, comments, total and a recommended status onto the project
// without touching Status. An AI or bulk pass can therefore never advance
// the pipeline on its own; CommitRecommendation requires a human.
func StageEvaluation(project *model.Project, program *model.Program, eval Evaluation, now time.Time) error {
	if project == nil {
		return ErrProjectNil
	}
	if project.Status.IsTerminal() || project.Status == model.StatusDraft {
		return &TransitionError{
			From:   project.Status,
			To:     project.Status,
			Reason: "project is not evaluable in its current status",
		}
	}

	// Score keys must be a subset of the program's criterion ids.
	for id := range eval.Scores {
		if program.CriterionByID(id) == nil {
			return fmt.Errorf("%w: %q", ErrUnknownCriterion, id)
		}
	}

	recommended := eval.Decision
	if recommended == "" {
		total := scoring.ComputeTotal(eval.Scores, program.EvaluationCriteria)
		recommended = scoring.RecommendStatus(total)
	} else if !evaluationOutcomes[recommended] {
		return fmt.Errorf("%w: %q", ErrInvalidDecision, recommended)
	}

	project.EvaluationScores = eval.Scores
	project.EvaluationComments = eval.Comments
	project.TotalEvaluationScore = scoring.RoundTotal(
		scoring.ComputeTotal(eval.Scores, program.EvaluationCriteria))
	project.RecommendedStatus = recommended
	project.UpdatedAt = now
	return nil
}

// CommitRecommendation is phase two: an explicit manager action that copies
// the staged recommendation into Status and marks the project as manually
// submitted. The current status must legally allow the staged outcome.
func CommitRecommendation(project *model.Project, actor *model.User, now time.Time) error {
	if project == nil {
		return ErrProjectNil
	}
	if !isManager(actor) {
		return ErrNotManager
	}
	if project.RecommendedStatus == "" {
		return ErrNothingStaged
	}
	if !CanTransition(project.Status, project.RecommendedStatus) {
		return &TransitionError{
			From:   project.Status,
			To:     project.RecommendedStatus,
			Reason: "staged recommendation is not reachable from the current status",
		}
	}

	project.Status = project.RecommendedStatus
	project.ManuallySubmitted = true
	project.UpdatedAt = now
	return nil
}

// Advance performs a direct manager-driven transition for the back half of
// the pipeline (formalization, financed, monitoring, closed). Evaluation
// outcomes are refused here: they must go through stage and commit.
func Advance(project *model.Project, to model.ProjectStatus, actor *model.User, now time.Time) error {
	if project == nil {
		return ErrProjectNil
	}
	if !isManager(actor) {
		return ErrNotManager
	}
	if evaluationOutcomes[to] {
		return &TransitionError{
			From:   project.Status,
			To:     to,
			Reason: "evaluation outcomes require stage and commit",
		}
	}
	if !CanTransition(project.Status, to) {
		return &TransitionError{From: project.Status, To: to, Reason: "transition not allowed"}
	}

	project.Status = to
	project.UpdatedAt = now
	return nil
}
