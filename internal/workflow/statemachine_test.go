package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

var (
	owner   = &model.User{ID: "user-1", Role: model.RoleSubmitter}
	other   = &model.User{ID: "user-2", Role: model.RoleSubmitter}
	manager = &model.User{ID: "mgr-1", Role: model.RoleManager}
)

func draftProject() *model.Project {
	return &model.Project{
		ID:          "proj-1",
		ProgramID:   "prog-1",
		SubmitterID: owner.ID,
		Title:       "Solar microgrid",
		Status:      model.StatusDraft,
	}
}

func testProgram() *model.Program {
	return &model.Program{
		ID: "prog-1",
		EvaluationCriteria: []model.EvaluationCriterion{
			{ID: "a", Name: "Impact", Weight: 60, MaxScore: 20},
			{ID: "b", Name: "Feasibility", Weight: 40, MaxScore: 10},
		},
	}
}

func TestSubmitProject(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("owner submits draft", func(t *testing.T) {
		p := draftProject()
		require.NoError(t, SubmitProject(p, owner, now))
		assert.Equal(t, model.StatusSubmitted, p.Status)
		assert.Equal(t, now, p.SubmissionDate)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		p := draftProject()
		err := SubmitProject(p, other, now)
		assert.ErrorIs(t, err, ErrNotOwner)
		assert.Equal(t, model.StatusDraft, p.Status)
	})

	t.Run("submit from under_review rejected", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusUnderReview
		err := SubmitProject(p, owner, now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, model.StatusUnderReview, p.Status)
		assert.True(t, p.SubmissionDate.IsZero())
	})
}

func TestApplyScreening(t *testing.T) {
	now := time.Now()

	t.Run("submitted to ineligible with notes", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusSubmitted
		require.NoError(t, ApplyScreening(p, false, "Failed criteria: budget", now))
		assert.Equal(t, model.StatusIneligible, p.Status)
		assert.Equal(t, "Failed criteria: budget", p.EligibilityNotes)
	})

	t.Run("screening a draft rejected", func(t *testing.T) {
		p := draftProject()
		err := ApplyScreening(p, true, "", now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestResetEligibility(t *testing.T) {
	now := time.Now()

	t.Run("ineligible resets to submitted", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusIneligible
		p.EligibilityNotes = "Failed criteria: budget"
		require.NoError(t, ResetEligibility(p, manager, now))
		assert.Equal(t, model.StatusSubmitted, p.Status)
		assert.Empty(t, p.EligibilityNotes)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusRejected
		err := ResetEligibility(p, manager, now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, model.StatusRejected, p.Status)
	})

	t.Run("submitter cannot reset", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusEligible
		assert.ErrorIs(t, ResetEligibility(p, owner, now), ErrNotManager)
	})
}

func TestStageEvaluation(t *testing.T) {
	now := time.Now()
	program := testProgram()

	t.Run("stage does not change status", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusUnderReview

		eval := Evaluation{
			Scores:   map[string]float64{"a": 10, "b": 10},
			Comments: map[string]string{"a": "solid impact case"},
		}
		require.NoError(t, StageEvaluation(p, program, eval, now))

		assert.Equal(t, model.StatusUnderReview, p.Status, "phase one must not advance the pipeline")
		assert.Equal(t, 70.0, p.TotalEvaluationScore)
		assert.Equal(t, model.StatusPreSelected, p.RecommendedStatus)
		assert.False(t, p.ManuallySubmitted)
	})

	t.Run("human decision overrides banding", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusUnderReview

		eval := Evaluation{
			Scores:   map[string]float64{"a": 10, "b": 10},
			Decision: model.StatusSelected,
		}
		require.NoError(t, StageEvaluation(p, program, eval, now))
		assert.Equal(t, model.StatusSelected, p.RecommendedStatus)
		assert.Equal(t, 70.0, p.TotalEvaluationScore)
	})

	t.Run("unknown criterion id rejected", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusUnderReview

		eval := Evaluation{Scores: map[string]float64{"zzz": 5}}
		err := StageEvaluation(p, program, eval, now)
		assert.ErrorIs(t, err, ErrUnknownCriterion)
		assert.Empty(t, p.EvaluationScores)
	})

	t.Run("decision outside evaluation outcomes rejected", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusUnderReview

		eval := Evaluation{
			Scores:   map[string]float64{"a": 10},
			Decision: model.StatusFinanced,
		}
		assert.ErrorIs(t, StageEvaluation(p, program, eval, now), ErrInvalidDecision)
	})

	t.Run("terminal project not evaluable", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusClosed
		err := StageEvaluation(p, program, Evaluation{}, now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestCommitRecommendation(t *testing.T) {
	now := time.Now()
	program := testProgram()

	stagedProject := func(t *testing.T) *model.Project {
		t.Helper()
		p := draftProject()
		p.Status = model.StatusUnderReview
		eval := Evaluation{Scores: map[string]float64{"a": 18, "b": 9}}
		require.NoError(t, StageEvaluation(p, program, eval, now))
		return p
	}

	t.Run("manager commits staged recommendation", func(t *testing.T) {
		p := stagedProject(t)
		require.Equal(t, model.StatusSelected, p.RecommendedStatus)

		require.NoError(t, CommitRecommendation(p, manager, now))
		assert.Equal(t, model.StatusSelected, p.Status)
		assert.True(t, p.ManuallySubmitted)
	})

	t.Run("nothing staged", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusUnderReview
		assert.ErrorIs(t, CommitRecommendation(p, manager, now), ErrNothingStaged)
	})

	t.Run("submitter cannot commit", func(t *testing.T) {
		p := stagedProject(t)
		assert.ErrorIs(t, CommitRecommendation(p, owner, now), ErrNotManager)
		assert.Equal(t, model.StatusUnderReview, p.Status)
	})

	t.Run("commit from wrong status rejected", func(t *testing.T) {
		p := stagedProject(t)
		p.Status = model.StatusSubmitted // staged, but review never started
		err := CommitRecommendation(p, manager, now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.Equal(t, model.StatusSubmitted, p.Status)
		assert.False(t, p.ManuallySubmitted)
	})
}

func TestAdvance(t *testing.T) {
	now := time.Now()

	t.Run("selected through closed", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusSelected

		for _, next := range []model.ProjectStatus{
			model.StatusFormalization,
			model.StatusFinanced,
			model.StatusMonitoring,
			model.StatusClosed,
		} {
			require.NoError(t, Advance(p, next, manager, now))
			assert.Equal(t, next, p.Status)
		}
	})

	t.Run("evaluation outcomes refused", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusUnderReview
		err := Advance(p, model.StatusSelected, manager, now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("no transitions out of closed", func(t *testing.T) {
		p := draftProject()
		p.Status = model.StatusClosed
		err := Advance(p, model.StatusMonitoring, manager, now)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(model.StatusDraft, model.StatusSubmitted))
	assert.True(t, CanTransition(model.StatusEligible, model.StatusSubmitted))
	assert.False(t, CanTransition(model.StatusDraft, model.StatusFinanced))
	assert.False(t, CanTransition(model.StatusRejected, model.StatusSubmitted))

	var terminalOuts int
	for _, to := range []model.ProjectStatus{
		model.StatusDraft, model.StatusSubmitted, model.StatusUnderReview,
	} {
		if CanTransition(model.StatusClosed, to) {
			terminalOuts++
		}
	}
	assert.Zero(t, terminalOuts)
}

func TestTransitionErrorUnwrap(t *testing.T) {
	err := &TransitionError{From: model.StatusDraft, To: model.StatusFinanced, Reason: "x"}
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Contains(t, err.Error(), "draft")
}
