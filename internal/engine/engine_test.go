package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
	"github.com/khadim210/WolumaProject-sub000/internal/storage"
)

func setupTestEngine(t *testing.T) (*EvaluationEngine, *storage.SQLiteStorage, *MockScorer) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	require.NoError(t, store.CreatePartner(ctx, &model.Partner{
		ID:   "p1",
		Name: "Sahel Development Fund",
	}))
	require.NoError(t, store.CreateProgram(ctx, &model.Program{
		ID:        "prog1",
		PartnerID: "p1",
		Name:      "Rural Innovation 2026",
		Budget:    1000000,
		Currency:  "XOF",
		IsActive:  true,
		EvaluationCriteria: []model.EvaluationCriterion{
			{ID: "impact", Name: "Impact", Weight: 60, MaxScore: 20},
			{ID: "feasibility", Name: "Feasibility", Weight: 40, MaxScore: 10},
		},
	}))
	require.NoError(t, store.CreateUser(ctx, &model.User{
		ID: "u1", Name: "Submitter", Email: "sub@example.org",
		Role: model.RoleSubmitter, IsActive: true,
	}))

	scorer := NewMockScorer()
	eng := NewWithConfig(store, scorer, Config{Delay: 0})
	return eng, store, scorer
}

func createReviewProject(t *testing.T, store *storage.SQLiteStorage, id string) {
	t.Helper()
	require.NoError(t, store.CreateProject(context.Background(), &model.Project{
		ID:             id,
		ProgramID:      "prog1",
		SubmitterID:    "u1",
		Title:          "Project " + id,
		Status:         model.StatusUnderReview,
		SubmissionDate: time.Now(),
	}))
}

func TestEvaluateProject_StagesWithoutPromoting(t *testing.T) {
	eng, store, scorer := setupTestEngine(t)
	ctx := context.Background()
	createReviewProject(t, store, "proj1")

	// Full marks on both criteria: total 100, recommendation selected.
	scorer.ScoreWith(func(c model.EvaluationCriterion) float64 { return c.MaxScore })

	project, err := eng.EvaluateProject(ctx, "proj1")
	require.NoError(t, err)

	assert.Equal(t, model.StatusUnderReview, project.Status, "evaluation must not advance status")
	assert.Equal(t, model.StatusSelected, project.RecommendedStatus)
	assert.Equal(t, 100.0, project.TotalEvaluationScore)

	// Persisted, not just in memory.
	saved, err := store.GetProject(ctx, "proj1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, saved.TotalEvaluationScore)
	assert.Equal(t, model.StatusSelected, saved.RecommendedStatus)
	assert.Equal(t, "Deterministic mock assessment", saved.EvaluationNotes)
}

func TestEvaluateProject_HalfScores(t *testing.T) {
	eng, store, _ := setupTestEngine(t)
	createReviewProject(t, store, "proj1")

	// Mock default scores half of each max: 0.5*60 + 0.5*40 = 50.
	project, err := eng.EvaluateProject(context.Background(), "proj1")
	require.NoError(t, err)
	assert.Equal(t, 50.0, project.TotalEvaluationScore)
	assert.Equal(t, model.StatusRejected, project.RecommendedStatus)
}

func TestEvaluateProject_MissingProject(t *testing.T) {
	eng, _, _ := setupTestEngine(t)

	_, err := eng.EvaluateProject(context.Background(), "ghost")
	require.Error(t, err)
}

func TestEvaluateProject_ScorerFailureLeavesProjectUntouched(t *testing.T) {
	eng, store, scorer := setupTestEngine(t)
	ctx := context.Background()
	createReviewProject(t, store, "proj1")
	scorer.FailFor("proj1", errors.New("provider unavailable"))

	_, err := eng.EvaluateProject(ctx, "proj1")
	require.Error(t, err)

	saved, err := store.GetProject(ctx, "proj1")
	require.NoError(t, err)
	assert.False(t, saved.HasEvaluation())
	assert.Empty(t, saved.RecommendedStatus)
}

func TestBulkEvaluate_PartialFailure(t *testing.T) {
	eng, store, scorer := setupTestEngine(t)
	ctx := context.Background()

	createReviewProject(t, store, "proj1")
	createReviewProject(t, store, "proj2")
	createReviewProject(t, store, "proj3")
	scorer.FailFor("proj2", errors.New("malformed response"))

	result, err := eng.BulkEvaluate(ctx, []string{"proj1", "proj2", "proj3"}, nil)
	require.NoError(t, err, "per-project failures must not fail the batch")

	assert.Equal(t, 2, result.Evaluated)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "proj2", result.Failed[0].ProjectID)

	// Successful projects got their results; the failed one is untouched.
	for _, id := range []string{"proj1", "proj3"} {
		saved, err := store.GetProject(ctx, id)
		require.NoError(t, err)
		assert.True(t, saved.HasEvaluation(), "%s should be evaluated", id)
	}
	failed, err := store.GetProject(ctx, "proj2")
	require.NoError(t, err)
	assert.False(t, failed.HasEvaluation())
}

func TestBulkEvaluate_ProgressCallback(t *testing.T) {
	eng, store, _ := setupTestEngine(t)
	createReviewProject(t, store, "proj1")
	createReviewProject(t, store, "proj2")

	var updates []service.BulkProgress
	_, err := eng.BulkEvaluate(context.Background(), []string{"proj1", "proj2"}, func(p service.BulkProgress) {
		updates = append(updates, p)
	})
	require.NoError(t, err)

	require.Len(t, updates, 2)
	assert.Equal(t, service.BulkProgress{Current: 1, Total: 2, CurrentProject: "proj1"}, updates[0])
	assert.Equal(t, service.BulkProgress{Current: 2, Total: 2, CurrentProject: "proj2"}, updates[1])
}

func TestBulkEvaluate_Cancellation(t *testing.T) {
	eng, store, _ := setupTestEngine(t)
	createReviewProject(t, store, "proj1")
	createReviewProject(t, store, "proj2")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := eng.BulkEvaluate(ctx, []string{"proj1", "proj2"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Evaluated)
}

func TestBulkEvaluate_Empty(t *testing.T) {
	eng, _, _ := setupTestEngine(t)

	result, err := eng.BulkEvaluate(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Evaluated)
	assert.Empty(t, result.Failed)
}

func TestBulkEvaluate_SequentialOrder(t *testing.T) {
	eng, store, scorer := setupTestEngine(t)
	createReviewProject(t, store, "proj1")
	createReviewProject(t, store, "proj2")
	createReviewProject(t, store, "proj3")

	_, err := eng.BulkEvaluate(context.Background(), []string{"proj3", "proj1", "proj2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"proj3", "proj1", "proj2"}, scorer.Calls())
}
