package stats

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

func projectWithStatus(id string, status model.ProjectStatus) model.Project {
	return model.Project{
		ID:     id,
		Title:  "Project " + id,
		Status: status,
	}
}

func TestAggregate_SuccessRate(t *testing.T) {
	projects := []model.Project{
		projectWithStatus("a", model.StatusFinanced),
		projectWithStatus("b", model.StatusMonitoring),
		projectWithStatus("c", model.StatusSubmitted),
		projectWithStatus("d", model.StatusRejected),
	}

	snapshot := Aggregate(projects, time.Now())
	assert.Equal(t, 50, snapshot.SuccessRate, "2 funded of 4 total")
	assert.Equal(t, 4, snapshot.Total)
}

func TestAggregate_ActiveCount(t *testing.T) {
	projects := []model.Project{
		projectWithStatus("a", model.StatusFormalization),
		projectWithStatus("b", model.StatusFinanced),
		projectWithStatus("c", model.StatusMonitoring),
		projectWithStatus("d", model.StatusDraft),
		projectWithStatus("e", model.StatusClosed),
	}

	snapshot := Aggregate(projects, time.Now())
	assert.Equal(t, 3, snapshot.Active)
	assert.Equal(t, 1, snapshot.StatusCounts[model.StatusFinanced])
}

func TestAggregate_Empty(t *testing.T) {
	snapshot := Aggregate(nil, time.Now())
	assert.Equal(t, 0, snapshot.Total)
	assert.Equal(t, 0, snapshot.SuccessRate)
	require.Len(t, snapshot.Risks, 1)
	assert.Equal(t, "No risk identified", snapshot.Risks[0].Title)
}

func TestAggregate_WorkloadRisk(t *testing.T) {
	var projects []model.Project
	for i := 0; i < 11; i++ {
		projects = append(projects, projectWithStatus(fmt.Sprintf("p%d", i), model.StatusMonitoring))
	}

	snapshot := Aggregate(projects, time.Now())
	require.NotEmpty(t, snapshot.Risks)
	assert.Equal(t, "High workload", snapshot.Risks[0].Title)
	assert.Equal(t, RiskMedium, snapshot.Risks[0].Level)
}

func TestAggregate_OverdueRisk(t *testing.T) {
	now := time.Now()

	overdue := projectWithStatus("old", model.StatusUnderReview)
	overdue.SubmissionDate = now.Add(-91 * 24 * time.Hour)

	fresh := projectWithStatus("new", model.StatusSubmitted)
	fresh.SubmissionDate = now.Add(-5 * 24 * time.Hour)

	// Old but already past review: not overdue.
	settled := projectWithStatus("done", model.StatusFinanced)
	settled.SubmissionDate = now.Add(-200 * 24 * time.Hour)

	snapshot := Aggregate([]model.Project{overdue, fresh, settled}, now)

	var found *Risk
	for i := range snapshot.Risks {
		if snapshot.Risks[i].Title == "Overdue reviews" {
			found = &snapshot.Risks[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, RiskHigh, found.Level)
	assert.Contains(t, found.Description, "1 projects")
}

func TestAggregate_WeakEvaluationRisk(t *testing.T) {
	weak := projectWithStatus("w", model.StatusUnderReview)
	weak.EvaluationScores = map[string]float64{"impact": 5}
	weak.TotalEvaluationScore = 42

	// Unevaluated zero score is not a weak evaluation.
	unevaluated := projectWithStatus("u", model.StatusSubmitted)

	snapshot := Aggregate([]model.Project{weak, unevaluated}, time.Now())

	var titles []string
	for _, r := range snapshot.Risks {
		titles = append(titles, r.Title)
	}
	assert.Contains(t, titles, "Weak evaluations")
	assert.NotContains(t, titles, "No risk identified")
}

func TestAggregate_RecentUpdates(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var projects []model.Project
	for i := 0; i < 12; i++ {
		p := projectWithStatus(fmt.Sprintf("p%d", i), model.StatusMonitoring)
		p.UpdatedAt = base.Add(time.Duration(i) * time.Hour)
		projects = append(projects, p)
	}

	snapshot := Aggregate(projects, time.Now())
	require.Len(t, snapshot.RecentUpdates, 10, "feed is capped at 10")
	assert.Equal(t, "p11", snapshot.RecentUpdates[0].ProjectID, "newest first")
	assert.Equal(t, "p2", snapshot.RecentUpdates[9].ProjectID)
}

func TestClassifyUpdate(t *testing.T) {
	tests := []struct {
		status model.ProjectStatus
		want   UpdateKind
	}{
		{model.StatusMonitoring, UpdateReport},
		{model.StatusSubmitted, UpdateMeeting},
		{model.StatusUnderReview, UpdateMeeting},
		{model.StatusPreSelected, UpdateMeeting},
		{model.StatusSelected, UpdateMilestone},
		{model.StatusFinanced, UpdateMilestone},
		{model.StatusClosed, UpdateMilestone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyUpdate(tt.status), "status %s", tt.status)
	}
}

func TestPoller_RefreshesAndStops(t *testing.T) {
	snapshots := make(chan Snapshot, 1024)
	fetch := func(_ context.Context) ([]model.Project, error) {
		return []model.Project{projectWithStatus("a", model.StatusFinanced)}, nil
	}

	poller := NewPoller(fetch, 10*time.Millisecond, func(s Snapshot) {
		snapshots <- s
	})
	poller.Start(context.Background())

	// Immediate refresh plus at least one timer-driven refresh.
	for i := 0; i < 2; i++ {
		select {
		case s := <-snapshots:
			assert.Equal(t, 100, s.SuccessRate)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for snapshot")
		}
	}

	poller.Stop()

	// After Stop returns no further refreshes arrive.
	drained := len(snapshots)
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, len(snapshots), drained)
}

func TestPoller_FetchErrorKeepsPolling(t *testing.T) {
	calls := make(chan struct{}, 1024)
	fetch := func(_ context.Context) ([]model.Project, error) {
		calls <- struct{}{}
		return nil, errors.New("storage offline")
	}

	poller := NewPoller(fetch, 10*time.Millisecond, func(Snapshot) {
		t.Error("snapshot delivered despite fetch error")
	})
	poller.Start(context.Background())
	defer poller.Stop()

	for i := 0; i < 2; i++ {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("poller stopped retrying after error")
		}
	}
}

func TestPoller_DefaultInterval(t *testing.T) {
	poller := NewPoller(func(context.Context) ([]model.Project, error) { return nil, nil }, 0, func(Snapshot) {})
	assert.Equal(t, DefaultInterval, poller.interval)
}

func TestPoller_StopWithoutStart(t *testing.T) {
	poller := NewPoller(func(context.Context) ([]model.Project, error) { return nil, nil }, time.Second, func(Snapshot) {})
	poller.Stop() // must not panic or block
}
