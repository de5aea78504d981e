// Package stats derives dashboard views from the project collection: counts,
// success rate, risk flags and a recent-activity feed. Everything here is a
// pure derivation recomputed on each fetch; nothing feeds back into decisions.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// RiskLevel grades a risk flag.
type RiskLevel string

// Risk levels, lowest to highest.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk is a heuristic, non-authoritative flag shown on the dashboard.
type Risk struct {
	Level       RiskLevel
	Title       string
	Description string
}

// UpdateKind classifies a recent-activity entry.
type UpdateKind string

// Activity kinds.
const (
	UpdateMilestone UpdateKind = "milestone"
	UpdateMeeting   UpdateKind = "meeting"
	UpdateReport    UpdateKind = "report"
)

// Update is one entry of the recent-activity feed.
type Update struct {
	At        time.Time
	ProjectID string
	Title     string
	Status    model.ProjectStatus
	Kind      UpdateKind
}

// Snapshot is one aggregation pass over the project collection.
type Snapshot struct {
	GeneratedAt   time.Time
	StatusCounts  map[model.ProjectStatus]int
	RecentUpdates []Update
	Risks         []Risk
	Total         int
	Active        int
	SuccessRate   int
}

// Thresholds for the risk heuristics.
const (
	workloadThreshold  = 10
	overdueAge         = 90 * 24 * time.Hour
	weakScoreThreshold = 50
	recentFeedSize     = 10
)

// activeStatuses are the statuses counted as an active portfolio.
var activeStatuses = map[model.ProjectStatus]bool{
	model.StatusFormalization: true,
	model.StatusFinanced:      true,
	model.StatusMonitoring:    true,
}

// successStatuses are the statuses counted as funded outcomes.
var successStatuses = map[model.ProjectStatus]bool{
	model.StatusFinanced:   true,
	model.StatusMonitoring: true,
	model.StatusClosed:     true,
}

// Aggregate computes a snapshot over the given projects. now anchors the
// age-based heuristics.
func Aggregate(projects []model.Project, now time.Time) Snapshot {
	snapshot := Snapshot{
		GeneratedAt:  now,
		Total:        len(projects),
		StatusCounts: make(map[model.ProjectStatus]int),
	}

	succeeded := 0
	for i := range projects {
		p := &projects[i]
		snapshot.StatusCounts[p.Status]++
		if activeStatuses[p.Status] {
			snapshot.Active++
		}
		if successStatuses[p.Status] {
			succeeded++
		}
	}
	if snapshot.Total > 0 {
		snapshot.SuccessRate = int(math.Round(float64(succeeded) / float64(snapshot.Total) * 100))
	}

	snapshot.Risks = deriveRisks(projects, snapshot.Active, now)
	snapshot.RecentUpdates = recentUpdates(projects)

	return snapshot
}

func deriveRisks(projects []model.Project, active int, now time.Time) []Risk {
	var risks []Risk

	if active > workloadThreshold {
		risks = append(risks, Risk{
			Level:       RiskMedium,
			Title:       "High workload",
			Description: fmt.Sprintf("%d projects in active monitoring", active),
		})
	}

	overdue := 0
	for i := range projects {
		p := &projects[i]
		if p.Status != model.StatusSubmitted && p.Status != model.StatusUnderReview {
			continue
		}
		since := p.SubmissionDate
		if since.IsZero() {
			since = p.CreatedAt
		}
		if !since.IsZero() && now.Sub(since) > overdueAge {
			overdue++
		}
	}
	if overdue > 0 {
		risks = append(risks, Risk{
			Level:       RiskHigh,
			Title:       "Overdue reviews",
			Description: fmt.Sprintf("%d projects waiting over 90 days", overdue),
		})
	}

	weak := 0
	for i := range projects {
		p := &projects[i]
		if p.HasEvaluation() && p.TotalEvaluationScore < weakScoreThreshold {
			weak++
		}
	}
	if weak > 0 {
		risks = append(risks, Risk{
			Level:       RiskLow,
			Title:       "Weak evaluations",
			Description: fmt.Sprintf("%d projects scored below %d", weak, weakScoreThreshold),
		})
	}

	if len(risks) == 0 {
		risks = append(risks, Risk{
			Level:       RiskLow,
			Title:       "No risk identified",
			Description: "Portfolio within normal parameters",
		})
	}
	return risks
}

// recentUpdates returns the last entries by update time, newest first.
func recentUpdates(projects []model.Project) []Update {
	sorted := make([]model.Project, len(projects))
	copy(sorted, projects)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > recentFeedSize {
		sorted = sorted[:recentFeedSize]
	}

	updates := make([]Update, 0, len(sorted))
	for i := range sorted {
		p := &sorted[i]
		updates = append(updates, Update{
			At:        p.UpdatedAt,
			ProjectID: p.ID,
			Title:     p.Title,
			Status:    p.Status,
			Kind:      classifyUpdate(p.Status),
		})
	}
	return updates
}

// classifyUpdate maps a project's status onto an activity kind: monitoring
// activity reads as reports, pipeline review activity as meetings, and
// status advancement as milestones.
func classifyUpdate(status model.ProjectStatus) UpdateKind {
	switch status {
	case model.StatusMonitoring:
		return UpdateReport
	case model.StatusSubmitted, model.StatusUnderReview, model.StatusPreSelected:
		return UpdateMeeting
	default:
		return UpdateMilestone
	}
}
