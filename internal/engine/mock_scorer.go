package engine

import (
	"context"
	"sync"

	"github.com/khadim210/WolumaProject-sub000/internal/ai"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// MockScorer is a test implementation of the Scorer interface. It returns
// deterministic assessments and can be told to fail for specific projects.
type MockScorer struct {
	failures map[string]error
	scoreFor func(criterion model.EvaluationCriterion) float64
	calls    []string
	mu       sync.Mutex
}

// NewMockScorer creates a new mock scorer. By default every criterion is
// scored at half its maximum.
func NewMockScorer() *MockScorer {
	return &MockScorer{
		failures: make(map[string]error),
		scoreFor: func(c model.EvaluationCriterion) float64 { return c.MaxScore / 2 },
	}
}

// FailFor makes evaluation of the given project id return err.
func (m *MockScorer) FailFor(projectID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[projectID] = err
}

// ScoreWith overrides the per-criterion scoring function.
func (m *MockScorer) ScoreWith(fn func(criterion model.EvaluationCriterion) float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreFor = fn
}

// Calls returns the project ids evaluated so far, in order.
func (m *MockScorer) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// EvaluateProject implements the Scorer interface.
func (m *MockScorer) EvaluateProject(_ context.Context, project *model.Project, criteria []model.EvaluationCriterion, _ ai.Options) (ai.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, project.ID)

	if err, ok := m.failures[project.ID]; ok {
		return ai.Assessment{}, err
	}

	assessment := ai.Assessment{
		Scores:   make(map[string]float64, len(criteria)),
		Comments: make(map[string]string, len(criteria)),
		Notes:    "Deterministic mock assessment",
	}
	for _, c := range criteria {
		assessment.Scores[c.ID] = m.scoreFor(c)
		assessment.Comments[c.ID] = ai.CommentPrefix + "mock comment"
	}
	return assessment, nil
}
