package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

func twoCriteria() []model.EvaluationCriterion {
	return []model.EvaluationCriterion{
		{ID: "a", Name: "Impact", Weight: 60, MaxScore: 20},
		{ID: "b", Name: "Feasibility", Weight: 40, MaxScore: 10},
	}
}

func TestComputeTotal(t *testing.T) {
	criteria := twoCriteria()

	t.Run("weighted sum", func(t *testing.T) {
		// (10/20)*60 + (10/10)*40 = 30 + 40 = 70
		total := ComputeTotal(map[string]float64{"a": 10, "b": 10}, criteria)
		assert.InDelta(t, 70, total, 0.001)
		assert.Equal(t, model.StatusPreSelected, RecommendStatus(total))
	})

	t.Run("all scores at max yield sum of weights", func(t *testing.T) {
		total := ComputeTotal(map[string]float64{"a": 20, "b": 10}, criteria)
		assert.InDelta(t, 100, total, 0.001)
	})

	t.Run("scores clamp to max", func(t *testing.T) {
		total := ComputeTotal(map[string]float64{"a": 999, "b": 10}, criteria)
		assert.InDelta(t, 100, total, 0.001)
	})

	t.Run("negative scores clamp to zero", func(t *testing.T) {
		total := ComputeTotal(map[string]float64{"a": -5, "b": 10}, criteria)
		assert.InDelta(t, 40, total, 0.001)
	})

	t.Run("missing score contributes nothing", func(t *testing.T) {
		total := ComputeTotal(map[string]float64{"b": 10}, criteria)
		assert.InDelta(t, 40, total, 0.001)
	})

	t.Run("unknown criterion id ignored", func(t *testing.T) {
		total := ComputeTotal(map[string]float64{"a": 10, "b": 10, "zzz": 50}, criteria)
		assert.InDelta(t, 70, total, 0.001)
	})

	t.Run("zero max score does not divide by zero", func(t *testing.T) {
		criteria := []model.EvaluationCriterion{
			{ID: "a", Weight: 50, MaxScore: 0},
			{ID: "b", Weight: 50, MaxScore: 10},
		}
		total := ComputeTotal(map[string]float64{"a": 5, "b": 5}, criteria)
		assert.InDelta(t, 25, total, 0.001)
	})
}

func TestComputeTotalMonotonic(t *testing.T) {
	criteria := twoCriteria()

	// Raising any single score while others are fixed never lowers the total.
	base := map[string]float64{"a": 4, "b": 3}
	prev := ComputeTotal(base, criteria)
	for score := 5.0; score <= 20; score++ {
		next := ComputeTotal(map[string]float64{"a": score, "b": 3}, criteria)
		assert.GreaterOrEqual(t, next, prev, "total decreased when score a rose to %.0f", score)
		prev = next
	}
}

func TestRoundTotal(t *testing.T) {
	assert.Equal(t, 67.0, RoundTotal(66.67))
	assert.Equal(t, 66.0, RoundTotal(66.4))
}

func TestRecommendStatus(t *testing.T) {
	tests := []struct {
		want  model.ProjectStatus
		total float64
	}{
		{model.StatusSelected, 100},
		{model.StatusSelected, 80},
		{model.StatusPreSelected, 79.9},
		{model.StatusPreSelected, 60},
		{model.StatusRejected, 59.9},
		{model.StatusRejected, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RecommendStatus(tt.total), "total %.1f", tt.total)
	}
}

func TestCriterionBand(t *testing.T) {
	tests := []struct {
		want     Band
		score    float64
		maxScore float64
	}{
		{BandStrong, 15, 20},   // 75%
		{BandStrong, 20, 20},   // 100%
		{BandMedium, 10, 20},   // 50%
		{BandMedium, 14.8, 20}, // 74%
		{BandWeak, 5, 20},      // 25%
		{BandVeryWeak, 4, 20},  // 20%
		{BandVeryWeak, 0, 20},
		{BandVeryWeak, 5, 0}, // zero max score
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CriterionBand(tt.score, tt.maxScore),
			"score %.1f / max %.1f", tt.score, tt.maxScore)
	}
}
