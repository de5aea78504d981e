// Package scoring implements the weighted-criteria scoring model that turns
// per-criterion raw scores into a normalized 0-100 total and a recommended
// decision.
package scoring

import (
	"math"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// Decision banding thresholds over the 0-100 total.
const (
	SelectedThreshold    = 80.0
	PreSelectedThreshold = 60.0
)

// ComputeTotal converts per-criterion scores and weights into a total on the
// 0-100 scale. Each criterion contributes (clamp(score,0,max)/max)*weight;
// a criterion with MaxScore 0 contributes nothing. Scores for unknown
// criterion ids are ignored.
func ComputeTotal(scores map[string]float64, criteria []model.EvaluationCriterion) float64 {
	var total float64
	for _, criterion := range criteria {
		score, ok := scores[criterion.ID]
		if !ok || criterion.MaxScore == 0 {
			continue
		}
		total += Contribution(score, criterion)
	}
	return total
}

// Contribution returns one criterion's weighted contribution to the total.
func Contribution(score float64, criterion model.EvaluationCriterion) float64 {
	if criterion.MaxScore == 0 {
		return 0
	}
	return clamp(score, 0, criterion.MaxScore) / criterion.MaxScore * criterion.Weight
}

// RoundTotal rounds a total to the nearest integer for storage and display.
func RoundTotal(total float64) float64 {
	return math.Round(total)
}

// RecommendStatus maps a total score onto the default decision banding.
// The result is a staged recommendation; a human decision always overrides.
func RecommendStatus(total float64) model.ProjectStatus {
	switch {
	case total >= SelectedThreshold:
		return model.StatusSelected
	case total >= PreSelectedThreshold:
		return model.StatusPreSelected
	default:
		return model.StatusRejected
	}
}

// Band labels a per-criterion score for display color-coding. It carries no
// decision weight.
type Band string

// Per-criterion quality bands.
const (
	BandStrong   Band = "strong"
	BandMedium   Band = "medium"
	BandWeak     Band = "weak"
	BandVeryWeak Band = "very weak"
)

// CriterionBand classifies score/maxScore as a percentage band. A zero
// MaxScore lands in the weakest band.
func CriterionBand(score, maxScore float64) Band {
	if maxScore == 0 {
		return BandVeryWeak
	}
	pct := clamp(score, 0, maxScore) / maxScore * 100
	switch {
	case pct >= 75:
		return BandStrong
	case pct >= 50:
		return BandMedium
	case pct >= 25:
		return BandWeak
	default:
		return BandVeryWeak
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
