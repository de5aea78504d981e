// Package ai implements the AI-assisted scoring adapter: provider clients,
// prompt assembly, and the mapping of machine-suggested scores back onto a
// program's evaluation criteria.
package ai

import (
	"context"
)

// Client defines the interface for scoring providers.
type Client interface {
	ScoreProject(ctx context.Context, prompt string) (ScoreResponse, error)
}

// ScoreResponse contains the provider's raw scoring result. Scores are keyed
// by criterion name as the provider echoed them; mapping back to criterion
// ids happens in the Scorer.
type ScoreResponse struct {
	Scores         map[string]float64
	Notes          string
	Recommendation string
}
