package engine

import (
	"context"

	"github.com/khadim210/WolumaProject-sub000/internal/ai"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
)

// Scorer defines the contract for AI-assisted project scoring.
type Scorer interface {
	EvaluateProject(ctx context.Context, project *model.Project, criteria []model.EvaluationCriterion, opts ai.Options) (ai.Assessment, error)
}

// ProgressFunc receives bulk evaluation progress updates.
type ProgressFunc func(progress service.BulkProgress)
