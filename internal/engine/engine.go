// Package engine orchestrates AI-assisted project evaluation: loading
// projects and their programs, requesting scores, and staging results for
// human promotion.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/ai"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
	"github.com/khadim210/WolumaProject-sub000/internal/workflow"
)

// EvaluationEngine coordinates storage, the scorer and the workflow rules.
type EvaluationEngine struct {
	storage service.Storage
	scorer  Scorer
	delay   time.Duration
}

// Config holds configuration options for the evaluation engine.
type Config struct {
	// Delay inserted between consecutive provider calls in bulk mode, to
	// stay under provider rate limits. Not needed for correctness.
	Delay time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Delay: time.Second}
}

// New creates a new evaluation engine with the given dependencies.
func New(storage service.Storage, scorer Scorer) *EvaluationEngine {
	return NewWithConfig(storage, scorer, DefaultConfig())
}

// NewWithConfig creates a new evaluation engine with custom configuration.
func NewWithConfig(storage service.Storage, scorer Scorer, config Config) *EvaluationEngine {
	return &EvaluationEngine{
		storage: storage,
		scorer:  scorer,
		delay:   config.Delay,
	}
}

// EvaluateProject runs a single AI evaluation pass and stages the result on
// the project. The project's status is never advanced: promotion stays an
// explicit manager action.
func (e *EvaluationEngine) EvaluateProject(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := e.storage.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	program, err := e.storage.GetProgram(ctx, project.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("failed to load program: %w", err)
	}

	opts := ai.Options{CustomPrompt: program.CustomAIPrompt}
	if programContext := e.buildContext(ctx, program); programContext != nil {
		opts.Context = programContext
	}

	assessment, err := e.scorer.EvaluateProject(ctx, project, program.EvaluationCriteria, opts)
	if err != nil {
		return nil, err
	}

	eval := workflow.Evaluation{
		Scores:   assessment.Scores,
		Comments: assessment.Comments,
		Decision: assessment.Recommendation,
	}
	if err := workflow.StageEvaluation(project, program, eval, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to stage evaluation: %w", err)
	}
	project.EvaluationNotes = assessment.Notes

	if err := e.storage.UpdateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	slog.Info("Project evaluation staged",
		"project_id", project.ID,
		"total_score", project.TotalEvaluationScore,
		"recommended_status", project.RecommendedStatus,
		"unmatched_criteria", len(assessment.Unmatched))

	return project, nil
}

// BulkEvaluate evaluates the given projects sequentially, pausing between
// provider calls. A failed project is logged and skipped; results already
// written for earlier projects are kept. The batch itself never errors on
// per-project failures.
func (e *EvaluationEngine) BulkEvaluate(ctx context.Context, projectIDs []string, onProgress ProgressFunc) (service.BulkResult, error) {
	result := service.BulkResult{}
	if len(projectIDs) == 0 {
		return result, nil
	}

	start := time.Now()
	slog.Info("Starting bulk evaluation", "projects", len(projectIDs))

	for i, id := range projectIDs {
		select {
		case <-ctx.Done():
			result.Duration = time.Since(start)
			return result, ctx.Err()
		default:
		}

		if onProgress != nil {
			onProgress(service.BulkProgress{
				Current:        i + 1,
				Total:          len(projectIDs),
				CurrentProject: id,
			})
		}

		project, err := e.EvaluateProject(ctx, id)
		if err != nil {
			slog.Error("Bulk evaluation: project failed, continuing",
				"project_id", id,
				"error", err)
			result.Failed = append(result.Failed, service.FailedEvaluation{
				ProjectID: id,
				Err:       err,
			})
		} else {
			result.Evaluated++
			slog.Info("Bulk evaluation: project staged",
				"project_id", project.ID,
				"total_score", project.TotalEvaluationScore)
		}

		// Pace provider calls; skip the pause after the last project.
		if e.delay > 0 && i < len(projectIDs)-1 {
			select {
			case <-ctx.Done():
				result.Duration = time.Since(start)
				return result, ctx.Err()
			case <-time.After(e.delay):
			}
		}
	}

	result.Duration = time.Since(start)
	slog.Info("Bulk evaluation complete",
		"evaluated", result.Evaluated,
		"failed", len(result.Failed),
		"duration", result.Duration)

	return result, nil
}

// buildContext loads the partner to assemble the evaluation-context block.
// Context is best-effort: a lookup failure only means a thinner prompt.
func (e *EvaluationEngine) buildContext(ctx context.Context, program *model.Program) *ai.ProgramContext {
	programContext := &ai.ProgramContext{
		ProgramName: program.Name,
		BudgetRange: fmt.Sprintf("up to %.0f %s", program.Budget, program.Currency),
	}

	partner, err := e.storage.GetPartner(ctx, program.PartnerID)
	if err != nil {
		slog.Warn("Failed to load partner for evaluation context", "error", err)
		return programContext
	}
	programContext.PartnerName = partner.Name
	return programContext
}
