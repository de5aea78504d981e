package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/common"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/scoring"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
)

// CommentPrefix marks machine-written evaluation comments so their
// provenance stays visible next to human ones.
const CommentPrefix = "[AI] "

// Scorer requests machine-suggested scores from a provider and maps them
// onto a program's evaluation criteria.
type Scorer struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// NewScorer creates a new provider-backed scorer.
func NewScorer(cfg Config, logger *slog.Logger) (*Scorer, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring client: %w", err)
	}
	return newScorerWithClient(client, cfg, logger), nil
}

// NewScorerWithClient wires a scorer around an existing client. Used by
// tests and by callers that construct providers themselves.
func NewScorerWithClient(client Client, cfg Config, logger *slog.Logger) *Scorer {
	return newScorerWithClient(client, cfg, logger)
}

func newScorerWithClient(client Client, cfg Config, logger *slog.Logger) *Scorer {
	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Scorer{
		client:      client,
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// ProgramContext is the optional evaluation-context block included in the
// prompt.
type ProgramContext struct {
	ProgramName string
	PartnerName string
	BudgetRange string
}

// Options adjusts a single evaluation request.
type Options struct {
	Context      *ProgramContext
	CustomPrompt string
}

// Assessment is the scorer's output, already keyed by criterion id and ready
// to stage onto a project.
type Assessment struct {
	Scores         map[string]float64
	Comments       map[string]string
	Unmatched      []string // criterion ids the provider did not score
	Notes          string
	Recommendation model.ProjectStatus
}

// EvaluateProject asks the provider to score one project against the given
// criteria. Provider scores are matched back to criterion ids by name;
// criteria the provider did not name default to 0 and are flagged in
// Unmatched.
func (s *Scorer) EvaluateProject(ctx context.Context, project *model.Project, criteria []model.EvaluationCriterion, opts Options) (Assessment, error) {
	if err := s.rateLimiter.wait(ctx); err != nil {
		return Assessment{}, fmt.Errorf("rate limit error: %w", err)
	}

	prompt := buildPrompt(project, criteria, opts)

	var response ScoreResponse
	err := common.WithRetry(ctx, func() error {
		s.logger.Debug("attempting AI project scoring", "project_id", project.ID)

		resp, scoreErr := s.client.ScoreProject(ctx, prompt)
		if scoreErr != nil {
			s.logger.Warn("AI scoring attempt failed",
				"error", scoreErr,
				"project_id", project.ID)
			return &common.RetryableError{Err: scoreErr, Retryable: true}
		}
		response = resp
		return nil
	}, s.retryOpts)

	if err != nil {
		return Assessment{}, fmt.Errorf("AI scoring failed for project %s: %w", project.ID, err)
	}

	assessment := mapResponse(response, criteria)

	s.logger.Info("project scored by AI",
		"project_id", project.ID,
		"title", project.Title,
		"recommendation", assessment.Recommendation,
		"unmatched_criteria", len(assessment.Unmatched))

	return assessment, nil
}

// Close stops background goroutines and cleans up resources.
func (s *Scorer) Close() error {
	if s.rateLimiter != nil {
		s.rateLimiter.Close()
	}
	return nil
}

// mapResponse converts provider-named scores into criterion-id keyed scores
// with synthesized comments.
func mapResponse(response ScoreResponse, criteria []model.EvaluationCriterion) Assessment {
	// Provider names are matched case-insensitively.
	byName := make(map[string]float64, len(response.Scores))
	for name, score := range response.Scores {
		byName[strings.ToLower(strings.TrimSpace(name))] = score
	}

	assessment := Assessment{
		Scores:   make(map[string]float64, len(criteria)),
		Comments: make(map[string]string, len(criteria)),
		Notes:    response.Notes,
	}

	for _, criterion := range criteria {
		score, found := byName[strings.ToLower(strings.TrimSpace(criterion.Name))]
		if !found {
			assessment.Scores[criterion.ID] = 0
			assessment.Unmatched = append(assessment.Unmatched, criterion.ID)
			assessment.Comments[criterion.ID] = CommentPrefix + "No score returned for this criterion"
			continue
		}

		// Clamp into the criterion's range before staging.
		if score < 0 {
			score = 0
		}
		if score > criterion.MaxScore {
			score = criterion.MaxScore
		}
		assessment.Scores[criterion.ID] = score
		assessment.Comments[criterion.ID] = CommentPrefix + qualitativeComment(score, criterion.MaxScore)
	}

	if rec := model.ProjectStatus(response.Recommendation); rec == model.StatusSelected ||
		rec == model.StatusPreSelected || rec == model.StatusRejected {
		assessment.Recommendation = rec
	} else {
		total := scoring.ComputeTotal(assessment.Scores, criteria)
		assessment.Recommendation = scoring.RecommendStatus(total)
	}

	return assessment
}

// qualitativeComment derives a short comment from the score percentage,
// reusing the display banding.
func qualitativeComment(score, maxScore float64) string {
	switch scoring.CriterionBand(score, maxScore) {
	case scoring.BandStrong:
		return fmt.Sprintf("Strong performance on this criterion (%.0f/%.0f)", score, maxScore)
	case scoring.BandMedium:
		return fmt.Sprintf("Adequate performance with room for improvement (%.0f/%.0f)", score, maxScore)
	case scoring.BandWeak:
		return fmt.Sprintf("Weak performance, significant gaps identified (%.0f/%.0f)", score, maxScore)
	default:
		return fmt.Sprintf("Very weak performance on this criterion (%.0f/%.0f)", score, maxScore)
	}
}

// buildPrompt assembles the scoring prompt from project summary fields, the
// evaluation criteria and an optional context block or custom override.
func buildPrompt(project *model.Project, criteria []model.EvaluationCriterion, opts Options) string {
	var b strings.Builder

	if opts.CustomPrompt != "" {
		b.WriteString(opts.CustomPrompt)
		b.WriteString("\n\n")
	} else {
		b.WriteString("Evaluate this project proposal against each evaluation criterion. " +
			"Score strictly within each criterion's maximum.\n\n")
	}

	if opts.Context != nil {
		b.WriteString("Program Context:\n")
		fmt.Fprintf(&b, "Program: %s\n", opts.Context.ProgramName)
		if opts.Context.PartnerName != "" {
			fmt.Fprintf(&b, "Partner: %s\n", opts.Context.PartnerName)
		}
		if opts.Context.BudgetRange != "" {
			fmt.Fprintf(&b, "Budget Range: %s\n", opts.Context.BudgetRange)
		}
		b.WriteString("\n")
	}

	b.WriteString("Project Details:\n")
	fmt.Fprintf(&b, "Title: %s\n", project.Title)
	fmt.Fprintf(&b, "Description: %s\n", project.Description)
	fmt.Fprintf(&b, "Budget: %.2f\n", project.Budget)
	if !project.SubmissionDate.IsZero() {
		fmt.Fprintf(&b, "Submitted: %s\n", project.SubmissionDate.Format("2006-01-02"))
	}
	if len(project.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(project.Tags, ", "))
	}

	b.WriteString("\nEvaluation Criteria:\n")
	for _, c := range criteria {
		fmt.Fprintf(&b, "- %s (max score %.0f, weight %.0f%%)", c.Name, c.MaxScore, c.Weight)
		if c.Description != "" {
			fmt.Fprintf(&b, ": %s", c.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Respond with ONLY a JSON object in this exact shape:
{
  "scores": {"<criterion name>": <number within its max score>, ...},
  "notes": "<2-3 sentence overall assessment>",
  "recommendation": "<selected|pre_selected|rejected>"
}
Score every listed criterion by its exact name.`)

	return b.String()
}
