package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/engine"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
	"github.com/khadim210/WolumaProject-sub000/internal/workflow"
)

func evaluateCmd() *cobra.Command {
	var (
		asEmail string
		all     bool
		delay   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "evaluate [project-id...]",
		Short: "Run AI-assisted evaluation and stage the results",
		Long: `Scores projects against their program's evaluation criteria using the
configured AI provider. Results are staged as a recommendation only; the
pipeline status never changes until a manager promotes the project.

Pass one or more project ids, or --all to evaluate every project under
review. With multiple projects the batch runs sequentially and a failing
project is skipped without aborting the rest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 0 && !all {
				return fmt.Errorf("pass project ids or --all")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			actor, err := resolveActor(ctx, store, asEmail)
			if err != nil {
				return err
			}
			if actor.Role != model.RoleManager && actor.Role != model.RoleAdmin {
				return workflow.ErrNotManager
			}

			ids := args
			if all {
				status := model.StatusUnderReview
				projects, err := store.ListProjects(ctx, service.ProjectFilter{Status: &status})
				if err != nil {
					return fmt.Errorf("failed to list projects under review: %w", err)
				}
				for _, p := range projects {
					ids = append(ids, p.ID)
				}
			}
			if len(ids) == 0 {
				fmt.Println(cli.SubtleStyle.Render("Nothing to evaluate"))
				return nil
			}

			scorer, err := createScorer()
			if err != nil {
				return err
			}
			defer func() { _ = scorer.Close() }()

			eng := engine.NewWithConfig(store, scorer, engine.Config{Delay: delay})

			if len(ids) == 1 {
				project, err := eng.EvaluateProject(ctx, ids[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s %s scored %s, recommends %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.BoldStyle.Render(project.Title),
					cli.RenderScore(project.TotalEvaluationScore),
					cli.RenderStatus(project.RecommendedStatus))
				return nil
			}

			bar := progressbar.NewOptions(len(ids),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Evaluating projects...[reset]"))

			result, err := eng.BulkEvaluate(ctx, ids, func(p service.BulkProgress) {
				bar.Describe(fmt.Sprintf("[cyan][bold]Evaluating %s (%d/%d)[reset]",
					p.CurrentProject, p.Current, p.Total))
				_ = bar.Set(p.Current - 1)
			})
			_ = bar.Finish()
			fmt.Println()
			if err != nil {
				return err
			}

			fmt.Printf("%s %d evaluated in %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				result.Evaluated, result.Duration.Round(time.Second))
			for _, failure := range result.Failed {
				fmt.Printf("%s %s: %v\n",
					cli.ErrorStyle.Render(cli.ErrorIcon),
					failure.ProjectID, failure.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asEmail, "as", "", "acting manager's email")
	cmd.Flags().BoolVar(&all, "all", false, "evaluate every project under review")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "pause between provider calls in bulk mode")
	return cmd
}
