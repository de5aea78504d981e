package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/workflow"
)

func promoteCmd() *cobra.Command {
	var (
		asEmail string
		to      string
	)

	cmd := &cobra.Command{
		Use:   "promote <project-id>",
		Short: "Apply a staged recommendation or advance the pipeline",
		Long: `Without --to, applies the project's staged evaluation recommendation:
the explicit human confirmation that moves an evaluated project to
pre_selected, selected or rejected.

With --to, performs a direct transition (under_review, formalization,
financed, monitoring, closed). Evaluation outcomes cannot be reached
this way; they always require a staged recommendation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			actor, err := resolveActor(ctx, store, asEmail)
			if err != nil {
				return err
			}
			project, err := store.GetProject(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load project: %w", err)
			}

			now := time.Now()
			switch {
			case to == "":
				err = workflow.CommitRecommendation(project, actor, now)
			case to == string(model.StatusUnderReview):
				err = workflow.StartReview(project, actor, now)
			default:
				target := model.ProjectStatus(to)
				if !target.Valid() {
					return fmt.Errorf("unknown status %q", to)
				}
				err = workflow.Advance(project, target, actor, now)
			}
			if err != nil {
				return err
			}

			if err := store.UpdateProject(ctx, project); err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}

			fmt.Printf("%s %s is now %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(project.Title),
				cli.RenderStatus(project.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&asEmail, "as", "", "acting manager's email")
	cmd.Flags().StringVar(&to, "to", "", "target status for a direct transition")
	return cmd
}
