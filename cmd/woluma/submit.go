package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/workflow"
)

func submitCmd() *cobra.Command {
	var asEmail string

	cmd := &cobra.Command{
		Use:   "submit <project-id>",
		Short: "Submit a draft project into the pipeline",
		Args:  cobra.ExactArgs(1),
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

			if err := workflow.SubmitProject(project, actor, time.Now()); err != nil {
				return err
			}
			if err := store.UpdateProject(ctx, project); err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}

			fmt.Printf("%s %s submitted on %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(project.Title),
				project.SubmissionDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&asEmail, "as", "", "acting user's email (must own the project)")
	return cmd
}
