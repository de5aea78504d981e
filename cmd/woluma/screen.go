package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/eligibility"
	"github.com/khadim210/WolumaProject-sub000/internal/workflow"
)

func screenCmd() *cobra.Command {
	var (
		asEmail string
		reset   bool
	)

	cmd := &cobra.Command{
		Use:   "screen <project-id>",
		Short: "Run eligibility pre-screening on a submitted project",
		Long: `Evaluates the project's form data against the program's eligibility rules
and moves the project to eligible or ineligible. Failed rule labels are
persisted in the project's eligibility notes. Use --reset to undo a
previous screening outcome.`,
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

			if reset {
				if err := workflow.ResetEligibility(project, actor, time.Now()); err != nil {
					return err
				}
				if err := store.UpdateProject(ctx, project); err != nil {
					return fmt.Errorf("failed to save project: %w", err)
				}
				fmt.Printf("%s %s reset to %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.BoldStyle.Render(project.Title),
					cli.RenderStatus(project.Status))
				return nil
			}

			program, err := store.GetProgram(ctx, project.ProgramID)
			if err != nil {
				return fmt.Errorf("failed to load program: %w", err)
			}

			result := eligibility.Evaluate(project.FormData, program.SelectionCriteria)
			if err := workflow.ApplyScreening(project, result.Eligible, result.Notes(), time.Now()); err != nil {
				return err
			}
			if err := store.UpdateProject(ctx, project); err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}

			if result.Eligible {
				fmt.Printf("%s %s is %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.BoldStyle.Render(project.Title),
					cli.RenderStatus(project.Status))
				return nil
			}

			fmt.Printf("%s %s is %s\n",
				cli.ErrorStyle.Render(cli.ErrorIcon),
				cli.BoldStyle.Render(project.Title),
				cli.RenderStatus(project.Status))
			for _, label := range result.FailedCriteria {
				fmt.Printf("  %s %s\n", cli.WarningStyle.Render(cli.WarningIcon), label)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&asEmail, "as", "", "acting user's email")
	cmd.Flags().BoolVar(&reset, "reset", false, "undo a previous screening outcome")
	return cmd
}
