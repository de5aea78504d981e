package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect projects in the pipeline",
	}
	cmd.AddCommand(projectsListCmd())
	cmd.AddCommand(projectsShowCmd())
	return cmd
}

func projectsListCmd() *cobra.Command {
	var (
		status    string
		programID string
		submitter string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			filter := service.ProjectFilter{
				ProgramID:   programID,
				SubmitterID: submitter,
				Limit:       limit,
			}
			if status != "" {
				s := model.ProjectStatus(status)
				if !s.Valid() {
					return fmt.Errorf("unknown status %q", status)
				}
				filter.Status = &s
			}

			projects, err := store.ListProjects(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			if len(projects) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No projects match"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Projects"))
			for _, project := range projects {
				line := fmt.Sprintf("%s  %s  %s",
					cli.BoldStyle.Render(project.Title),
					cli.SubtleStyle.Render(project.ID),
					cli.RenderStatus(project.Status))
				if project.HasEvaluation() {
					line += "  score " + cli.RenderScore(project.TotalEvaluationScore)
				}
				if project.RecommendedStatus != "" && project.RecommendedStatus != project.Status {
					line += "  " + cli.SubtleStyle.Render("recommends "+string(project.RecommendedStatus))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&programID, "program", "", "filter by program id")
	cmd.Flags().StringVar(&submitter, "submitter", "", "filter by submitter id")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum projects to show")
	return cmd
}

func projectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project's evaluation state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			project, err := store.GetProject(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load project: %w", err)
			}
			program, err := store.GetProgram(ctx, project.ProgramID)
			if err != nil {
				return fmt.Errorf("failed to load program: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(project.Title))
			fmt.Printf("Status: %s\n", cli.RenderStatus(project.Status))
			if project.RecommendedStatus != "" {
				fmt.Printf("Recommended: %s\n", cli.RenderStatus(project.RecommendedStatus))
			}
			if !project.SubmissionDate.IsZero() {
				fmt.Printf("Submitted: %s\n", project.SubmissionDate.Format("2006-01-02"))
			}
			if project.EligibilityNotes != "" {
				fmt.Printf("Eligibility notes: %s\n", cli.WarningStyle.Render(project.EligibilityNotes))
			}

			if project.HasEvaluation() {
				fmt.Println(cli.SubtitleStyle.Render("Evaluation"))
				fmt.Printf("Total score: %s\n", cli.RenderScore(project.TotalEvaluationScore))
				for _, criterion := range program.EvaluationCriteria {
					score, scored := project.EvaluationScores[criterion.ID]
					if !scored {
						continue
					}
					fmt.Printf("  %s: %.0f/%.0f", criterion.Name, score, criterion.MaxScore)
					if comment := project.EvaluationComments[criterion.ID]; comment != "" {
						fmt.Printf("  %s", cli.SubtleStyle.Render(comment))
					}
					fmt.Println()
				}
				if project.EvaluationNotes != "" {
					fmt.Printf("Notes: %s\n", project.EvaluationNotes)
				}
			}
			return nil
		},
	}
}
