package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
)

func programsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "Inspect funding programs",
	}
	cmd.AddCommand(programsListCmd())
	cmd.AddCommand(programsShowCmd())
	return cmd
}

func programsListCmd() *cobra.Command {
	var partnerID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List funding programs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			programs, err := store.ListPrograms(ctx, partnerID)
			if err != nil {
				return fmt.Errorf("failed to list programs: %w", err)
			}

			if len(programs) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No programs yet"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Programs"))
			for _, program := range programs {
				state := cli.SuccessStyle.Render("active")
				if !program.IsActive {
					state = cli.SubtleStyle.Render("inactive")
				}
				fmt.Printf("%s  %s  %.0f %s  %s\n",
					cli.BoldStyle.Render(program.Name),
					cli.SubtleStyle.Render(program.ID),
					program.Budget, program.Currency,
					state)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&partnerID, "partner", "", "only programs of this partner")
	return cmd
}

func programsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <program-id>",
		Short: "Show a program's criteria",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			program, err := store.GetProgram(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load program: %w", err)
			}

			fmt.Println(cli.TitleStyle.Render(program.Name))
			fmt.Printf("Budget: %.0f %s\n", program.Budget, program.Currency)
			if program.CustomAIPrompt != "" {
				fmt.Printf("Custom AI prompt: %s\n", cli.SubtleStyle.Render(program.CustomAIPrompt))
			}

			fmt.Println(cli.SubtitleStyle.Render("Evaluation criteria"))
			for _, c := range program.EvaluationCriteria {
				fmt.Printf("  %s  weight %.0f%%, max %.0f\n",
					cli.BoldStyle.Render(c.Name), c.Weight, c.MaxScore)
			}

			if len(program.SelectionCriteria) > 0 {
				fmt.Println(cli.SubtitleStyle.Render("Eligibility rules"))
				for _, sc := range program.SelectionCriteria {
					rule := fmt.Sprintf("%s %s %s", sc.FieldName, sc.Conditions.Operator, sc.Conditions.Value)
					if sc.Conditions.Value2 != "" {
						rule += " and " + sc.Conditions.Value2
					}
					if !sc.IsEligibilityCriteria {
						rule += "  " + cli.SubtleStyle.Render("(informational)")
					}
					fmt.Printf("  %s\n", rule)
				}
			}
			return nil
		},
	}
}
