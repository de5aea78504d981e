package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

func partnersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Manage partner organizations",
	}
	cmd.AddCommand(partnersListCmd())
	cmd.AddCommand(partnersAddCmd())
	return cmd
}

func partnersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List partner organizations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			partners, err := store.ListPartners(ctx)
			if err != nil {
				return fmt.Errorf("failed to list partners: %w", err)
			}

			if len(partners) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No partners yet"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Partners"))
			for _, partner := range partners {
				fmt.Printf("%s  %s %s\n",
					cli.BoldStyle.Render(partner.Name),
					cli.SubtleStyle.Render(partner.ID),
					cli.SubtleStyle.Render(partner.ContactEmail))
			}
			return nil
		},
	}
}

func partnersAddCmd() *cobra.Command {
	var (
		email       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a partner organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			partner := &model.Partner{
				ID:           newID(),
				Name:         args[0],
				ContactEmail: email,
				Description:  description,
			}
			if err := store.CreatePartner(ctx, partner); err != nil {
				return fmt.Errorf("failed to create partner: %w", err)
			}

			fmt.Printf("%s Partner %s created (%s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(partner.Name), partner.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&description, "description", "", "partner description")
	return cmd
}
