package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(usersListCmd())
	cmd.AddCommand(usersAddCmd())
	return cmd
}

func usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			users, err := store.ListUsers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			if len(users) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No users yet"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render("Users"))
			for _, user := range users {
				state := cli.SuccessStyle.Render("active")
				if !user.IsActive {
					state = cli.SubtleStyle.Render("inactive")
				}
				fmt.Printf("%s  %s  %s  %s\n",
					cli.BoldStyle.Render(user.Name),
					user.Email,
					cli.InfoStyle.Render(string(user.Role)),
					state)
			}
			return nil
		},
	}
}

func usersAddCmd() *cobra.Command {
	var (
		role      string
		partnerID string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <email>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			user := &model.User{
				ID:        newID(),
				Name:      args[0],
				Email:     args[1],
				Role:      model.Role(role),
				PartnerID: partnerID,
				IsActive:  true,
			}
			if err := store.CreateUser(ctx, user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("%s User %s created with role %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(user.Email),
				cli.InfoStyle.Render(string(user.Role)))
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "submitter", "role (admin, manager, partner, submitter)")
	cmd.Flags().StringVar(&partnerID, "partner", "", "partner id for partner-scoped users")
	return cmd
}
