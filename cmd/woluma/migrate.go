package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khadim210/WolumaProject-sub000/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.SuccessStyle.Render(cli.SuccessIcon + " Database is up to date"))
			return nil
		},
	}
}
