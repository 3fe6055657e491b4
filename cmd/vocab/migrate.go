package main

import (
	"github.com/deppfellow/vocab/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, _, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			return database.Migrate(cmd.Context(), log, cfg)
		},
	}
}
