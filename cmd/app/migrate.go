package main

import (
	"github.com/spf13/cobra"

	pg "shopping-list-bot/internal/infra/db/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if err := pg.Migrate(cmd.Context(), cfg.Database, logger); err != nil {
			return err
		}
		logger.Info().Msg("migrations applied")
		return nil
	},
}
