package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/todos/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, log, loggerService, err := setup()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if err := database.Migrate(cmd.Context(), &log, &cfg.Database); err != nil {
		log.Error().Err(err).Msg("failed to migrate database")
		return err
	}

	return nil
}
