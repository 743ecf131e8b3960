package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"user-admin-api/internal"
	"user-admin-api/internal/infrastructure/db/migrations"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(migrations.Up)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(migrations.Down)
	},
}

func runMigrations(step func(driver, databaseURL string) error) error {
	cfg, err := internal.LoadConfig(envFile)
	if err != nil {
		return err
	}
	url, err := cfg.MigrateURL()
	if err != nil {
		return err
	}
	if err = step(cfg.DB.Driver, url); err != nil {
		return fmt.Errorf("%s migrations: %w", cfg.DB.Driver, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
