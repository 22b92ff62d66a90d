package main

import (
	"fmt"
	"log"

	"placement-pro/internal/app"
	"placement-pro/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply migrations and seed the catalog tables",
	Long:  "Runs against the database selected by CATALOG_SOURCE (postgres or sqlite).",
	RunE:  runMigrate,
}

var migrateSkipSeed bool

func init() {
	migrateCmd.Flags().BoolVar(&migrateSkipSeed, "skip-seed", false, "Only apply migrations")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadTooling()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("CATALOG_SOURCE=%s has no database to migrate", cfg.Catalog.Source)
	}
	defer db.Close()

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	if err := app.Migrate(ctx, db, cfg.Catalog.MigrationsDir, logger); err != nil {
		return err
	}
	if migrateSkipSeed {
		return nil
	}
	return app.Seed(ctx, db, logger)
}
