package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fleet-admin-service/internal/config"
	"fleet-admin-service/internal/db"
	"fleet-admin-service/internal/logger"
	"fleet-admin-service/internal/migrate"
	"fleet-admin-service/internal/repository"
)

func main() {
	root := &cobra.Command{
		Use:   "fleetctl",
		Short: "Operational tooling for the fleet admin service",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine, env vars still apply.
			_ = godotenv.Load()
		},
	}

	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy documents from the legacy database into the current one",
	}

	run := func(runner func(*migrate.Migrator, context.Context) (migrate.Result, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			migrator, cleanup, err := buildMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := runner(migrator, cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("migrated=%d skipped=%d failed=%d\n", result.Migrated, result.Skipped, result.Failed)
			return nil
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "locations",
			Short: "Migrate location documents",
			RunE:  run((*migrate.Migrator).Locations),
		},
		&cobra.Command{
			Use:   "drivers",
			Short: "Migrate driver documents",
			RunE:  run((*migrate.Migrator).Drivers),
		},
		&cobra.Command{
			Use:   "trucks",
			Short: "Migrate truck documents",
			RunE:  run((*migrate.Migrator).Trucks),
		},
		&cobra.Command{
			Use:   "all",
			Short: "Migrate locations, drivers and trucks",
			RunE:  run((*migrate.Migrator).All),
		},
	)
	return cmd
}

func buildMigrator(ctx context.Context) (*migrate.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.LegacyMongo.URI == "" {
		return nil, nil, fmt.Errorf("LEGACY_MONGO_URI is required for migration")
	}

	log := logger.New(cfg.Environment)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	legacyClient, err := db.Connect(connectCtx, cfg.LegacyMongo.URI, log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect legacy database: %w", err)
	}
	currentClient, err := db.Connect(connectCtx, cfg.Mongo.URI, log)
	if err != nil {
		legacyClient.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	legacyDB := legacyClient.Database(cfg.LegacyMongo.Database)
	currentDB := currentClient.Database(cfg.Mongo.Database)

	migrator := migrate.NewMigrator(
		repository.NewLocationRepository(legacyDB),
		repository.NewDriverRepository(legacyDB),
		repository.NewTruckRepository(legacyDB),
		repository.NewLocationRepository(currentDB),
		repository.NewDriverRepository(currentDB),
		repository.NewTruckRepository(currentDB),
		log,
	)
	cleanup := func() {
		legacyClient.Disconnect(context.Background())
		currentClient.Disconnect(context.Background())
	}
	return migrator, cleanup, nil
}
