package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"journey-quiz-service/internal/config"
	"journey-quiz-service/internal/infra/bunrepo"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return runMigrationsWithConfig(ctx, cfg)
}

func runMigrationsWithConfig(ctx context.Context, cfg config.Config) error {
	driver := bunrepo.Driver(cfg.Database.Driver)
	if driver != bunrepo.DriverPostgres && driver != bunrepo.DriverSQLite {
		return fmt.Errorf("migrations need a sql database, got driver %q", cfg.Database.Driver)
	}

	db, err := bunrepo.Open(ctx, driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	group, err := bunrepo.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if group.IsZero() {
		log.Printf("no new migrations")
		return nil
	}
	log.Printf("migrated to %s", group)
	return nil
}
