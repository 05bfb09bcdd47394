package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/infrastructure/config"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/database"
	"github.com/emiliopalmerini/assistroi/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run scenario database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).
Only applies to the turso store; the redis store has no schema.

Examples:
  assistroi migrate      # Run all pending migrations
  assistroi migrate 1    # Migrate to version 1
  assistroi migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
		target = v
	}

	if cfg.Store == config.StoreRedis {
		fmt.Fprintln(cmd.OutOrStdout(), "redis store has no migrations")
		return nil
	}

	url, err := cfg.ResolveDatabaseURL()
	if err != nil {
		return err
	}
	db, err := database.New(url, cfg.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	current, _, err := migrate.GetCurrentVersion(ctx, db.DB)
	if err != nil {
		// schema_migrations does not exist yet on a fresh database.
		current = 0
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current version: %d\n", current)

	version, err := migrate.To(ctx, db.DB, logger, target)
	if err != nil {
		return err
	}

	if version == current {
		fmt.Fprintln(cmd.OutOrStdout(), "No migrations to run")
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version %d\n", version)
	}
	return nil
}
