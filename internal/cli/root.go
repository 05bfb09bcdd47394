package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/config"
)

var rootCmd = &cobra.Command{
	Use:   "assistroi",
	Short: "ROI simulator for support assistants",
	Long: `assistroi estimates the financial return of deploying a support assistant
that deflects routine inquiries away from human staff.

Evaluate a parameter set, find the break-even inquiry volume, explore how
analytics uplift changes savings, save scenarios and export reports.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Process-wide state, populated by setup before any command runs.
var (
	cfg      *config.Config
	defaults *config.Defaults
	catalog  *domain.IndustryCatalog
	logger   = slog.Default()
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	d, err := loaded.LoadDefaults()
	if err != nil {
		return err
	}

	cfg = loaded
	defaults = d
	catalog = domain.NewIndustryCatalog(d.Industries)
	logger = cfg.NewLogger()
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		"store", cfg.Store,
		"currency", defaults.Currency,
		"defaults_file", cfg.DefaultsFile,
		"otel", cfg.OTELEnabled,
	)
	return nil
}
