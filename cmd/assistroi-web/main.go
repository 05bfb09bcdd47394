package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/emiliopalmerini/assistroi/internal/cli"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/config"
	"github.com/emiliopalmerini/assistroi/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run serves the calculator from environment configuration only, for hosted
// deployments where no local data directory exists.
func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if cfg.Store == config.StoreTurso && cfg.DatabaseURL == "" {
		return fmt.Errorf("%s_DATABASE_URL is required", config.EnvPrefix)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	defaults, err := cfg.LoadDefaults()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	app, err := cli.NewAppContext(ctx, cfg, cli.AppOptions{Store: true, Prometheus: true})
	if err != nil {
		return err
	}
	defer func() { _ = app.Close(context.Background()) }()

	logger.Info("serving", "store", cfg.Store, "currency", defaults.Currency)

	server := web.NewServer(web.ServerOptions{
		Port:         cfg.Port,
		Defaults:     defaults,
		ScenarioRepo: app.ScenarioRepo,
		Recorder:     app.Recorder,
		Metrics:      app.Metrics.Handler(),
		Logger:       logger,
	})
	return server.Start(ctx)
}
