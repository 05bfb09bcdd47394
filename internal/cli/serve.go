package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/assistroi/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web calculator",
	Long: `Start the web calculator and JSON API.

The server also exposes Prometheus metrics on /metrics.

Examples:
  assistroi serve              # Start on the configured port (default 8080)
  assistroi serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from ASSISTROI_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\nShutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return withApp(ctx, AppOptions{Store: true, Prometheus: true}, func(app *AppContext) error {
		server := web.NewServer(web.ServerOptions{
			Port:         port,
			Defaults:     defaults,
			ScenarioRepo: app.ScenarioRepo,
			Recorder:     app.Recorder,
			Metrics:      app.Metrics.Handler(),
			Logger:       logger,
		})
		return server.Start(ctx)
	})
}
