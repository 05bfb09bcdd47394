package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/config"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/shared/middleware"
)

// ServerOptions are the dependencies of the web server. ScenarioRepo and
// Metrics are optional.
type ServerOptions struct {
	Port         int
	Defaults     *config.Defaults
	ScenarioRepo ports.ScenarioRepository
	Recorder     ports.EvaluationRecorder
	Metrics      http.Handler
	Logger       *slog.Logger
}

type Server struct {
	router       *http.ServeMux
	handler      http.Handler
	port         int
	defaults     *config.Defaults
	catalog      *domain.IndustryCatalog
	scenarioRepo ports.ScenarioRepository
	recorder     ports.EvaluationRecorder
	metrics      http.Handler
	logger       *slog.Logger
	now          func() time.Time
}

func NewServer(opts ServerOptions) *Server {
	if opts.Defaults == nil {
		opts.Defaults = config.BuiltinDefaults("JPY")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		router:       http.NewServeMux(),
		port:         opts.Port,
		defaults:     opts.Defaults,
		catalog:      domain.NewIndustryCatalog(opts.Defaults.Industries),
		scenarioRepo: opts.ScenarioRepo,
		recorder:     opts.Recorder,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
		now:          time.Now,
	}
	s.setupRoutes()
	s.handler = middleware.Chain(s.router,
		middleware.RequestID,
		middleware.Recoverer(s.logger),
		middleware.Logger(s.logger),
	)
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.metrics != nil {
		s.router.Handle("GET /metrics", s.metrics)
	}

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleCalculator)
	s.router.HandleFunc("GET /report", s.handleReport)

	// Evaluation API
	s.router.HandleFunc("GET /api/results", s.handleAPIResults)
	s.router.HandleFunc("POST /api/results", s.handleAPIResultsJSON)
	s.router.HandleFunc("GET /api/breakeven", s.handleAPIBreakEven)
	s.router.HandleFunc("GET /api/sweep", s.handleAPISweep)
	s.router.HandleFunc("GET /api/presets", s.handleAPIPresets)
	s.router.HandleFunc("GET /api/defaults", s.handleAPIDefaults)

	// Chart data
	s.router.HandleFunc("GET /api/charts/costs", s.handleAPIChartCosts)
	s.router.HandleFunc("GET /api/charts/sweep", s.handleAPISweep)
	s.router.HandleFunc("GET /api/charts/categories", s.handleAPIChartCategories)

	// Export
	s.router.HandleFunc("GET /api/export", s.handleAPIExport)

	// Scenario management
	s.router.HandleFunc("GET /api/scenarios", s.handleAPIListScenarios)
	s.router.HandleFunc("POST /api/scenarios", s.handleAPISaveScenario)
	s.router.HandleFunc("GET /api/scenarios/{id}", s.handleAPIGetScenario)
	s.router.HandleFunc("DELETE /api/scenarios/{id}", s.handleAPIDeleteScenario)
}

// Handler returns the router wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", "url", fmt.Sprintf("http://localhost:%d", s.port))

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", "error", err)
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil // Graceful shutdown
	}
	return err
}
