package cli

import (
	"context"
	"fmt"
	"io"

	otelexp "github.com/emiliopalmerini/assistroi/internal/adapters/otel"
	"github.com/emiliopalmerini/assistroi/internal/adapters/prometheus"
	"github.com/emiliopalmerini/assistroi/internal/adapters/redis"
	"github.com/emiliopalmerini/assistroi/internal/adapters/turso"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/config"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/database"
	"github.com/emiliopalmerini/assistroi/internal/migrate"
	"github.com/emiliopalmerini/assistroi/internal/ports"
)

// AppOptions selects which dependencies a command needs.
type AppOptions struct {
	Store      bool
	Prometheus bool
}

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	ScenarioRepo ports.ScenarioRepository
	Recorder     ports.EvaluationRecorder
	Metrics      *prometheus.Collector

	closers []io.Closer
}

// newAppContext is swapped in tests to inject fakes.
var newAppContext = NewAppContext

// NewAppContext creates an AppContext with the requested dependencies.
// The OTEL exporter degrades to a no-op when it is disabled or unreachable.
func NewAppContext(ctx context.Context, c *config.Config, opts AppOptions) (*AppContext, error) {
	app := &AppContext{}

	if opts.Store {
		repo, closer, err := openScenarioRepo(ctx, c)
		if err != nil {
			return nil, err
		}
		app.ScenarioRepo = repo
		app.closers = append(app.closers, closer)
	}

	var recorder ports.EvaluationRecorder = otelexp.NewNoOpExporter()
	otelCfg := otelexp.Config{Enabled: c.OTELEnabled, Endpoint: c.OTELEndpoint, Insecure: c.OTELInsecure}
	if otelCfg.Active() {
		exp, err := otelexp.NewExporter(ctx, otelCfg)
		if err != nil {
			logger.Warn("OTEL exporter unavailable, continuing without it", "error", err)
		} else {
			recorder = exp
		}
	}

	if opts.Prometheus {
		app.Metrics = prometheus.NewCollector()
		recorder = ports.MultiRecorder{recorder, app.Metrics}
	}
	app.Recorder = recorder

	return app, nil
}

func openScenarioRepo(ctx context.Context, c *config.Config) (ports.ScenarioRepository, io.Closer, error) {
	switch c.Store {
	case config.StoreRedis:
		client, err := redis.NewClient(ctx, c.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewScenarioRepository(client, ""), client, nil
	default:
		url, err := c.ResolveDatabaseURL()
		if err != nil {
			return nil, nil, err
		}
		db, err := database.New(url, c.AuthToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migrate.RunAll(ctx, db.DB); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return turso.NewScenarioRepository(db.DB), db, nil
	}
}

// Close flushes the recorder and releases all resources held by the AppContext.
func (a *AppContext) Close(ctx context.Context) error {
	var firstErr error
	if a.Recorder != nil {
		firstErr = a.Recorder.Close(ctx)
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// record reports an evaluation; failures are logged, never returned.
func (a *AppContext) record(ctx context.Context, ev *ports.Evaluation) {
	if a.Recorder == nil {
		return
	}
	if err := a.Recorder.RecordEvaluation(ctx, ev); err != nil {
		logger.Warn("failed to record evaluation", "source", ev.Source, "error", err)
	}
}

// withApp builds an AppContext for the duration of fn.
func withApp(ctx context.Context, opts AppOptions, fn func(app *AppContext) error) error {
	app, err := newAppContext(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(context.Background()); err != nil {
			logger.Warn("failed to close resources", "error", err)
		}
	}()
	return fn(app)
}
