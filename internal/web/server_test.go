package web

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/adapters/turso"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/config"
	"github.com/emiliopalmerini/assistroi/internal/migrate"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	_ "github.com/tursodatabase/go-libsql"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrate.RunAll(context.Background(), db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

type recordingRecorder struct {
	mu          sync.Mutex
	evaluations []*ports.Evaluation
}

func (r *recordingRecorder) RecordEvaluation(_ context.Context, ev *ports.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evaluations = append(r.evaluations, ev)
	return nil
}

func (r *recordingRecorder) Close(context.Context) error { return nil }

func (r *recordingRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.evaluations)
}

type testEnv struct {
	server   *Server
	recorder *recordingRecorder
}

func newTestEnv(t *testing.T, withStore bool) *testEnv {
	t.Helper()

	rec := &recordingRecorder{}
	opts := ServerOptions{
		Defaults: config.BuiltinDefaults("JPY"),
		Recorder: rec,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if withStore {
		opts.ScenarioRepo = turso.NewScenarioRepository(testDB(t))
	}

	s := NewServer(opts)
	s.now = func() time.Time { return time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC) }
	return &testEnv{server: s, recorder: rec}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func TestServerFieldsAreInterfaces(t *testing.T) {
	s := &Server{}
	var _ ports.ScenarioRepository = s.scenarioRepo //nolint:staticcheck
	var _ ports.EvaluationRecorder = s.recorder     //nolint:staticcheck
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("unexpected health response: %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected request ID header")
	}
}

func TestMetricsRouteOnlyWhenConfigured(t *testing.T) {
	env := newTestEnv(t, false)
	if w := env.do(t, http.MethodGet, "/metrics", nil); w.Code != http.StatusOK {
		t.Errorf("expected /metrics to be served, got %d", w.Code)
	}

	bare := NewServer(ServerOptions{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	w := httptest.NewRecorder()
	bare.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 without metrics handler, got %d", w.Code)
	}
}

func TestNewServer_NilDefaults(t *testing.T) {
	s := NewServer(ServerOptions{})
	if s.defaults == nil || s.catalog == nil {
		t.Fatal("expected builtin defaults and catalog")
	}
	if s.defaults.Currency != "JPY" {
		t.Errorf("expected JPY, got %s", s.defaults.Currency)
	}
}
