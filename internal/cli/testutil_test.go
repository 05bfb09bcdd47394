package cli

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/assistroi/internal/adapters/turso"
	"github.com/emiliopalmerini/assistroi/internal/infrastructure/config"
	"github.com/emiliopalmerini/assistroi/internal/migrate"
	"github.com/emiliopalmerini/assistroi/internal/ports"
)

// testDB creates a named in-memory database with all migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrate.RunAll(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

type fakeRecorder struct {
	mu          sync.Mutex
	evaluations []*ports.Evaluation
}

func (f *fakeRecorder) RecordEvaluation(_ context.Context, ev *ports.Evaluation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evaluations = append(f.evaluations, ev)
	return nil
}

func (f *fakeRecorder) Close(context.Context) error { return nil }

// useTestApp makes every command share an AppContext backed by an in-memory
// scenario store.
func useTestApp(t *testing.T) (*AppContext, *fakeRecorder) {
	t.Helper()

	rec := &fakeRecorder{}
	app := &AppContext{
		ScenarioRepo: turso.NewScenarioRepository(testDB(t)),
		Recorder:     rec,
	}

	orig := newAppContext
	newAppContext = func(context.Context, *config.Config, AppOptions) (*AppContext, error) {
		return app, nil
	}
	t.Cleanup(func() { newAppContext = orig })
	return app, rec
}

// resetFlags restores every flag to its default. Cobra keeps parsed values
// and Changed state between Execute calls on the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ASSISTROI_LOG_LEVEL", "error")

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
