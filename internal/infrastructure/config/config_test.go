package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/assistroi/internal/domain"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreTurso, cfg.Store)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "JPY", cfg.Currency)
	assert.False(t, cfg.OTELEnabled)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("ASSISTROI_STORE", "Redis")
	t.Setenv("ASSISTROI_PORT", "9090")
	t.Setenv("ASSISTROI_OTEL_ENABLED", "true")
	t.Setenv("ASSISTROI_OTEL_ENDPOINT", "collector:4317")
	t.Setenv("ASSISTROI_LOG_LEVEL", "debug")
	t.Setenv("ASSISTROI_DATABASE_URL", "libsql://roi.turso.io")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.OTELEnabled)
	assert.Equal(t, "collector:4317", cfg.OTELEndpoint)

	url, err := cfg.ResolveDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "libsql://roi.turso.io", url)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"ASSISTROI_STORE":      "postgres",
		"ASSISTROI_PORT":       "0",
		"ASSISTROI_LOG_LEVEL":  "loud",
		"ASSISTROI_LOG_FORMAT": "xml",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestResolveDatabaseURL_FallsBackToDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg := &Config{}
	url, err := cfg.ResolveDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "file:"+filepath.Join(dir, "assistroi", "assistroi.db"), url)
}

func TestLoadDefaults_Builtin(t *testing.T) {
	cfg := &Config{Currency: "USD"}
	d, err := cfg.LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "USD", d.Currency)
	assert.Equal(t, domain.DefaultParameters(), d.Parameters)
	assert.Len(t, d.Industries, len(domain.DefaultIndustries))
	assert.Equal(t, domain.SampleInsights(), d.InsightsOrSample())
}

func TestLoadDefaults_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	content := `
currency: EUR
parameters:
  inquiry_volume: 1200
  base_automation_rate: 0.6
history:
  storage_days: 30
  analysis_frequency: weekly
industries:
  - id: logistics
    name: Logistics
    automation_rate: 0.62
    avg_handle_minutes: 11
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := &Config{Currency: "JPY", DefaultsFile: path}
	d, err := cfg.LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "EUR", d.Currency)
	assert.Equal(t, 1200, d.Parameters.InquiryVolume)
	assert.Equal(t, 0.6, d.Parameters.BaseAutomationRate)
	// Untouched keys keep their built-in values.
	assert.Equal(t, 2500.0, d.Parameters.StaffHourlyCost)
	assert.Equal(t, 12, d.Parameters.AmortizationMonths)
	assert.Equal(t, domain.AnalysisWeekly, d.History.Frequency)
	require.Len(t, d.Industries, 1)
	assert.Equal(t, "logistics", d.Industries[0].ID)
}

func TestParseDefaults_KeepsBuiltinIndustries(t *testing.T) {
	d, err := ParseDefaults([]byte("currency: GBP\n"), BuiltinDefaults("JPY"))
	require.NoError(t, err)
	assert.Len(t, d.Industries, len(domain.DefaultIndustries))
}

func TestParseDefaults_RejectsInvalidParameters(t *testing.T) {
	_, err := ParseDefaults([]byte("parameters:\n  amortization_months: 0\n"), BuiltinDefaults("JPY"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameters))
}

func TestParseDefaults_RejectsBadIndustry(t *testing.T) {
	_, err := ParseDefaults([]byte("industries:\n  - id: x\n    automation_rate: 1.5\n    avg_handle_minutes: 5\n"), BuiltinDefaults("JPY"))
	assert.Error(t, err)
}

func TestParseDefaults_RejectsNonFiniteValues(t *testing.T) {
	for _, data := range []string{
		"parameters:\n  staff_hourly_cost: .nan\n",
		"parameters:\n  setup_cost: .inf\n",
		"industries:\n  - id: x\n    automation_rate: .nan\n    avg_handle_minutes: 5\n",
		"industries:\n  - id: x\n    automation_rate: 0.5\n    avg_handle_minutes: .inf\n",
	} {
		_, err := ParseDefaults([]byte(data), BuiltinDefaults("JPY"))
		assert.Error(t, err, "defaults %q should be rejected", data)
	}
}

func TestLoadDefaults_MissingFile(t *testing.T) {
	cfg := &Config{DefaultsFile: filepath.Join(t.TempDir(), "nope.yaml")}
	_, err := cfg.LoadDefaults()
	assert.Error(t, err)
}
