package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
	"github.com/emiliopalmerini/assistroi/internal/util"
)

// EnvPrefix is prepended to every environment variable, e.g. ASSISTROI_PORT.
const EnvPrefix = "ASSISTROI"

// Store backends for saved scenarios.
const (
	StoreTurso = "turso"
	StoreRedis = "redis"
)

// Config is the process configuration read from the environment.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	AuthToken   string `envconfig:"AUTH_TOKEN"`

	Store     string `envconfig:"STORE" default:"turso"`
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	Port int `envconfig:"PORT" default:"8080"`

	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT"`
	OTELInsecure bool   `envconfig:"OTEL_INSECURE" default:"false"`

	DefaultsFile string `envconfig:"DEFAULTS_FILE"`
	Currency     string `envconfig:"CURRENCY" default:"JPY"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Defaults is the starting point for new analyses. It can be overridden with
// a YAML file named by ASSISTROI_DEFAULTS_FILE.
type Defaults struct {
	Currency   string                 `yaml:"currency"`
	Parameters roi.Parameters         `yaml:"parameters"`
	History    domain.HistorySettings `yaml:"history"`
	Industries []domain.Industry      `yaml:"industries"`
	Insights   *domain.Insights       `yaml:"insights"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv reads the configuration from the environment only.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Store = strings.ToLower(c.Store)
	if c.Store != StoreTurso && c.Store != StoreRedis {
		return fmt.Errorf("invalid %s_STORE %q: must be %q or %q", EnvPrefix, c.Store, StoreTurso, StoreRedis)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid %s_PORT %d", EnvPrefix, c.Port)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid %s_LOG_FORMAT %q: must be text or json", EnvPrefix, c.LogFormat)
	}
	return nil
}

// ResolveDatabaseURL returns the configured URL or a local file in the
// XDG data directory.
func (c *Config) ResolveDatabaseURL() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	return util.DefaultDatabaseURL()
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid %s_LOG_LEVEL %q: %w", EnvPrefix, c.LogLevel, err)
	}
	return level, nil
}

// NewLogger builds the process logger. Logs go to stderr so command output
// on stdout stays machine-readable.
func (c *Config) NewLogger() *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// BuiltinDefaults returns the defaults used when no file is configured.
func BuiltinDefaults(currency string) *Defaults {
	return &Defaults{
		Currency:   currency,
		Parameters: domain.DefaultParameters(),
		History:    domain.DefaultHistorySettings(),
		Industries: domain.DefaultIndustries,
	}
}

// LoadDefaults returns the built-in defaults, overridden by the YAML file at
// c.DefaultsFile when set. Keys missing from the file keep their built-in value.
func (c *Config) LoadDefaults() (*Defaults, error) {
	d := BuiltinDefaults(c.Currency)
	if c.DefaultsFile == "" {
		return d, nil
	}

	data, err := os.ReadFile(c.DefaultsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read defaults file: %w", err)
	}
	return ParseDefaults(data, d)
}

// ParseDefaults overlays YAML data onto base and validates the result.
func ParseDefaults(data []byte, base *Defaults) (*Defaults, error) {
	d := *base
	d.Industries = nil
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse defaults file: %w", err)
	}
	if len(d.Industries) == 0 {
		d.Industries = base.Industries
	}
	d.History.Frequency = domain.ParseAnalysisFrequency(string(d.History.Frequency))

	if err := domain.Validate(d.Parameters); err != nil {
		return nil, fmt.Errorf("invalid default parameters: %w", err)
	}
	for _, ind := range d.Industries {
		// Negated comparisons also reject NaN.
		if ind.ID == "" || !(ind.AutomationRate >= 0 && ind.AutomationRate < 1) || !(ind.AvgHandleMinutes > 0) || math.IsInf(ind.AvgHandleMinutes, 0) {
			return nil, fmt.Errorf("invalid industry preset %q", ind.ID)
		}
	}
	return &d, nil
}

// InsightsOrSample returns the configured insight data or the built-in sample.
func (d *Defaults) InsightsOrSample() domain.Insights {
	if d.Insights != nil {
		return *d.Insights
	}
	return domain.SampleInsights()
}
