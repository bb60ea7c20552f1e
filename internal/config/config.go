// Package config loads recipebox settings from a YAML file, a .env file and
// RECIPEBOX_* environment variables.
//
// Precedence, highest first: command-line flags (applied by the CLI),
// environment variables, the config file, DefaultConfig. A .env file only
// fills variables that are not already set in the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/store"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvDatabase = "RECIPEBOX_DB"
	EnvLocale   = "RECIPEBOX_LOCALE"
	EnvLogLevel = "RECIPEBOX_LOG_LEVEL"
	EnvDebounce = "RECIPEBOX_DEBOUNCE"
)

// Config holds all recipebox settings.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Query    QueryConfig    `yaml:"query"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path"`

	// MaxPageCount caps the database size in pages; 0 means unlimited.
	MaxPageCount int `yaml:"max_page_count"`
}

// QueryConfig sets the initial view and search behavior.
type QueryConfig struct {
	Locale   string `yaml:"locale"`
	SortBy   string `yaml:"sort_by"`
	Order    string `yaml:"order"`
	Debounce string `yaml:"debounce"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "recipebox.db",
		},
		Query: QueryConfig{
			Locale:   "en",
			SortBy:   string(query.SortByDate),
			Order:    string(query.Descending),
			Debounce: "300ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. An empty path or a missing file yields the
// defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			decoder := yaml.NewDecoder(bytes.NewReader(data))
			decoder.KnownFields(true)
			if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		c.Query.Locale = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvDebounce); v != "" {
		c.Query.Debounce = v
	}
}

// Validate checks that every setting parses.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Database.MaxPageCount < 0 {
		errs = append(errs, errors.New("database.max_page_count cannot be negative"))
	}
	if _, err := c.DefaultSpec(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.DebounceWindow(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want console or json", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultSpec returns the initial query: no filters, sorted as configured.
func (c *Config) DefaultSpec() (query.Spec, error) {
	key, err := query.ParseSortKey(c.Query.SortBy)
	if err != nil {
		return query.Spec{}, fmt.Errorf("query.sort_by: %w", err)
	}
	order, err := query.ParseSortOrder(c.Query.Order)
	if err != nil {
		return query.Spec{}, fmt.Errorf("query.order: %w", err)
	}
	locale, err := query.ParseLocale(c.Query.Locale)
	if err != nil {
		return query.Spec{}, fmt.Errorf("query.locale: %w", err)
	}
	return query.DefaultSpec().SortedBy(key, order).WithLocale(locale), nil
}

// DebounceWindow parses Query.Debounce.
func (c *Config) DebounceWindow() (time.Duration, error) {
	d, err := time.ParseDuration(c.Query.Debounce)
	if err != nil {
		return 0, fmt.Errorf("query.debounce: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("query.debounce: %s is negative", d)
	}
	return d, nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// StoreOptions returns the options for store.OpenWithOptions.
func (c *Config) StoreOptions() store.Options {
	return store.Options{MaxPageCount: c.Database.MaxPageCount}
}
