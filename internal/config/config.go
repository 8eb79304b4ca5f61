// Package config provides configuration management for IFPlan.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/ifplan/ifplan/internal/models"
)

// Config holds the complete application configuration.
type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`

	// Defaults pre-fills new simulations. Keys are the snake_case input names.
	Defaults models.Input `toml:"defaults"`
}

// DisplayConfig controls TUI and report appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	Locale      string      `toml:"locale"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemePasture ColorScheme = "pasture"
	ColorSchemeAmber   ColorScheme = "amber"
	ColorSchemeMono    ColorScheme = "mono"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level  LogLevel  `toml:"level"`
	File   string    `toml:"file"`
	Format LogFormat `toml:"format"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat selects the log encoding.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if err := c.Defaults.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("defaults: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	switch d.ColorScheme {
	case ColorSchemePasture, ColorSchemeAmber, ColorSchemeMono, "":
	default:
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if d.Locale != "" {
		if _, err := language.Parse(d.Locale); err != nil {
			errs = append(errs, fmt.Errorf("invalid locale %q: %w", d.Locale, err))
		}
	}

	if d.DateFormat != "" {
		sample := time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC)
		if sample.Format(d.DateFormat) == d.DateFormat {
			errs = append(errs, fmt.Errorf("date_format %q has no date fields", d.DateFormat))
		}
	}

	return errors.Join(errs...)
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	var errs []error

	switch l.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, "":
	default:
		errs = append(errs, fmt.Errorf("invalid log level: %s", l.Level))
	}

	switch l.Format {
	case LogFormatConsole, LogFormatJSON, "":
	default:
		errs = append(errs, fmt.Errorf("invalid log format: %s", l.Format))
	}

	return errors.Join(errs...)
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	return errors.Join(errs...)
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ColorScheme: ColorSchemePasture,
			Locale:      "pt-BR",
			DateFormat:  "02/01/2006",
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			File:   "",
			Format: LogFormatConsole,
		},
		Database: DatabaseConfig{
			Path:                "ifplan.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 30,
		},
		Defaults: models.DefaultInput(),
	}
}
