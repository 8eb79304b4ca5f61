package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ifplan/ifplan/internal/models"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.Defaults != models.DefaultInput() {
		t.Error("default config should carry the default input set")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"bad color scheme", func(c *Config) { c.Display.ColorScheme = "neon" }, "color_scheme"},
		{"bad locale", func(c *Config) { c.Display.Locale = "??-!!" }, "locale"},
		{"date format without fields", func(c *Config) { c.Display.DateFormat = "dia" }, "date_format"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "log format"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "path is required"},
		{"negative retention", func(c *Config) { c.Database.BackupRetentionDays = -1 }, "backup_retention_days"},
		{"negative default", func(c *Config) { c.Defaults.Area = -3 }, "defaults"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateAggregates(t *testing.T) {
	cfg := Default()
	cfg.Display.ColorScheme = "neon"
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "display") || !strings.Contains(msg, "logging") {
		t.Errorf("expected both sections in %q", msg)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ifplan.toml")

	cfg := Default()
	cfg.Display.ColorScheme = ColorSchemeAmber
	cfg.Defaults.Area = 12.5
	cfg.Defaults.VarCOE = 1

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "temperatura_minima") {
		t.Errorf("defaults should be written with snake_case keys:\n%s", data)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Display.ColorScheme != ColorSchemeAmber {
		t.Errorf("color scheme = %q", loaded.Display.ColorScheme)
	}
	if loaded.Defaults != cfg.Defaults {
		t.Errorf("defaults mismatch:\n got %+v\nwant %+v", loaded.Defaults, cfg.Defaults)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifplan.toml")
	content := `
[defaults]
area = 10
var_preco = 1
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Defaults.Area != 10 || cfg.Defaults.VarPreco != 1 {
		t.Errorf("overrides not applied: %+v", cfg.Defaults)
	}
	if cfg.Defaults.ProducaoDeLeite != 18 {
		t.Errorf("missing key should keep default, got %v", cfg.Defaults.ProducaoDeLeite)
	}
	if cfg.Database.Path != "ifplan.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[display\ncolor_scheme = 1"},
		{"unknown key", "[defaults]\nleite = 3"},
		{"invalid value", "[defaults]\narea = -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ifplan.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_Explicit(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")
	_, _, err := Load(missing, true)

	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if lerr.Path != missing {
		t.Errorf("LoadError.Path = %q", lerr.Path)
	}
}

func TestLoad_CreatesDefaultInXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	cfg, path, err := Load("", true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(xdg, XDGSubdir, DefaultConfigFileName)
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if cfg.Display.ColorScheme != ColorSchemePasture {
		t.Errorf("unexpected scheme %q", cfg.Display.ColorScheme)
	}

	// Second load reads the file just written.
	_, path2, err := Load("", false)
	if err != nil || path2 != want {
		t.Errorf("reload = %q, %v", path2, err)
	}
}

func TestLoad_NoFileNoDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if _, _, err := Load("", false); err == nil {
		t.Error("expected error when no file exists and createDefault is false")
	}
}

func TestEnsureDataDir(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg := Default()
	got, err := EnsureDataDir(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(data, XDGSubdir, "ifplan.db"); got != want {
		t.Errorf("EnsureDataDir = %q, want %q", got, want)
	}

	cfg.Database.Path = ":memory:"
	if got, _ := EnsureDataDir(cfg); got != ":memory:" {
		t.Errorf("in-memory path rewritten to %q", got)
	}

	abs := filepath.Join(t.TempDir(), "x", "sims.db")
	cfg.Database.Path = abs
	if got, _ := EnsureDataDir(cfg); got != abs {
		t.Errorf("absolute path rewritten to %q", got)
	}
}

func TestBackupDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ifplan.db")
	dir, err := BackupDir(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != "backups" {
		t.Errorf("BackupDir = %q", dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("backup dir not created: %v", err)
	}
}

func TestInitLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "ifplan.log")
	t.Cleanup(CloseLogFile)

	if err := InitLogger(LoggingConfig{Level: LogLevelWarn, File: logPath, Format: LogFormatJSON}, false); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	if log.Logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", log.Logger.GetLevel())
	}

	log.Warn().Str("simulation_id", "abc").Msg("degenerate results")
	log.Info().Msg("filtered out")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"simulation_id":"abc"`) {
		t.Errorf("expected JSON record in log file, got %q", s)
	}
	if strings.Contains(s, "filtered out") {
		t.Error("info record should be filtered at warn level")
	}

	if err := InitLogger(LoggingConfig{Level: LogLevelError}, true); err != nil {
		t.Fatal(err)
	}
	if log.Logger.GetLevel() != zerolog.DebugLevel {
		t.Error("debug flag should override configured level")
	}
}
