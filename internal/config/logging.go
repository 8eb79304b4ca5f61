package config

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	logMu         sync.Mutex
	logFileHandle *os.File
)

// InitLogger configures the global zerolog logger from cfg.
//
// Console logs go to stderr in a human-readable format. When a log file is
// configured, records are appended there instead, as JSON unless the format
// is "console". debug forces the debug level regardless of cfg.Level.
func InitLogger(cfg LoggingConfig, debug bool) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(string(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}

	closeLogFileLocked()

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	if cfg.File != "" {
		path, err := EnsureLogDir(&Config{Logging: cfg})
		if err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFileHandle = f

		if cfg.Format == LogFormatConsole {
			w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339, NoColor: true}
		} else {
			w = f
		}
	} else if cfg.Format == LogFormatJSON {
		w = os.Stderr
	}

	log.Logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger

	return nil
}

// SetLogOutput replaces the logger's writer, keeping the current level.
// Used by the TUI so log lines never draw over the alternate screen.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	log.Logger = log.Logger.Output(w)
}

// CloseLogFile closes the log file opened by InitLogger, if any.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

func closeLogFileLocked() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil
	log.Logger = log.Logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
