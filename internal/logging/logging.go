// Package logging sets up structured logging to a rotating file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/lumberjack.v2"

	"github.com/diogo/pawsitive/internal/config"
)

// Init installs a JSON slog logger writing to the rotating file at path and
// makes it the default. The terminal belongs to the TUI, so nothing is written
// to stdout. The returned closer flushes and closes the log file.
func Init(cfg config.LogConfig, path string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}

	logger := New(w, cfg.Level)
	slog.SetDefault(logger)
	logger.Info("logger initialized", "level", ParseLevel(cfg.Level).String(), "file", path)
	return logger, w, nil
}

// New builds a JSON logger over w at the given level
func New(w io.Writer, level string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(h).With("app", "pawsitive")
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
