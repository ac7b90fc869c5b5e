package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"daily-report/internal/config"

	"gopkg.in/lumberjack.v2"
)

// Init installs the process-wide slog logger. The returned func flushes and
// closes the rotating file, if any.
func Init(cfg config.LogConfig) func() {
	level := parseLevel(cfg.Level)

	var writers []io.Writer
	var rotator *lumberjack.Logger
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			LocalTime:  true,
		}
		writers = append(writers, rotator)
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	h := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
	Info("logger initialized", "level", cfg.Level, "file", cfg.File)

	return func() {
		if rotator != nil {
			rotator.Close()
		}
	}
}

// Discard silences logging, used by tests.
func Discard() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func Info(msg string, args ...any)  { slog.Info(msg, args...) }
func Warn(msg string, args ...any)  { slog.Warn(msg, args...) }
func Error(msg string, args ...any) { slog.Error(msg, args...) }
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
