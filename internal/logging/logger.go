package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"nacombine/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	OutputPaths []string
	// Color enables ANSI level labels on the console handler.
	Color       bool
	Development bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)

	writer, err := openWriters(opts.OutputPaths)
	if err != nil {
		return nil, err
	}

	addSource := opts.Development || level <= slog.LevelDebug

	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "json":
		return slog.New(newJSONHandler(writer, level, addSource)), nil
	case "", "console":
		return slog.New(newConsoleHandler(writer, level, addSource, opts.Color)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig creates a logger from the [logging] section. Output goes to
// stdout in the configured format; logging.file adds a JSON lines copy that
// keeps run_id on every record. The returned close func releases the log file
// and is safe to call when no file was configured.
func NewFromConfig(cfg *config.Config, color bool) (*slog.Logger, func() error, error) {
	noClose := func() error { return nil }
	if cfg == nil {
		logger, err := New(Options{Level: "info", Format: "console", Color: color})
		return logger, noClose, err
	}
	console, err := New(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Color:  color && cfg.Logging.Format == "console",
	})
	if err != nil {
		return nil, noClose, err
	}
	path := strings.TrimSpace(cfg.Logging.File)
	if path == "" {
		return console, noClose, nil
	}
	file, err := openLogFile(path)
	if err != nil {
		return nil, noClose, err
	}
	level := parseLevel(cfg.Logging.Level)
	logger := slog.New(newFanoutHandler(
		console.Handler(),
		newJSONHandler(file, level, level <= slog.LevelDebug),
	))
	return logger, file.Close, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func openWriters(paths []string) (io.Writer, error) {
	seen := map[string]struct{}{}
	var writers []io.Writer
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}

		switch trimmed {
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			file, err := openLogFile(trimmed)
			if err != nil {
				return nil, err
			}
			writers = append(writers, file)
		}
	}

	switch len(writers) {
	case 0:
		return os.Stdout, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
