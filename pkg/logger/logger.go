package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	charmLog "github.com/charmbracelet/log"

	"palettegen/pkg/config"
)

const (
	formatText = "text"
	formatJSON = "json"

	envFormat    = "PALETTEGEN_LOG_FORMAT"
	envLevel     = "PALETTEGEN_LOG_LEVEL"
	envAddSource = "PALETTEGEN_LOG_ADD_SOURCE"
)

// options is the logging configuration after environment overrides.
type options struct {
	format    string
	level     slog.Level
	addSource bool
}

// New builds the process logger. When cfg.File is set, records are appended
// to that file instead of stderr and the returned close func releases it.
func New(cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	path := strings.TrimSpace(cfg.File)
	if path == "" {
		log, err := newWithWriter(cfg, os.Stderr)
		return log, func() error { return nil }, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log, err := newWithWriter(cfg, file)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}

	return log, file.Close, nil
}

func newWithWriter(cfg config.LoggingConfig, writer io.Writer) (*slog.Logger, error) {
	opts, err := resolveOptions(cfg)
	if err != nil {
		return nil, err
	}

	if opts.format == formatJSON {
		return slog.New(redact(newJSONHandler(writer, opts.level, opts.addSource))), nil
	}

	pretty := charmLog.NewWithOptions(writer, charmLog.Options{
		Level:           charmLevel(opts.level),
		ReportTimestamp: true,
		ReportCaller:    opts.addSource,
		Formatter:       charmLog.TextFormatter,
	})
	return slog.New(redact(pretty)), nil
}

func resolveOptions(cfg config.LoggingConfig) (options, error) {
	format := overrideFromEnv(envFormat, cfg.Format, formatText)
	if format != formatText && format != formatJSON {
		return options{}, fmt.Errorf("unsupported log format %q", format)
	}

	level, err := parseLevel(overrideFromEnv(envLevel, cfg.Level, "info"))
	if err != nil {
		return options{}, err
	}

	addSource := cfg.AddSource
	if value := strings.TrimSpace(os.Getenv(envAddSource)); value != "" {
		addSource = config.ParseBool(value)
	}

	return options{format: format, level: level, addSource: addSource}, nil
}

// overrideFromEnv returns the lowercased env value when set, else the
// configured value, else fallback.
func overrideFromEnv(envName string, configured string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(envName)); value != "" {
		return strings.ToLower(value)
	}
	if value := strings.TrimSpace(configured); value != "" {
		return strings.ToLower(value)
	}

	return fallback
}

func parseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported log level %q", name)
	}
}

func charmLevel(level slog.Level) charmLog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmLog.DebugLevel
	case level <= slog.LevelInfo:
		return charmLog.InfoLevel
	case level <= slog.LevelWarn:
		return charmLog.WarnLevel
	default:
		return charmLog.ErrorLevel
	}
}
