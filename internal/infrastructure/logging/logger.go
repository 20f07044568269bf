package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/simplecontrol/hublink/internal/infrastructure/config"
)

// Logger is the service-wide structured logger.
//
// It embeds slog.Logger so call sites use the standard Info/Warn/Error
// methods; every entry carries the service name and version as default
// fields so hublink lines stay filterable when the host aggregates logs
// from several node servers.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Logger struct {
	*slog.Logger
}

// New creates a Logger from the logging section of config.yaml.
//
// Format selects the handler: "text" for development, anything else gets
// JSON. Output selects the stream: "stderr" or stdout. Level filters at
// the configured threshold, defaulting to info.
//
// Parameters:
//   - cfg: Logging configuration
//   - version: Build version stamped on every entry
//
// Returns:
//   - *Logger: Configured logger ready for use
func New(cfg config.LoggingConfig, version string) *Logger {
	handler := newHandler(cfg).WithAttrs([]slog.Attr{
		slog.String("service", "hublink"),
		slog.String("version", version),
	})
	return &Logger{Logger: slog.New(handler)}
}

// newHandler builds the slog handler for the configured format, output
// and level.
func newHandler(cfg config.LoggingConfig) slog.Handler {
	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Output) == "stderr" {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.ToLower(cfg.Format) == "text" {
		return slog.NewTextHandler(output, opts)
	}
	return slog.NewJSONHandler(output, opts)
}

// parseLevel converts a string log level to slog.Level.
//
// Supported levels: debug, info, warn, error
// Defaults to info if unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// With returns a new Logger carrying additional default attributes.
// Components derive their own child logger at startup rather than tagging
// every call.
//
// Parameters:
//   - args: Key-value pairs to add as default attributes
//
// Returns:
//   - *Logger: New logger with added attributes
//
// Example:
//
//	ctrlLogger := logger.With("component", "controller")
//	ctrlLogger.Info("discovery cycle complete") // Includes component=controller
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default creates the logger used before config.yaml has been loaded,
// when config loading itself may need to report a failure. JSON to
// stdout at info level, version "dev".
//
// Returns:
//   - *Logger: Default logger
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
