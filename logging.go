package jsmodules

import (
	"context"
	"log/slog"
	"time"
)

const (
	// StageBootstrap marks the single summary event emitted when a run finishes.
	StageBootstrap = "bootstrap"
	// StageActivity marks an activity hook that failed to accept an event.
	// Name carries the event verb.
	StageActivity = "activity"
)

// BootstrapLogEvent describes one bootstrap step for logging. Stage is a Tier
// for per-unit events and StageBootstrap for the run summary.
type BootstrapLogEvent struct {
	RunID    string
	Stage    string
	Name     string
	Path     string
	Units    int
	Duration time.Duration
	Err      error
}

// BootstrapLogger records bootstrap events.
type BootstrapLogger interface {
	LogBootstrap(BootstrapLogEvent)
}

// BootstrapLoggerFunc adapts a function to BootstrapLogger.
type BootstrapLoggerFunc func(BootstrapLogEvent)

// LogBootstrap implements BootstrapLogger.
func (f BootstrapLoggerFunc) LogBootstrap(event BootstrapLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopBootstrapLogger struct{}

func (noopBootstrapLogger) LogBootstrap(BootstrapLogEvent) {}

type slogBootstrapLogger struct {
	logger *slog.Logger
}

// NewSlogLogger logs unit and success events at debug level and a failed run
// as a single error record.
func NewSlogLogger(logger *slog.Logger) BootstrapLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return slogBootstrapLogger{logger: logger}
}

func (l slogBootstrapLogger) LogBootstrap(event BootstrapLogEvent) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("stage", event.Stage),
		slog.Duration("duration", event.Duration),
	}
	if event.Name != "" {
		attrs = append(attrs, slog.String("name", event.Name))
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}

	if event.Stage == StageActivity {
		attrs = append(attrs, slog.Any("error", event.Err))
		l.logger.LogAttrs(context.Background(), slog.LevelWarn, "Activity hook failed", attrs...)
		return
	}
	if event.Stage != StageBootstrap {
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Internal module processed", attrs...)
		return
	}

	attrs = append(attrs, slog.Int("units", event.Units))
	if event.Err == nil {
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "Internal modules loaded", attrs...)
		return
	}
	attrs = append(attrs, slog.Any("error", event.Err))
	if cause := bootstrapCause(event.Err); cause != nil {
		attrs = append(attrs, slog.Any("cause", cause))
	}
	l.logger.LogAttrs(context.Background(), slog.LevelError, "Failed to load internal modules", attrs...)
}
