package jsmodules

import (
	"github.com/goliatone/go-jsmodules/pkg/activity"
	"github.com/google/uuid"
)

type bootstrapConfig struct {
	engine          Engine
	filter          FileFilter
	logger          BootstrapLogger
	activityHooks   activity.Hooks
	activityChannel string
	actorID         string
	newRunID        func() string
}

// Option configures a Bootstrapper.
type Option func(*bootstrapConfig)

// WithEngine replaces the default goja engine.
func WithEngine(engine Engine) Option {
	return func(cfg *bootstrapConfig) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithFilter restricts which scripts take part in bootstrap.
func WithFilter(filter FileFilter) Option {
	return func(cfg *bootstrapConfig) {
		cfg.filter = filter
	}
}

// WithLogger attaches a bootstrap logger. A nil logger silences logging.
func WithLogger(logger BootstrapLogger) Option {
	return func(cfg *bootstrapConfig) {
		if logger == nil {
			cfg.logger = noopBootstrapLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithActivityHooks attaches activity hooks. Hooks are cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := activity.CloneHooks(hooks)
	return func(cfg *bootstrapConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityChannel overrides the channel stamped on activity events.
func WithActivityChannel(channel string) Option {
	return func(cfg *bootstrapConfig) {
		cfg.activityChannel = channel
	}
}

// WithActivityActor tags activity events with the embedding host's identity.
func WithActivityActor(actorID string) Option {
	return func(cfg *bootstrapConfig) {
		cfg.actorID = actorID
	}
}

// WithRunIDGenerator replaces the UUID generator used for run IDs.
func WithRunIDGenerator(fn func() string) Option {
	return func(cfg *bootstrapConfig) {
		if fn != nil {
			cfg.newRunID = fn
		}
	}
}

func applyOptions(opts []Option) bootstrapConfig {
	cfg := bootstrapConfig{
		engine:   NewGojaEngine(),
		logger:   noopBootstrapLogger{},
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
