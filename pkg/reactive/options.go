package reactive

import (
	"io"
	"log/slog"
	"time"
)

// Hooks observe the work done by bindings.
type Hooks struct {
	// OnRecompute runs after a binding stored a new value.
	OnRecompute func(name string, elapsed time.Duration)
}

type config struct {
	name   string
	logger *slog.Logger
	hooks  Hooks
}

// Option configures a binding.
type Option func(*config)

func defaultConfig() config {
	return config{
		name:   "binding",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithName labels the binding in logs and hooks.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger receiving a debug record per recomputation.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithHooks(h Hooks) Option {
	return func(c *config) {
		c.hooks = h
	}
}
