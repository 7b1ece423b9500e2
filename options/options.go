// Package options configures a Builder.
package options

import (
	"log/slog"

	"mockgraph/internal/introspect"
)

// Config holds configuration for building and verifying.
type Config struct {
	// Namespaces are searched, in order, for type names of hints after the
	// bare name and the default namespaces.
	Namespaces []string
	// Logger receives the decisions of the compiler and the builder at debug
	// level.
	Logger *slog.Logger
	// MaxSuggestions is the maximum number of "did you mean" alternatives
	// attached to lookup failures.
	MaxSuggestions int
}

// Option changes a Config.
type Option func(*Config)

// DefaultConfig returns the default configuration: no extra namespaces and
// a logger discarding everything.
func DefaultConfig() Config {
	return Config{
		Logger:         slog.New(slog.DiscardHandler),
		MaxSuggestions: introspect.MaxSuggestions,
	}
}

// Apply returns DefaultConfig changed by opts.
func Apply(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return cfg
}

// WithNamespaces appends namespaces to search for hint type names, e.g.
// "fixture" lets "<C>" resolve to fixture.C.
func WithNamespaces(namespaces ...string) Option {
	return func(c *Config) {
		c.Namespaces = append(c.Namespaces, namespaces...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMaxSuggestions sets the maximum number of suggestions, 0 disables them.
func WithMaxSuggestions(n int) Option {
	return func(c *Config) {
		c.MaxSuggestions = n
	}
}
