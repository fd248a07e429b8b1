package mmapio

import "log/slog"

type config struct {
	logger    *slog.Logger
	advice    AccessPattern
	hasAdvice bool
}

// Option configures a Source or Sink at construction time.
type Option func(*config)

// WithLogger enables debug logging of map, unmap and sync transitions.
// A nil logger keeps the mapping silent, which is the default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithAdvise applies the access-pattern hint after every successful map
// call. The hint is advisory: failures are logged, never returned.
func WithAdvise(pattern AccessPattern) Option {
	return func(c *config) {
		c.advice = pattern
		c.hasAdvice = true
	}
}
