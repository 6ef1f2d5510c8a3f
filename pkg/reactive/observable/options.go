package observable

import (
	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

// Option configures time-based sources and operators.
type Option func(*options)

type options struct {
	clock  clock.Clock
	logger zerolog.Logger
}

// WithClock sets the clock used for timers. Tests pass clock.NewMock().
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used by operators that report events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(opts []Option) options {
	o := options{
		clock:  clock.New(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
