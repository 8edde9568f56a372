package trafficlight

import (
	"math/rand/v2"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/anggasct/trafficlight/pkg/lifecycle"
)

const (
	// DefaultMinInterval is the shortest time a phase is held
	DefaultMinInterval = 4 * time.Second
	// DefaultMaxInterval is the longest time a phase is held
	DefaultMaxInterval = 6 * time.Second
	// DefaultPollInterval is how often the cycling loop checks the elapsed time
	DefaultPollInterval = time.Millisecond
)

// Options configures a TrafficLight
type Options struct {
	// MinInterval and MaxInterval bound the randomly drawn phase duration
	MinInterval time.Duration
	MaxInterval time.Duration

	// PollInterval is the sleep between two elapsed-time checks
	PollInterval time.Duration

	// ResampleEachCycle draws a fresh interval after every toggle instead of
	// once when the loop starts.
	ResampleEachCycle bool

	Clock  clock.Clock
	Rand   *rand.Rand
	Logger zerolog.Logger

	// Runner spawns the cycling loop. When nil the light owns a private
	// lifecycle.Group that Stop shuts down.
	Runner lifecycle.Runner

	Observers []Observer
}

// Option mutates Options
type Option func(*Options)

// DefaultOptions returns the options used when New is called without any
func DefaultOptions() Options {
	return Options{
		MinInterval:  DefaultMinInterval,
		MaxInterval:  DefaultMaxInterval,
		PollInterval: DefaultPollInterval,
		Clock:        clock.New(),
		Logger:       zerolog.Nop(),
	}
}

// WithInterval sets the range the phase duration is drawn from
func WithInterval(shortest, longest time.Duration) Option {
	return func(o *Options) {
		o.MinInterval = shortest
		o.MaxInterval = longest
	}
}

// WithPollInterval sets the cycling loop's polling quantum
func WithPollInterval(d time.Duration) Option {
	return func(o *Options) {
		o.PollInterval = d
	}
}

// WithResampleEachCycle draws a new interval after every toggle
func WithResampleEachCycle() Option {
	return func(o *Options) {
		o.ResampleEachCycle = true
	}
}

// WithClock replaces the wall clock, mostly for tests
func WithClock(c clock.Clock) Option {
	return func(o *Options) {
		o.Clock = c
	}
}

// WithRand sets the random source used to draw intervals. The source is only
// used from the cycling goroutine.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

// WithLogger sets the structured logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithRunner hands the cycling loop to an external lifecycle owner
func WithRunner(r lifecycle.Runner) Option {
	return func(o *Options) {
		o.Runner = r
	}
}

// WithObserver registers an observer at construction time
func WithObserver(observer Observer) Option {
	return func(o *Options) {
		o.Observers = append(o.Observers, observer)
	}
}

// Validate checks the options for consistency
func (o Options) Validate() error {
	switch {
	case o.MinInterval <= 0:
		return NewConfigurationError("MinInterval", "must be positive")
	case o.MaxInterval < o.MinInterval:
		return NewConfigurationError("MaxInterval", "must not be shorter than MinInterval")
	case o.PollInterval <= 0:
		return NewConfigurationError("PollInterval", "must be positive")
	case o.Clock == nil:
		return NewConfigurationError("Clock", "must not be nil")
	}
	return nil
}

// drawInterval returns a duration uniformly distributed in [min, max].
func (o Options) drawInterval() time.Duration {
	span := o.MaxInterval - o.MinInterval
	if span == 0 {
		return o.MinInterval
	}

	var f float64
	if o.Rand != nil {
		f = o.Rand.Float64()
	} else {
		f = rand.Float64()
	}
	return o.MinInterval + time.Duration(f*float64(span))
}
