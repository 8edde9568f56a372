// Package trafficlight models a single traffic light that toggles between
// RED and GREEN on a randomized interval in its own goroutine, and lets other
// goroutines block until it turns GREEN.
//
// Every toggle is published through a FIFO channel.Channel. WaitForGreen
// consumes that channel, so each published GREEN releases exactly one
// waiter and a later call waits for the next GREEN rather than replaying an
// old one. WaitForGreen has no timeout; use WaitForGreenContext when the
// caller needs one.
package trafficlight

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/anggasct/trafficlight/pkg/channel"
	"github.com/anggasct/trafficlight/pkg/lifecycle"
)

// LightState is the lifecycle state of the cycling loop
type LightState int

const (
	// LightStateIdle means Simulate has not been called
	LightStateIdle LightState = iota
	// LightStateSimulating means the cycling loop has been started
	LightStateSimulating
	// LightStateStopped means Stop has been called
	LightStateStopped
)

// TrafficLight is a phase-cycling actor. The zero value is not usable, create
// lights with New.
type TrafficLight struct {
	id     uuid.UUID
	phase  atomic.Uint32
	queue  *channel.Channel[Phase]
	opts   Options
	clock  clock.Clock
	logger zerolog.Logger

	observers *ObserverManager

	runner lifecycle.Runner
	owned  *lifecycle.Group

	// nanoseconds of the interval the loop is currently waiting out
	interval atomic.Int64

	mutex sync.Mutex
	state LightState
	stop  chan struct{}
	done  chan struct{}
}

// New creates a light showing Red. The cycling loop is not started until
// Simulate is called.
func New(opts ...Option) (*TrafficLight, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}

	l := &TrafficLight{
		id:        uuid.New(),
		queue:     channel.New[Phase](),
		opts:      options,
		clock:     options.Clock,
		observers: NewObserverManager(),
		runner:    options.Runner,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	l.logger = options.Logger.With().Str("light_id", l.id.String()).Logger()
	l.phase.Store(uint32(Red))

	if l.runner == nil {
		l.owned = lifecycle.NewGroup(context.Background(), l.logger)
		l.runner = l.owned
	}

	for _, observer := range options.Observers {
		l.observers.AddObserver(observer)
	}

	return l, nil
}

// ID returns the light's identity
func (l *TrafficLight) ID() uuid.UUID {
	return l.id
}

// CurrentPhase returns the phase shown at the instant of the call. It does
// not consume published phases.
func (l *TrafficLight) CurrentPhase() Phase {
	return Phase(l.phase.Load())
}

// State returns the lifecycle state of the light
func (l *TrafficLight) State() LightState {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.state
}

// Interval returns the duration of the current phase cycle, or zero before
// the cycling loop has drawn one.
func (l *TrafficLight) Interval() time.Duration {
	return time.Duration(l.interval.Load())
}

// IntervalRange returns the configured bounds of the phase duration
func (l *TrafficLight) IntervalRange() (time.Duration, time.Duration) {
	return l.opts.MinInterval, l.opts.MaxInterval
}

// Done is closed once the cycling loop has exited
func (l *TrafficLight) Done() <-chan struct{} {
	return l.done
}

// AddObserver registers an observer
func (l *TrafficLight) AddObserver(observer Observer) {
	l.observers.AddObserver(observer)
}

// RemoveObserver unregisters an observer
func (l *TrafficLight) RemoveObserver(observer Observer) {
	l.observers.RemoveObserver(observer)
}

// Simulate starts the cycling loop in the background and returns
// immediately. It returns ErrAlreadySimulating on a second call and
// ErrStopped after Stop.
func (l *TrafficLight) Simulate() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	switch l.state {
	case LightStateSimulating:
		return ErrAlreadySimulating
	case LightStateStopped:
		return ErrStopped
	}

	if err := l.runner.Go("trafficlight/"+l.id.String(), l.cycleThroughPhases); err != nil {
		return &RunnerError{LightID: l.id.String(), OriginalErr: err}
	}
	l.state = LightStateSimulating
	return nil
}

// Stop signals the cycling loop and waits for it to exit. Stopping a light
// that was never started returns ErrNotSimulating; stopping twice is a no-op.
func (l *TrafficLight) Stop() error {
	l.mutex.Lock()
	switch l.state {
	case LightStateIdle:
		l.mutex.Unlock()
		return ErrNotSimulating
	case LightStateStopped:
		l.mutex.Unlock()
		return nil
	}
	l.state = LightStateStopped
	close(l.stop)
	l.mutex.Unlock()

	<-l.done

	if l.owned != nil {
		return l.owned.Shutdown()
	}
	return nil
}

// WaitForGreen blocks until the cycling loop publishes Green. Phases
// published while nobody was waiting are consumed in order, so the call
// returns on the first queued Green. It blocks forever on a light that is
// never simulated.
func (l *TrafficLight) WaitForGreen() {
	for l.queue.Pop() != Green {
	}
}

// WaitForGreenContext is WaitForGreen with cancellation. It returns
// ctx.Err() when ctx is done and ErrStopped when the cycling loop exits
// before publishing another Green.
func (l *TrafficLight) WaitForGreenContext(ctx context.Context) error {
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-l.done:
			cancel()
		case <-waitCtx.Done():
		}
	}()

	for {
		phase, err := l.queue.PopContext(waitCtx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return ErrStopped
		}
		if phase == Green {
			return nil
		}
	}
}

// cycleThroughPhases is the body of the background goroutine. It is the
// only writer of l.phase.
func (l *TrafficLight) cycleThroughPhases(ctx context.Context) error {
	defer close(l.done)

	ticker := l.clock.Ticker(l.opts.PollInterval)
	defer ticker.Stop()

	interval := l.opts.drawInterval()
	l.interval.Store(int64(interval))
	last := l.clock.Now()
	var sequence uint64

	l.logger.Info().Dur("interval", interval).Msg("traffic light simulating")
	l.observers.NotifySimulationStarted(l.id)
	defer func() {
		l.logger.Info().Uint64("toggles", sequence).Msg("traffic light stopped")
		l.observers.NotifySimulationStopped(l.id)
	}()

	for {
		if elapsed := l.clock.Since(last); elapsed >= interval {
			from := l.CurrentPhase()
			sequence++
			change := NewPhaseChange(l.id, from, sequence, elapsed, l.clock.Now())

			l.phase.Store(uint32(change.To))
			l.queue.Push(change.To)
			last = l.clock.Now()

			l.logger.Debug().
				Str("from", change.From.String()).
				Str("to", change.To.String()).
				Uint64("seq", sequence).
				Dur("interval", elapsed).
				Msg("phase changed")
			l.observers.NotifyPhaseChange(change)

			if l.opts.ResampleEachCycle {
				interval = l.opts.drawInterval()
				l.interval.Store(int64(interval))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-ticker.C:
		}
	}
}
