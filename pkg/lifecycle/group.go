// Package lifecycle tracks background goroutines so that an owner can cancel
// and join all of them at shutdown.
package lifecycle

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrGroupClosed is returned by Go once Shutdown has been called
var ErrGroupClosed = errors.New("lifecycle: group is shut down")

// Runner spawns a named background task. The task must return once ctx is
// done.
type Runner interface {
	Go(name string, fn func(ctx context.Context) error) error
}

// Group is a Runner backed by an errgroup. All tasks share one context that
// is cancelled by Shutdown or by the first task returning a non-nil error.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	logger zerolog.Logger

	mutex  sync.Mutex
	names  []string
	closed bool
}

// NewGroup creates a group whose tasks are cancelled when parent is done
func NewGroup(parent context.Context, logger zerolog.Logger) *Group {
	ctx, cancel := context.WithCancel(parent)
	group, ctx := errgroup.WithContext(ctx)
	return &Group{
		ctx:    ctx,
		cancel: cancel,
		group:  group,
		logger: logger,
	}
}

// Go registers and starts fn
func (g *Group) Go(name string, fn func(ctx context.Context) error) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.closed {
		return ErrGroupClosed
	}

	g.names = append(g.names, name)
	g.logger.Debug().Str("task", name).Msg("starting background task")

	g.group.Go(func() error {
		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.logger.Error().Err(err).Str("task", name).Msg("background task failed")
			return err
		}
		g.logger.Debug().Str("task", name).Msg("background task exited")
		return nil
	})
	return nil
}

// Names returns the names of every task started so far, in start order
func (g *Group) Names() []string {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	result := make([]string, len(g.names))
	copy(result, g.names)
	return result
}

// Context returns the context shared by the group's tasks
func (g *Group) Context() context.Context {
	return g.ctx
}

// Wait blocks until every task has returned and reports the first failure.
func (g *Group) Wait() error {
	return g.group.Wait()
}

// Shutdown cancels all tasks, waits for them and reports the first failure.
// Calling it more than once is safe.
func (g *Group) Shutdown() error {
	g.mutex.Lock()
	g.closed = true
	g.mutex.Unlock()

	g.cancel()
	return g.group.Wait()
}
