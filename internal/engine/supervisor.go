// Package engine runs the concurrent loops of the application: the input
// dispatcher, the simulation driver and the frame producer. Loops are
// started under a Supervisor that shares one cancellation signal and
// reports the first failure.
package engine

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// PanicError wraps a panic recovered from a worker.
type PanicError struct {
	Worker string
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("engine: worker %q panicked: %v", e.Worker, e.Value)
}

// Unwrap exposes panic values that are errors, such as world.ErrPoisoned.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Supervisor owns the lifetime of a group of workers.
// The first worker to fail cancels all the others.
type Supervisor struct {
	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	running atomic.Bool
	logger  *log.Logger

	stopOnce sync.Once
	done     chan struct{}
	waitOnce sync.Once
	waitErr  error
}

// NewSupervisor creates a running supervisor derived from parent.
func NewSupervisor(parent context.Context, logger *log.Logger) *Supervisor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(parent)
	group, gctx := errgroup.WithContext(ctx)

	s := &Supervisor{
		ctx:    gctx,
		cancel: cancel,
		group:  group,
		logger: logger,
		done:   make(chan struct{}),
	}
	s.running.Store(true)

	// The run flag follows the shared context, whichever side cancels it.
	context.AfterFunc(gctx, func() {
		s.running.Store(false)
	})
	return s
}

// Context returns the context shared by all workers.
func (s *Supervisor) Context() context.Context {
	return s.ctx
}

// Running reports whether the workers should keep going.
func (s *Supervisor) Running() bool {
	return s.running.Load()
}

// Go starts a named worker. A returned error or a panic stops every worker.
func (s *Supervisor) Go(name string, fn func(ctx context.Context) error) {
	run := recoverPanic(name, func() error { return fn(s.ctx) })
	s.group.Go(func() (err error) {
		defer func() {
			if err != nil {
				s.running.Store(false)
				s.logger.Error("worker failed", "worker", name, "error", err)
				return
			}
			s.logger.Debug("worker exited", "worker", name)
		}()

		s.logger.Debug("worker started", "worker", name)
		return run()
	})
}

// recoverPanic wraps fn so a panic comes back as a *PanicError for worker.
// Goroutines started inside a worker are not covered by the worker's own
// recover and must be wrapped separately.
func recoverPanic(worker string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Worker: worker, Value: r, Stack: debug.Stack()}
			}
		}()
		return fn()
	}
}

// Stop asks every worker to exit. Safe to call multiple times.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() {
		s.running.Store(false)
		s.cancel()
	})
}

// Wait blocks until every worker has exited and returns the first failure.
func (s *Supervisor) Wait() error {
	s.waitOnce.Do(func() {
		s.waitErr = s.group.Wait()
		s.Stop()
		close(s.done)
	})
	return s.waitErr
}

// Done is closed once Wait has joined every worker.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}
