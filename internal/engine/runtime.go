package engine

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/underground/internal/config"
	"github.com/vovakirdan/underground/internal/input"
	"github.com/vovakirdan/underground/internal/registry"
	"github.com/vovakirdan/underground/internal/world"
)

// Worker names used in logs and PanicError.
const (
	WorkerInput  = "input"
	WorkerModel  = "model"
	WorkerFrames = "frames"
)

// Stats aggregates the counters of every loop.
type Stats struct {
	Input         input.Stats
	Producer      ProducerStats
	FramesDropped uint64
	Pending       int // Events waiting in the input queue
}

// Runtime wires the shared context to the three loops.
type Runtime struct {
	ctx        *Context
	dispatcher *input.Dispatcher
	producer   *Producer
	model      *Model
	logger     *log.Logger

	sup *Supervisor
}

// New builds the shared context and the loops without starting them.
func New(cfg config.Config, logger *log.Logger) (*Runtime, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ectx, err := NewContext(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		ctx: ectx,
		dispatcher: input.NewDispatcher(ectx.Bindings, ectx.World, ectx.Registry,
			cfg.SpawnTemplate(), logger.WithPrefix(WorkerInput)),
		producer: NewProducer(ectx.World, ectx.Registry, ectx.Frames,
			NewPacer(cfg.Loops.FrameRate), logger.WithPrefix(WorkerFrames)),
		model: NewModel(ectx.Registry, cfg.World,
			NewPacer(cfg.Loops.SimRate), logger.WithPrefix(WorkerModel)),
		logger: logger,
	}, nil
}

// Start launches the input, model and frame workers.
// Calling Start more than once has no effect.
func (r *Runtime) Start(parent context.Context) {
	if r.sup != nil {
		return
	}
	r.sup = NewSupervisor(parent, r.logger)

	r.sup.Go(WorkerInput, func(ctx context.Context) error {
		return r.dispatcher.Run(ctx, r.ctx.Input)
	})
	r.sup.Go(WorkerModel, r.model.Run)
	r.sup.Go(WorkerFrames, r.producer.Run)

	// Join in the background so Done fires even when a worker fails.
	go func() {
		_ = r.sup.Wait()
	}()
	r.logger.Info("runtime started",
		"frame_rate", r.ctx.Config.Loops.FrameRate,
		"sim_rate", r.ctx.Config.Loops.SimRate)
}

// Shutdown stops every worker, closes the input queue and waits for the
// workers to exit. Returns the first worker failure.
func (r *Runtime) Shutdown() error {
	if r.sup == nil {
		r.ctx.Input.Close()
		return nil
	}
	r.sup.Stop()
	r.ctx.Input.Close()

	err := r.sup.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		r.logger.Error("runtime stopped with error", "error", err)
		return err
	}
	r.logger.Info("runtime stopped")
	return nil
}

// Done is closed once every worker has exited.
func (r *Runtime) Done() <-chan struct{} {
	if r.sup == nil {
		return nil
	}
	return r.sup.Done()
}

// Running reports whether the workers are still live.
func (r *Runtime) Running() bool {
	return r.sup != nil && r.sup.Running()
}

// Context returns the shared state.
func (r *Runtime) Context() *Context {
	return r.ctx
}

// Input returns the queue presenters push events into.
func (r *Runtime) Input() *input.Queue {
	return r.ctx.Input
}

// Frames returns the mailbox presenters pull batches from.
func (r *Runtime) Frames() *Mailbox {
	return r.ctx.Frames
}

// World returns the shared world state.
func (r *Runtime) World() *world.State {
	return r.ctx.World
}

// Registry returns the object registry.
func (r *Runtime) Registry() *registry.Registry {
	return r.ctx.Registry
}

// Stats returns a snapshot of the loop counters.
func (r *Runtime) Stats() Stats {
	return Stats{
		Input:         r.dispatcher.Stats(),
		Producer:      r.producer.Stats(),
		FramesDropped: r.ctx.Frames.Dropped(),
		Pending:       r.ctx.Input.Len(),
	}
}
