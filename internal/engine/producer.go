package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/registry"
	"github.com/vovakirdan/underground/internal/world"
)

// ProducerStats describes frame production so far.
type ProducerStats struct {
	Frames        uint64
	LastBatchSize int
}

// Producer is the communication loop: it advances the camera from the held
// movement keys and publishes a primitive batch every frame.
type Producer struct {
	world    *world.State
	registry *registry.Registry
	frames   *Mailbox
	pacer    *Pacer
	logger   *log.Logger
	now      func() time.Time

	seq      uint64
	produced atomic.Uint64
	lastSize atomic.Int64
}

// NewProducer creates a frame producer paced by pacer.
func NewProducer(w *world.State, reg *registry.Registry, frames *Mailbox, pacer *Pacer, logger *log.Logger) *Producer {
	return &Producer{
		world:    w,
		registry: reg,
		frames:   frames,
		pacer:    pacer,
		logger:   logger,
		now:      time.Now,
	}
}

// Run produces frames until ctx is cancelled. No batch is published after
// cancellation is observed.
func (p *Producer) Run(ctx context.Context) error {
	for {
		delta, err := p.pacer.Wait(ctx)
		if err != nil {
			p.logger.Info("frame producer stopped", "frames", p.produced.Load())
			return nil
		}
		if _, err := p.Step(delta); err != nil {
			return err
		}
	}
}

// Step runs one iteration for the elapsed time delta and publishes the batch.
// Nothing is published when building the batch fails.
//
// Primitives are built from the camera read at the start of the step, so the
// movement applied here shows up in the next frame.
func (p *Producer) Step(delta time.Duration) (FrameBatch, error) {
	m := p.world.ReadMotion()
	if d := m.Displacement(delta.Seconds()); !d.IsZero() {
		p.world.MoveCamera(d)
	}

	prims, err := p.build(m.Camera, m.HalfExtent)
	if err != nil {
		return FrameBatch{}, err
	}

	p.seq++
	batch := FrameBatch{
		Seq:        p.seq,
		Camera:     m.Camera,
		HalfExtent: m.HalfExtent,
		Primitives: prims,
		ProducedAt: p.now(),
	}
	p.frames.Publish(batch)

	p.produced.Add(1)
	p.lastSize.Store(int64(len(prims)))
	return batch, nil
}

// build converts both arenas concurrently; static objects come first.
func (p *Producer) build(camera, half core.Vec2) ([]core.Primitive, error) {
	var static, dynamic []core.Primitive
	var g errgroup.Group
	g.Go(recoverPanic(WorkerFrames+"/static", func() error {
		static = p.registry.Static.AppendPrimitives(nil, camera, half)
		return nil
	}))
	g.Go(recoverPanic(WorkerFrames+"/dynamic", func() error {
		dynamic = p.registry.Dynamic.AppendPrimitives(nil, camera, half)
		return nil
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(static, dynamic...), nil
}

// Stats returns production counters. Safe to call from any goroutine.
func (p *Producer) Stats() ProducerStats {
	return ProducerStats{
		Frames:        p.produced.Load(),
		LastBatchSize: int(p.lastSize.Load()),
	}
}
