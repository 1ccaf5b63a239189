package engine

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/underground/internal/config"
	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/registry"
)

// Model is the simulation driver. It seeds the world once and then advances
// object animations at the simulation rate.
type Model struct {
	registry *registry.Registry
	world    config.WorldConfig
	pacer    *Pacer
	logger   *log.Logger
}

// NewModel creates a simulation driver.
func NewModel(reg *registry.Registry, seed config.WorldConfig, pacer *Pacer, logger *log.Logger) *Model {
	return &Model{
		registry: reg,
		world:    seed,
		pacer:    pacer,
		logger:   logger,
	}
}

// Construct seeds the static tile grid and the dynamic objects concurrently.
func (m *Model) Construct(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(recoverPanic(WorkerModel+"/static", func() error {
		origin := core.Vec2{X: m.world.OriginX, Y: m.world.OriginY}
		tiles := registry.TileGrid(m.world.Columns, m.world.Rows, origin, m.world.TileExtent, m.world.TileTexture)
		m.registry.ReplaceStatic(tiles)
		return nil
	}))
	g.Go(recoverPanic(WorkerModel+"/dynamic", func() error {
		m.registry.WithDynamicWrite(func(e *registry.ObjectEditor) {
			for _, oc := range m.world.Objects {
				obj := registry.NewDebugObject(core.Vec2{X: oc.X, Y: oc.Y}, oc.Texture, oc.Extent)
				if len(oc.Frames) > 0 {
					obj.Anim = registry.Animation{Frames: oc.Frames, FrameTime: oc.FrameTime}
				}
				e.Insert(obj)
			}
		})
		return nil
	}))

	if err := g.Wait(); err != nil {
		return err
	}
	m.logger.Info("world constructed", "static", m.registry.Static.Len(), "dynamic", m.registry.Dynamic.Len())
	return nil
}

// Run constructs the world and ticks animations until ctx is cancelled.
func (m *Model) Run(ctx context.Context) error {
	if err := m.Construct(ctx); err != nil {
		return err
	}
	for {
		delta, err := m.pacer.Wait(ctx)
		if err != nil {
			m.logger.Info("simulation stopped")
			return nil
		}
		m.registry.Dynamic.AdvanceAnimation(delta.Seconds())
	}
}
