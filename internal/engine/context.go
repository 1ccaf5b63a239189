package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/underground/internal/config"
	"github.com/vovakirdan/underground/internal/input"
	"github.com/vovakirdan/underground/internal/registry"
	"github.com/vovakirdan/underground/internal/world"
)

// Context owns every piece of shared state. It is built once and handed to
// each worker.
type Context struct {
	World    *world.State
	Registry *registry.Registry
	Input    *input.Queue
	Frames   *Mailbox
	Bindings *input.Table
	Config   config.Config
	Logger   *log.Logger
}

// NewContext builds the shared state from cfg. A nil logger discards output.
func NewContext(cfg config.Config, logger *log.Logger) (*Context, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	bindings, err := cfg.BindingTable()
	if err != nil {
		return nil, fmt.Errorf("engine: bindings: %w", err)
	}

	return &Context{
		World:    world.New(cfg.WorldOptions()),
		Registry: registry.New(),
		Input:    input.NewQueue(),
		Frames:   NewMailbox(),
		Bindings: bindings,
		Config:   cfg,
		Logger:   logger,
	}, nil
}
