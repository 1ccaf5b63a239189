package headless

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/engine"
	"github.com/vovakirdan/underground/internal/input"
)

// Report summarizes a headless run.
type Report struct {
	Frames     uint64        // Batches received
	Primitives int           // Size of the last batch
	Dropped    uint64        // Batches replaced before they were received
	EventsSent int           // Script steps delivered
	LastSeq    uint64        // Sequence number of the last batch
	LastCamera core.Vec2     // Camera of the last batch
	Last       engine.FrameBatch
	Elapsed    time.Duration // Wall time of the run
}

// Presenter replays a script into the input queue and consumes frames.
type Presenter struct {
	Frames *engine.Mailbox
	Queue  *input.Queue
	Logger *log.Logger
}

// NewPresenter creates a presenter for a runtime.
func NewPresenter(rt *engine.Runtime, logger *log.Logger) *Presenter {
	return &Presenter{Frames: rt.Frames(), Queue: rt.Input(), Logger: logger}
}

// Run delivers script steps at their offsets and drains frame batches until
// ctx ends. The end of ctx is the normal way to finish a run.
func (p *Presenter) Run(ctx context.Context, script []ScriptStep) (Report, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var report Report
	start := time.Now()
	next := 0

	// A nil channel never fires, so an empty script only drains frames.
	var timer *time.Timer
	var due <-chan time.Time
	if len(script) > 0 {
		timer = time.NewTimer(script[0].At)
		defer timer.Stop()
		due = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			report.Dropped = p.Frames.Dropped()
			report.Elapsed = time.Since(start)
			logger.Info("headless run finished",
				"frames", report.Frames, "dropped", report.Dropped, "events", report.EventsSent)
			return report, nil

		case batch := <-p.Frames.C():
			report.Frames++
			report.Primitives = len(batch.Primitives)
			report.LastSeq = batch.Seq
			report.LastCamera = batch.Camera
			report.Last = batch

		case <-due:
			elapsed := time.Since(start)
			for next < len(script) && script[next].At <= elapsed {
				if !p.Queue.Send(script[next].Event) {
					logger.Warn("input queue closed, dropping script step", "step", next)
				} else {
					report.EventsSent++
				}
				logger.Debug("script step", "at", script[next].At, "event", script[next].Event)
				next++
			}
			if next < len(script) {
				timer.Reset(script[next].At - elapsed)
			}
		}
	}
}
