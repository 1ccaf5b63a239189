package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/underground/internal/core"
	"github.com/vovakirdan/underground/internal/engine"
	"github.com/vovakirdan/underground/internal/platform/headless"
	"github.com/vovakirdan/underground/internal/platform/tui"
)

var (
	flagDuration time.Duration
	flagScript   string
	flagSnapshot string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the engine without a terminal",
	Long: `Run every loop for a fixed duration without a display, replaying
scripted input, then print a summary of the frames produced.

Script format (YAML list, offsets from start):
  - { at: 0s, key: d }
  - { at: 1s, key: d, pressed: false }
  - { at: 1200ms, pointer: { x: 640, y: 360 } }
  - { at: 1300ms, button: left }
  - { at: 1500ms, scroll: 1 }

Examples:
  underground headless --duration 3s
  underground headless --script ./walk.yaml --log-level debug
  underground headless --snapshot 64x18`,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().DurationVar(&flagDuration, "duration", 2*time.Second, "How long to run")
	headlessCmd.Flags().StringVar(&flagScript, "script", "", "Path to an input script YAML")
	headlessCmd.Flags().StringVar(&flagSnapshot, "snapshot", "", "Print the last frame as text at COLSxROWS (e.g. 64x18)")
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	cols, rows, err := parseSnapshotSize(flagSnapshot)
	if err != nil {
		return err
	}

	var script []headless.ScriptStep
	if flagScript != "" {
		if script, err = headless.LoadScript(flagScript); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rt, err := engine.New(cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("starting headless run", "config", source, "duration", flagDuration, "steps", len(script))
	rt.Start(ctx)

	runCtx, cancel := context.WithTimeout(ctx, flagDuration)
	defer cancel()
	go func() {
		// End the run early if the engine fails.
		select {
		case <-rt.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	report, err := headless.NewPresenter(rt, logger).Run(runCtx, script)
	if err != nil {
		return err
	}
	if err := rt.Shutdown(); err != nil {
		return fmt.Errorf("engine stopped: %w", err)
	}

	stats := rt.Stats()
	snap := rt.World().Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Elapsed:        %v\n", report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "Frames:         %d received, %d dropped\n", report.Frames, report.Dropped)
	fmt.Fprintf(out, "Last batch:     #%d, %d primitives\n", report.LastSeq, report.Primitives)
	fmt.Fprintf(out, "Events:         %d sent, %d dispatched, %d dropped\n",
		report.EventsSent, stats.Input.Dispatched, stats.Input.Dropped)
	fmt.Fprintf(out, "Camera:         %+.3f, %+.3f\n", snap.Camera.X, snap.Camera.Y)
	fmt.Fprintf(out, "Half extent:    %.3f x %.3f\n", snap.HalfExtent.X, snap.HalfExtent.Y)
	fmt.Fprintf(out, "Objects:        %d\n", rt.Registry().Len())

	if cols > 0 {
		screen := core.NewScreen(cols, rows)
		tui.Rasterize(report.Last, screen)
		fmt.Fprintf(out, "\n%s\n", screen.String())
	}
	return nil
}

// parseSnapshotSize parses COLSxROWS. An empty value disables the snapshot.
func parseSnapshotSize(v string) (int, int, error) {
	if v == "" {
		return 0, 0, nil
	}
	var cols, rows int
	if _, err := fmt.Sscanf(v, "%dx%d", &cols, &rows); err != nil || cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid --snapshot %q: expected COLSxROWS", v)
	}
	return cols, rows, nil
}
