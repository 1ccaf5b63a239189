package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/underground/internal/config"
	"github.com/vovakirdan/underground/internal/engine"
	"github.com/vovakirdan/underground/internal/platform/tui"
)

var flagLogFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive terminal view",
	Long: `Start the engine and present it in the terminal.

Controls:
  W/A/S/D, arrows   - Pan the camera (hold)
  Mouse wheel, J/L  - Zoom in / out
  1/2/3, Space      - Zoom presets (regular, wide, close)
  Left click        - Place an object under the cursor
  ?                 - Toggle help
  Q/Esc/Ctrl+C      - Quit

Logs go to a file so they do not disturb the display.

Examples:
  underground run
  underground run --log-file ./underground.log --log-level debug`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.underground/underground.log)")
}

func runRun(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	// Get terminal size early so the first frame fits
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt, err := engine.New(cfg, logger)
	if err != nil {
		return err
	}
	rt.Start(context.Background())

	uiErr := tui.Run(rt, tui.Options{
		FrameRate: cfg.Loops.FrameRate,
		Width:     width,
		Height:    height,
	})
	if err := rt.Shutdown(); err != nil {
		return fmt.Errorf("engine stopped: %w", err)
	}
	return uiErr
}

// openLogFile opens path for appending, creating ~/.underground when path is empty.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		dir := config.UserDir()
		if dir == "" {
			dir = os.TempDir()
		}
		//nolint:gosec // User-owned directory
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
		path = filepath.Join(dir, "underground.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
