// underground runs a multi-threaded camera and object engine in the terminal.
//
// Usage:
//
//	underground run          - Interactive terminal view
//	underground headless     - Run without a terminal, optionally replaying a script
//	underground bindings     - Show the active key bindings
//	underground config       - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Config file (default search: ~/.underground/config.yaml, ./configs/underground.yaml)
//	--log-level <level>  - debug, info, warn, error (default: info)
//	--fps <rate>         - Override the frame producer rate
//	--speed <value>      - Override the camera speed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/underground/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagFPS      int
	flagSpeed    float32
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "underground",
	Short: "underground - concurrent camera and object engine",
	Long: `underground runs an input loop, a simulation loop and a frame producer
concurrently over one shared world, and presents the frames in your terminal.

Available commands:
  run       - Interactive terminal view
  headless  - Run without a terminal for a fixed duration
  bindings  - Show the active key bindings
  config    - Print the effective configuration

Examples:
  underground run
  underground run --fps 30 --speed 2
  underground headless --duration 5s --script ./walk.yaml
  underground bindings --config ./my-config.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame producer rate (0 = use config)")
	rootCmd.PersistentFlags().Float32Var(&flagSpeed, "speed", -1, "Camera speed in viewport half extents per second (negative = use config)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(bindingsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	if flagFPS > 0 {
		cfg.Loops.FrameRate = float64(flagFPS)
	}
	if flagSpeed >= 0 {
		cfg.Camera.Speed = flagSpeed
	}
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	return cfg, source, nil
}

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "underground",
		Level:           level,
	}), nil
}
