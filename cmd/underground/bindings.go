package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the active key bindings",
	Long:  `Shows the binding table built from the configuration.`,
	RunE:  runBindings,
}

func runBindings(cmd *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	table, err := cfg.BindingTable()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	entries := table.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No bindings configured.")
		return nil
	}

	fmt.Fprintf(out, "Bindings (%s):\n\n", source)

	// Calculate column widths
	maxSrcLen, maxPressLen := len("Source"), len("Press")
	for _, e := range entries {
		maxSrcLen = max(maxSrcLen, len(e.Source.String()))
		maxPressLen = max(maxPressLen, len(e.Binding.Press.String()))
	}

	// Print header
	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", maxSrcLen, "Source", maxPressLen, "Press", "Release")
	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", maxSrcLen, "------", maxPressLen, "-----", "-------")

	// Print bindings
	for _, e := range entries {
		fmt.Fprintf(out, "  %-*s  %-*s  %s\n", maxSrcLen, e.Source, maxPressLen, e.Binding.Press, e.Binding.Release)
	}
	return nil
}
