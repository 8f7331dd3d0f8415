// Package cli implements the pingrid command-line interface.
//
// This package provides commands for generating pin-table diagrams from
// declarative definition and color files, inspecting color palettes,
// and running the HTTP render server. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
//   - generate: Render a pin table to SVG, PNG, PDF, JSON, or DOT
//   - palette: Print a color file as terminal swatches
//   - serve: Run the HTTP render endpoint
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pingrid/pingrid/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "pingrid"

// Execute runs the pingrid CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Pingrid renders hardware pin maps as color-coded grid diagrams",
		Long:         `Pingrid is a CLI tool that renders a hardware pin map (e.g. a microcontroller's pinout) as a color-coded grid table in vector-graphics form, driven by declarative pin-definition and color-palette files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPaletteCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
