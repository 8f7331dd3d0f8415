package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pingrid/pingrid/pkg/palette"
	"github.com/pingrid/pingrid/pkg/pin"
	"github.com/pingrid/pingrid/pkg/pipeline"
	"github.com/pingrid/pingrid/pkg/table"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output  string       // output file path (or base path for multiple formats)
	engine  string       // render engine: "table" or "graphviz"
	formats []string     // output formats
	scale   float64      // PNG scale factor
	columns int          // grid width override (0 = from definition file)
	rows    int          // grid height override (0 = from definition file / auto)
	table   table.Options // cell geometry
}

// newGenerateCmd creates the generate command, the main entry point:
// it loads a definition file and a color file, assigns the grid, and
// writes the rendered artifacts.
func newGenerateCmd() *cobra.Command {
	var formatsStr string
	opts := generateOpts{
		engine: pipeline.EngineTable,
		scale:  pipeline.DefaultScale,
		table:  table.DefaultOptions(),
	}

	cmd := &cobra.Command{
		Use:   "generate <definitions> <colors>",
		Short: "Render a pin table from definition and color files",
		Long: `Render a pin table from a pin-definition file and a color file.

Both files may be JSON or TOML (selected by extension). The definition
file lists pins in order with optional explicit pin numbers; the color
file maps pin types and usage types to [fill, text] color pairs.

Examples:
  pingrid generate board.json colors.json
  pingrid generate board.json colors.json -f svg,png -o out/board
  pingrid generate board.toml colors.toml --engine graphviz -f dot`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := pipeline.ValidateFormat(opts.engine, f); err != nil {
					return err
				}
			}
			return runGenerate(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.engine, "engine", opts.engine, "render engine: table (default), graphviz")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "number of grid columns (default: from definition file)")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "number of grid rows (default: auto)")
	cmd.Flags().Float64Var(&opts.table.PinNameColumnWidth, "pin-name-column-width", opts.table.PinNameColumnWidth, "width of the pin name sub-column")
	cmd.Flags().Float64Var(&opts.table.UsageColumnWidth, "usage-column-width", opts.table.UsageColumnWidth, "width of the usage sub-column")
	cmd.Flags().Float64Var(&opts.table.RowHeight, "row-height", opts.table.RowHeight, "height of every row")
	cmd.Flags().Float64Var(&opts.table.ColumnSpacing, "column-spacing", opts.table.ColumnSpacing, "horizontal gap between column blocks")
	cmd.Flags().BoolVar(&opts.table.SpanPinNameWithoutUsage, "span-pin-name-without-usage", false, "span the name cell of pins without a usage across the full column")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// knownExts is the set of format extensions stripped by basePath.
var knownExts = map[string]bool{"svg": true, "png": true, "pdf": true, "json": true, "dot": true}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If
// output carries a format extension, that extension is stripped so the
// per-format suffix can be appended.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if knownExts[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runGenerate loads both inputs and renders every requested format.
func runGenerate(ctx context.Context, defPath, colorPath string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	defs, err := pin.Load(defPath)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d pin definitions from %s", len(defs.PinDefinitions), defPath)

	colors, err := palette.Load(colorPath)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d pin type and %d usage type colors",
		len(colors.PinTypeColors), len(colors.UsageTypeColors))

	if opts.columns > 0 {
		defs.Columns = opts.columns
	}
	if opts.rows > 0 {
		defs.Rows = opts.rows
	}

	prog := newProgress(logger)
	for _, format := range opts.formats {
		art, err := pipeline.Run(ctx, pipeline.Request{
			Definitions: defs,
			Colors:      colors,
			Options:     opts.table,
			Engine:      opts.engine,
			Format:      format,
			Scale:       opts.scale,
		})
		if err != nil {
			return err
		}

		path := outputPath(opts, defPath, format)
		if err := os.WriteFile(path, art.Data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess("Generated %s", format)
		printFile(path)
	}
	prog.done(fmt.Sprintf("Generated %d artifact(s)", len(opts.formats)))

	return nil
}

// outputPath picks the file name for one rendered format. A single
// format honors --output verbatim; multiple formats share a base path
// and get per-format extensions.
func outputPath(opts *generateOpts, input, format string) string {
	if opts.output != "" && len(opts.formats) == 1 {
		return opts.output
	}
	return basePath(opts.output, input) + "." + format
}
