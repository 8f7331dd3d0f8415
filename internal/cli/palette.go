package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pingrid/pingrid/pkg/palette"
)

// newPaletteCmd creates the palette command, which prints the color
// pairs of a color file as terminal swatches for quick inspection.
func newPaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette <colors>",
		Short: "Print a color file as terminal swatches",
		Long: `Print every pin-type and usage-type color pair of a color file as a
terminal swatch, rendered with the pair's own fill and text colors.

Useful for checking a palette before generating, especially whether
integer RGB values decode to the hex colors you expect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := palette.Load(args[0])
			if err != nil {
				return err
			}
			printPalette("Pin types", doc.PinTypeColors)
			printPalette("Usage types", doc.UsageTypeColors)
			return nil
		},
	}
}

// printPalette prints one color table under a heading, sorted by
// category name for stable output.
func printPalette(title string, t palette.Table) {
	fmt.Println(styleTitle.Render(title))
	if len(t) == 0 {
		fmt.Println("  " + styleDim.Render("(none)"))
		fmt.Println()
		return
	}

	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		p := t[name]
		fmt.Printf("  %s  %s\n",
			swatch(name, string(p.Fill), string(p.Text)),
			styleDim.Render(fmt.Sprintf("fill=%s text=%s", p.Fill, p.Text)))
	}
	fmt.Println()
}
