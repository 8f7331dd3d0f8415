// Package table turns an assigned pin grid into a drawing model of
// colored rectangles and centered labels.
//
// Every occupied cell produces a name cell colored by the pin's type,
// and, when the pin has a usage, a second cell colored by its usage
// type. Pin-type colors fall back to black-on-white; usage-type colors
// are strict and abort the render when missing.
//
// Two layout rules shape the geometry:
//
//   - Span: with SpanPinNameWithoutUsage enabled, a pin without a usage
//     gets the full combined column width for its name cell.
//   - Column-0 swap: in the first grid column the name sub-column is
//     drawn before the usage sub-column, mirroring two-sided package
//     diagrams where pin names hug the outer page edge. All other
//     columns draw the usage sub-column first.
//
// Rendering is deterministic: cells are visited in column-major order,
// so the same grid and tables always yield an identical model.
package table

import (
	"github.com/pingrid/pingrid/pkg/grid"
	"github.com/pingrid/pingrid/pkg/palette"
)

// Render builds the drawing model for an assigned grid. cols and rows
// size the canvas; pinColors and usageColors resolve cell colors.
//
// The returned model is freshly allocated and immutable by convention.
// Render fails with an UNKNOWN_USAGE_TYPE error when a pin's usage type
// is missing from usageColors; no primitives for that pin are emitted.
func Render(g grid.Grid, cols, rows int, pinColors, usageColors palette.Table, opts Options) (*Model, error) {
	opts = opts.withDefaults()
	columnWidth := opts.PinNameColumnWidth + opts.UsageColumnWidth

	m := &Model{
		Width:  (columnWidth+opts.ColumnSpacing)*float64(cols) - opts.ColumnSpacing,
		Height: opts.RowHeight * float64(rows),
		Items:  make([]Item, 0, 2*len(g)),
	}

	for _, pos := range g.Positions() {
		p := g[pos]
		x := (columnWidth + opts.ColumnSpacing) * float64(pos.Column)
		y := opts.RowHeight * float64(pos.Row)

		pinPair := pinColors.Lookup(p.Type)

		// Resolve the usage colors before emitting anything so a failed
		// lookup leaves no partial output for this pin.
		var usagePair palette.Pair
		if p.HasUsage() {
			var err error
			if usagePair, err = usageColors.Strict(p.UsageTypeName()); err != nil {
				return nil, err
			}
		}

		span := opts.SpanPinNameWithoutUsage && !p.HasUsage()
		nameWidth := opts.PinNameColumnWidth
		if span {
			nameWidth = columnWidth
		}
		nameX := x
		if pos.Column != 0 && !span {
			nameX = x + opts.UsageColumnWidth
		}

		m.Items = append(m.Items,
			Rect{X: nameX, Y: y, W: nameWidth, H: opts.RowHeight, Fill: pinPair.Fill},
			Text{X: nameX + nameWidth/2, Y: y + opts.RowHeight/2, Content: p.Pin, Fill: pinPair.Text},
		)

		if p.HasUsage() {
			usageX := x
			if pos.Column == 0 {
				usageX = x + opts.PinNameColumnWidth
			}
			m.Items = append(m.Items,
				Rect{X: usageX, Y: y, W: opts.UsageColumnWidth, H: opts.RowHeight, Fill: usagePair.Fill},
				Text{X: usageX + opts.UsageColumnWidth/2, Y: y + opts.RowHeight/2, Content: p.UsageLabel(), Fill: usagePair.Text},
			)
		}
	}

	return m, nil
}
