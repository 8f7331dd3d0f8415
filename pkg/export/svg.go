// Package export serializes finished drawing models and assigned grids
// into output formats.
//
// # Formats
//
//   - [SVG]: native vector output, written primitive by primitive
//   - [WriteJSON]/[JSON]: the drawing model as JSON for external tools
//   - [ToDOT]: the grid as a Graphviz HTML-like table (alternative engine)
//   - [RenderDOTSVG]/[RenderDOTPNG]: DOT rendered through Graphviz
//   - [ToPDF]/[ToPNG]: native SVG converted via the external rsvg-convert
//     tool (from librsvg)
package export

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/pingrid/pingrid/pkg/table"
)

// SVG renders the drawing model as a standalone SVG document. Output is
// deterministic: the same model always produces identical bytes.
func SVG(m *table.Model) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%g" height="%g">`+"\n",
		m.Width, m.Height, m.Width, m.Height)

	for _, it := range m.Items {
		switch v := it.(type) {
		case table.Rect:
			fmt.Fprintf(&buf, `  <rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n",
				v.X, v.Y, v.W, v.H, v.Fill)
		case table.Text:
			fmt.Fprintf(&buf, `  <text x="%g" y="%g" style="text-anchor:middle;dominant-baseline:central" fill="%s">%s</text>`+"\n",
				v.X, v.Y, v.Fill, escape(v.Content))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// escape makes a label safe for embedding in SVG markup.
func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
