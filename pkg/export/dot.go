package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/pingrid/pingrid/pkg/grid"
	"github.com/pingrid/pingrid/pkg/palette"
	"github.com/pingrid/pingrid/pkg/pin"
)

// ToDOT expresses the assigned grid as a Graphviz HTML-like table: a
// single plaintext node whose label holds one <TABLE> with two sub-cells
// per column block. It applies the same layout rules as the native
// renderer (spanning, the column-0 sub-column swap, the pin-type color
// fallback and the strict usage-type lookup) so the two engines always
// agree on content, if not on exact geometry.
func ToDOT(g grid.Grid, cols, rows int, pinColors, usageColors palette.Table, span bool) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("digraph pinmap {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=plaintext];\n")
	buf.WriteString("  pins [label=<\n")
	buf.WriteString("    <TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"0\" CELLPADDING=\"4\">\n")

	for r := 0; r < rows; r++ {
		buf.WriteString("      <TR>")
		for c := 0; c < cols; c++ {
			if err := writeCellPair(&buf, g[grid.Position{Column: c, Row: r}], c, pinColors, usageColors, span); err != nil {
				return "", err
			}
		}
		buf.WriteString("</TR>\n")
	}

	buf.WriteString("    </TABLE>\n")
	buf.WriteString("  >];\n")
	buf.WriteString("}\n")
	return buf.String(), nil
}

// writeCellPair emits the two <TD>s for one grid cell (or a single
// spanned/empty one), honoring the column-0 sub-column order.
func writeCellPair(buf *bytes.Buffer, p *pin.Definition, column int, pinColors, usageColors palette.Table, span bool) error {
	if p == nil {
		buf.WriteString(`<TD COLSPAN="2"> </TD>`)
		return nil
	}

	pair := pinColors.Lookup(p.Type)

	if span && !p.HasUsage() {
		writeTD(buf, p.Pin, pair, 2)
		return nil
	}

	var usageTD func()
	if p.HasUsage() {
		usagePair, err := usageColors.Strict(p.UsageTypeName())
		if err != nil {
			return err
		}
		usageTD = func() { writeTD(buf, p.UsageLabel(), usagePair, 1) }
	} else {
		usageTD = func() { buf.WriteString("<TD> </TD>") }
	}

	// Column 0 keeps pin names on the outer edge: name first, usage
	// second. Every other column swaps the pair.
	if column == 0 {
		writeTD(buf, p.Pin, pair, 1)
		usageTD()
	} else {
		usageTD()
		writeTD(buf, p.Pin, pair, 1)
	}
	return nil
}

func writeTD(buf *bytes.Buffer, label string, pair palette.Pair, colspan int) {
	spanAttr := ""
	if colspan > 1 {
		spanAttr = fmt.Sprintf(` COLSPAN="%d"`, colspan)
	}
	fmt.Fprintf(buf, `<TD BGCOLOR="%s"%s><FONT COLOR="%s">%s</FONT></TD>`,
		pair.Fill, spanAttr, pair.Text, html.EscapeString(label))
}
