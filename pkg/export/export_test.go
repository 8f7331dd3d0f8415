package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pingrid/pingrid/pkg/errors"
	"github.com/pingrid/pingrid/pkg/grid"
	"github.com/pingrid/pingrid/pkg/palette"
	"github.com/pingrid/pingrid/pkg/pin"
	"github.com/pingrid/pingrid/pkg/table"
)

func strPtr(s string) *string { return &s }

var (
	pinColors = palette.Table{
		"io": {Fill: "#1F77B4", Text: "white"},
	}
	usageColors = palette.Table{
		"uart": {Fill: "#9467BD", Text: "white"},
	}
)

func sampleModel() *table.Model {
	return &table.Model{
		Width:  240,
		Height: 20,
		Items: []table.Item{
			table.Rect{X: 0, Y: 0, W: 40, H: 20, Fill: "#1F77B4"},
			table.Text{X: 20, Y: 10, Content: "PA0", Fill: "white"},
		},
	}
}

func TestSVG(t *testing.T) {
	out := string(SVG(sampleModel()))

	wants := []string{
		`viewBox="0 0 240 20"`,
		`width="240" height="20"`,
		`<rect x="0" y="0" width="40" height="20" fill="#1F77B4"/>`,
		`style="text-anchor:middle;dominant-baseline:central"`,
		`>PA0</text>`,
		`</svg>`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q\n%s", want, out)
		}
	}
}

func TestSVGEscapesLabels(t *testing.T) {
	m := &table.Model{
		Width: 40, Height: 20,
		Items: []table.Item{
			table.Text{X: 20, Y: 10, Content: "D+ <n> & \"q\"", Fill: "black"},
		},
	}

	out := string(SVG(m))
	if strings.Contains(out, "<n>") {
		t.Errorf("label markup not escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;n&gt; &amp;") {
		t.Errorf("expected escaped label in output:\n%s", out)
	}
}

func TestSVGDeterministic(t *testing.T) {
	m := sampleModel()
	first := SVG(m)
	for i := 0; i < 5; i++ {
		if !bytes.Equal(first, SVG(m)) {
			t.Fatal("SVG output differs between runs")
		}
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(sampleModel())
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var decoded struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Items  []struct {
			Kind string  `json:"kind"`
			X    float64 `json:"x"`
			W    float64 `json:"w"`
			Text string  `json:"text"`
			Fill string  `json:"fill"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Width != 240 || decoded.Height != 20 {
		t.Errorf("canvas = %vx%v, want 240x20", decoded.Width, decoded.Height)
	}
	if len(decoded.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(decoded.Items))
	}
	if decoded.Items[0].Kind != "rect" || decoded.Items[0].W != 40 {
		t.Errorf("items[0] = %+v, want rect with w=40", decoded.Items[0])
	}
	if decoded.Items[1].Kind != "text" || decoded.Items[1].Text != "PA0" {
		t.Errorf("items[1] = %+v, want text PA0", decoded.Items[1])
	}
}

func TestToDOT(t *testing.T) {
	pins := []pin.Definition{
		{Pin: "PA0", Type: "io", Usage: strPtr("USART2_TX"), UsageType: strPtr("uart")},
		{Pin: "PA1", Type: "io"},
	}
	g, err := grid.Assign(pins, 2, 1)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	dot, err := ToDOT(g, 2, 1, pinColors, usageColors, false)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	wants := []string{
		"digraph pinmap {",
		"<TABLE",
		`<TD BGCOLOR="#1F77B4"><FONT COLOR="white">PA0</FONT></TD>`,
		`<TD BGCOLOR="#9467BD"><FONT COLOR="white">USART2_TX</FONT></TD>`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q\n%s", want, dot)
		}
	}

	// Column 0 puts the name before the usage; column 1 swaps. PA1 has no
	// usage, so its empty usage cell precedes the name.
	nameIdx := strings.Index(dot, ">PA0<")
	usageIdx := strings.Index(dot, ">USART2_TX<")
	if nameIdx > usageIdx {
		t.Error("column 0 should emit the pin name before the usage")
	}
	if !strings.Contains(dot, `<TD> </TD><TD BGCOLOR="#1F77B4"><FONT COLOR="white">PA1</FONT></TD>`) {
		t.Errorf("column 1 should emit the empty usage cell before the name\n%s", dot)
	}
}

func TestToDOTSpanAndEmptyCells(t *testing.T) {
	pins := []pin.Definition{{Pin: "GND", Type: "io"}}
	g, err := grid.Assign(pins, 2, 1)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	dot, err := ToDOT(g, 2, 1, pinColors, usageColors, true)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}

	if !strings.Contains(dot, `COLSPAN="2"><FONT COLOR="white">GND</FONT>`) {
		t.Errorf("spanned pin should cover both sub-columns\n%s", dot)
	}
	if !strings.Contains(dot, `<TD COLSPAN="2"> </TD>`) {
		t.Errorf("unoccupied cell should render as an empty spanned TD\n%s", dot)
	}
}

func TestToDOTUnknownUsageType(t *testing.T) {
	pins := []pin.Definition{
		{Pin: "PA0", Type: "io", Usage: strPtr("X"), UsageType: strPtr("spi")},
	}
	g, err := grid.Assign(pins, 1, 1)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	_, err = ToDOT(g, 1, 1, pinColors, usageColors, false)
	if !errors.Is(err, errors.ErrCodeUnknownUsageType) {
		t.Errorf("error = %v, want UNKNOWN_USAGE_TYPE", err)
	}
}

func TestToDOTEscapesLabels(t *testing.T) {
	pins := []pin.Definition{{Pin: "D+ <n>", Type: "io"}}
	g, err := grid.Assign(pins, 1, 1)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	dot, err := ToDOT(g, 1, 1, pinColors, usageColors, false)
	if err != nil {
		t.Fatalf("ToDOT() error = %v", err)
	}
	if !strings.Contains(dot, "D+ &lt;n&gt;") {
		t.Errorf("label not HTML-escaped\n%s", dot)
	}
}
