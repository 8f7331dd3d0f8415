package export

import (
	"bytes"
	"fmt"
	"os/exec"
)

// ToPDF converts SVG bytes to PDF using the external rsvg-convert tool.
// Requires librsvg: brew install librsvg (macOS), apt install
// librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "-f", "pdf")
}

// ToPNG converts SVG bytes to PNG using the external rsvg-convert tool.
// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "-f", "png", fmt.Sprintf("--zoom=%g", scale))
}

func rsvgConvert(svg []byte, args ...string) ([]byte, error) {
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath("rsvg-convert"); lookErr != nil {
			return nil, fmt.Errorf("rsvg-convert not found: install librsvg (brew install librsvg / apt install librsvg2-bin)")
		}
		return nil, fmt.Errorf("rsvg-convert: %w: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}
