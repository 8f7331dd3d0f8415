// Package pipeline wires the pin-table stages together: validate the
// definitions, assign the grid, render, and serialize to the requested
// format. Both the CLI and the render server run requests through it.
//
// # Engines
//
// Two engines are available, mirroring two views of the same grid:
//
//   - "table": the native renderer. Exact cell geometry, output as SVG,
//     JSON (the drawing model), or PNG/PDF via rsvg-convert.
//   - "graphviz": the grid expressed as a Graphviz HTML-like table,
//     output as DOT text or rendered to SVG/PNG through Graphviz. No
//     external tools required for PNG.
//
// Requests are independent and side-effect free; they may run in
// parallel without coordination.
package pipeline

import (
	"context"

	"github.com/pingrid/pingrid/pkg/errors"
	"github.com/pingrid/pingrid/pkg/export"
	"github.com/pingrid/pingrid/pkg/grid"
	"github.com/pingrid/pingrid/pkg/palette"
	"github.com/pingrid/pingrid/pkg/pin"
	"github.com/pingrid/pingrid/pkg/table"
)

// Engines.
const (
	EngineTable    = "table"
	EngineGraphviz = "graphviz"
)

// DefaultScale is the PNG scale factor (2x for high-DPI displays).
const DefaultScale = 2.0

// engineFormats lists the output formats each engine supports.
var engineFormats = map[string]map[string]bool{
	EngineTable:    {"svg": true, "json": true, "png": true, "pdf": true},
	EngineGraphviz: {"svg": true, "png": true, "dot": true},
}

// contentTypes maps formats to MIME types for the render server.
var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"json": "application/json",
	"png":  "image/png",
	"pdf":  "application/pdf",
	"dot":  "text/vnd.graphviz",
}

// ValidateEngine checks that engine names a known engine.
func ValidateEngine(engine string) error {
	if _, ok := engineFormats[engine]; !ok {
		return errors.New(errors.ErrCodeInvalidEngine, "unknown engine: %s (must be 'table' or 'graphviz')", engine)
	}
	return nil
}

// ValidateFormat checks that format is supported by engine.
func ValidateFormat(engine, format string) error {
	if err := ValidateEngine(engine); err != nil {
		return err
	}
	if !engineFormats[engine][format] {
		return errors.New(errors.ErrCodeInvalidFormat, "format %q not supported by engine %q", format, engine)
	}
	return nil
}

// ContentType returns the MIME type for a format, or
// application/octet-stream when unknown.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Request is one table-generation run.
type Request struct {
	Definitions *pin.Document
	Colors      *palette.Document
	Options     table.Options
	Engine      string  // "table" (default) or "graphviz"
	Format      string  // svg, json, png, pdf, dot
	Scale       float64 // PNG scale factor, 0 means DefaultScale
}

// Artifact is a finished render.
type Artifact struct {
	Data        []byte
	ContentType string
}

// Run executes a request end to end. It fails fast on the first error:
// malformed definitions, an exhausted grid, an unknown usage type, or
// an unsupported engine/format pair. There is no partial output.
func Run(ctx context.Context, req Request) (*Artifact, error) {
	engine := req.Engine
	if engine == "" {
		engine = EngineTable
	}
	format := req.Format
	if format == "" {
		format = "svg"
	}
	if err := ValidateFormat(engine, format); err != nil {
		return nil, err
	}
	if err := req.Definitions.Validate(); err != nil {
		return nil, err
	}

	cols, rows := req.Definitions.GridSize()
	g, err := grid.Assign(req.Definitions.PinDefinitions, cols, rows)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch engine {
	case EngineTable:
		data, err = runTable(g, cols, rows, req, format)
	case EngineGraphviz:
		data, err = runGraphviz(ctx, g, cols, rows, req, format)
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{Data: data, ContentType: ContentType(format)}, nil
}

func runTable(g grid.Grid, cols, rows int, req Request, format string) ([]byte, error) {
	m, err := table.Render(g, cols, rows, req.Colors.PinTypeColors, req.Colors.UsageTypeColors, req.Options)
	if err != nil {
		return nil, err
	}

	switch format {
	case "svg":
		return export.SVG(m), nil
	case "json":
		return export.JSON(m)
	case "png":
		return export.ToPNG(export.SVG(m), req.scale())
	case "pdf":
		return export.ToPDF(export.SVG(m))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
}

func runGraphviz(ctx context.Context, g grid.Grid, cols, rows int, req Request, format string) ([]byte, error) {
	dot, err := export.ToDOT(g, cols, rows, req.Colors.PinTypeColors, req.Colors.UsageTypeColors,
		req.Options.SpanPinNameWithoutUsage)
	if err != nil {
		return nil, err
	}

	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return export.RenderDOTSVG(ctx, dot)
	case "png":
		return export.RenderDOTPNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
}

func (r Request) scale() float64 {
	if r.Scale <= 0 {
		return DefaultScale
	}
	return r.Scale
}
