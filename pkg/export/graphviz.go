package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// RenderDOTSVG renders a DOT graph to SVG using Graphviz.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderDOTPNG renders a DOT graph to PNG using Graphviz.
func RenderDOTPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
