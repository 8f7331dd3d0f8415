package table

import "github.com/pingrid/pingrid/pkg/palette"

// Item is a single drawing primitive. The concrete types are [Rect] and
// [Text]. Items are emitted in draw order: each cell's rectangle comes
// before its centered label.
type Item interface {
	item()
}

// Rect is a filled rectangle. Coordinates are in user units (pixels in
// SVG), origin top-left.
type Rect struct {
	X, Y float64
	W, H float64
	Fill palette.Color
}

func (Rect) item() {}

// Text is a label centered on (X, Y), both horizontally and vertically.
type Text struct {
	X, Y    float64
	Content string
	Fill    palette.Color
}

func (Text) item() {}

// Model is the finished drawing: an ordered primitive sequence plus the
// overall canvas size. It is built once per render and never modified
// afterwards; serializers consume it as-is.
type Model struct {
	Width  float64
	Height float64
	Items  []Item
}
