package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pingrid/pingrid/pkg/errors"
	"github.com/pingrid/pingrid/pkg/table"
)

// jsonModel is the wire form of a drawing model. Primitives carry a
// "kind" tag so external tools can dispatch without schema knowledge.
type jsonModel struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Items  []jsonItem `json:"items"`
}

type jsonItem struct {
	Kind string  `json:"kind"` // "rect" or "text"
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w,omitempty"`
	H    float64 `json:"h,omitempty"`
	Text string  `json:"text,omitempty"`
	Fill string  `json:"fill"`
}

// WriteJSON encodes the drawing model as indented JSON to w.
func WriteJSON(m *table.Model, w io.Writer) error {
	out := jsonModel{
		Width:  m.Width,
		Height: m.Height,
		Items:  make([]jsonItem, 0, len(m.Items)),
	}

	for _, it := range m.Items {
		switch v := it.(type) {
		case table.Rect:
			out.Items = append(out.Items, jsonItem{
				Kind: "rect", X: v.X, Y: v.Y, W: v.W, H: v.H, Fill: string(v.Fill),
			})
		case table.Text:
			out.Items = append(out.Items, jsonItem{
				Kind: "text", X: v.X, Y: v.Y, Text: v.Content, Fill: string(v.Fill),
			})
		default:
			return errors.New(errors.ErrCodeInternal, "unknown primitive type %T", it)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// JSON returns the drawing model encoded as indented JSON.
func JSON(m *table.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
