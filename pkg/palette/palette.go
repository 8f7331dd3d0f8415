// Package palette defines the color tables that drive pin-table rendering.
//
// A color file maps pin-type and usage-type categories to [fill, text]
// color pairs. Members of a pair are either 24-bit RGB integers or
// already-formatted color strings (hex or SVG named colors). The loaders
// in this package normalize both forms into a single canonical [Color]
// string so the renderer never branches on representation.
//
// Pin-type lookups fall back to a default pair (black fill, white text)
// when the category is missing. Usage-type lookups are strict: a missing
// category is a fatal error, surfaced before any geometry is emitted for
// the offending pin.
package palette

import (
	"fmt"

	"github.com/pingrid/pingrid/pkg/errors"
)

// Color is a canonical SVG color value, e.g. "#1F77B4" or "white".
type Color string

// FromRGB converts a 24-bit RGB integer into a canonical hex color.
func FromRGB(v int) Color {
	return Color(fmt.Sprintf("#%06X", v&0xFFFFFF))
}

// Pair is the fill and text color for one category.
type Pair struct {
	Fill Color
	Text Color
}

// Default is the fallback pair used when a pin type has no entry.
var Default = Pair{Fill: "black", Text: "white"}

// Table maps a category name (pin type or usage type) to its color pair.
type Table map[string]Pair

// Lookup returns the pair for category, falling back to [Default] when
// the category has no entry.
func (t Table) Lookup(category string) Pair {
	if p, ok := t[category]; ok {
		return p
	}
	return Default
}

// Strict returns the pair for category or an UNKNOWN_USAGE_TYPE error
// when the category has no entry. Unlike [Table.Lookup] there is no
// fallback; usage colors must be declared explicitly.
func (t Table) Strict(category string) (Pair, error) {
	if p, ok := t[category]; ok {
		return p, nil
	}
	return Pair{}, errors.New(errors.ErrCodeUnknownUsageType, "no color defined for usage type %q", category)
}

// Document is the parsed form of a color file.
type Document struct {
	PinTypeColors   Table `json:"pin_type_colors" toml:"pin_type_colors"`
	UsageTypeColors Table `json:"usage_type_colors" toml:"usage_type_colors"`
}

// normalize converts a raw color value (string or number) into a
// canonical Color. Integers are formatted as #RRGGBB; strings pass
// through untouched.
func normalize(v any) (Color, error) {
	switch c := v.(type) {
	case string:
		if c == "" {
			return "", errors.New(errors.ErrCodeInvalidColor, "empty color string")
		}
		return Color(c), nil
	case int64:
		return fromInt(c)
	case float64:
		if c != float64(int64(c)) {
			return "", errors.New(errors.ErrCodeInvalidColor, "color value %v is not an integer", c)
		}
		return fromInt(int64(c))
	default:
		return "", errors.New(errors.ErrCodeInvalidColor, "color value must be a string or integer, got %T", v)
	}
}

func fromInt(v int64) (Color, error) {
	if v < 0 || v > 0xFFFFFF {
		return "", errors.New(errors.ErrCodeInvalidColor, "color value %d outside 24-bit RGB range", v)
	}
	return FromRGB(int(v)), nil
}

// pairFrom converts a raw [fill, text] slice into a Pair.
func pairFrom(v []any) (Pair, error) {
	if len(v) != 2 {
		return Pair{}, errors.New(errors.ErrCodeInvalidColor, "color pair must have exactly 2 entries, got %d", len(v))
	}
	fill, err := normalize(v[0])
	if err != nil {
		return Pair{}, err
	}
	text, err := normalize(v[1])
	if err != nil {
		return Pair{}, err
	}
	return Pair{Fill: fill, Text: text}, nil
}

// UnmarshalJSON decodes a [fill, text] JSON array, accepting integer
// and string members.
func (p *Pair) UnmarshalJSON(data []byte) error {
	raw, err := decodePairJSON(data)
	if err != nil {
		return err
	}
	pair, err := pairFrom(raw)
	if err != nil {
		return err
	}
	*p = pair
	return nil
}

// UnmarshalTOML decodes a [fill, text] TOML array, accepting integer
// and string members.
func (p *Pair) UnmarshalTOML(v any) error {
	raw, ok := v.([]any)
	if !ok {
		return errors.New(errors.ErrCodeInvalidColor, "color pair must be an array, got %T", v)
	}
	pair, err := pairFrom(raw)
	if err != nil {
		return err
	}
	*p = pair
	return nil
}
