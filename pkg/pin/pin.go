// Package pin defines pin-definition documents, the declarative input
// that drives pin-table generation.
//
// A definition file lists pins in order. Each pin carries a label and an
// electrical type, and optionally an assigned usage (an alternate
// function rendered in its own sub-column) and an explicit 1-based pin
// number. Pins without a number are auto-placed by the grid assigner.
//
// Definitions are read-only inputs: nothing downstream mutates them
// after load.
package pin

import (
	"github.com/pingrid/pingrid/pkg/errors"
)

// DefaultColumns is the grid width used when a document does not
// specify one.
const DefaultColumns = 2

// Definition is a single pin to be diagrammed.
type Definition struct {
	// Pin is the pin label, e.g. "GPIO12" or "VDD".
	Pin string `json:"pin" toml:"pin"`

	// Type is the electrical type, e.g. "io" or "power". It selects the
	// name cell's colors.
	Type string `json:"type" toml:"type"`

	// Usage is the optional assigned function, e.g. "SPI0 SCK". A pin
	// without a usage renders only a name cell (optionally spanned).
	Usage *string `json:"usage,omitempty" toml:"usage"`

	// UsageType selects the usage cell's colors. Only consulted when
	// Usage is set, and must then name an entry in the usage color table.
	UsageType *string `json:"usage_type,omitempty" toml:"usage_type"`

	// Number is the optional explicit 1-based pin number. Absent means
	// auto-assign.
	Number *int `json:"pin_number,omitempty" toml:"pin_number"`
}

// HasUsage reports whether the pin declares an assigned usage.
func (d *Definition) HasUsage() bool { return d.Usage != nil }

// HasNumber reports whether the pin requests an explicit position.
func (d *Definition) HasNumber() bool { return d.Number != nil }

// UsageLabel returns the usage text, or "" when absent.
func (d *Definition) UsageLabel() string {
	if d.Usage == nil {
		return ""
	}
	return *d.Usage
}

// UsageTypeName returns the usage type, or "" when absent.
func (d *Definition) UsageTypeName() string {
	if d.UsageType == nil {
		return ""
	}
	return *d.UsageType
}

// Document is the parsed form of a definition file.
type Document struct {
	PinDefinitions []Definition `json:"pin_definitions" toml:"pin_definitions"`

	// Columns is the number of repeated column blocks (default 2).
	Columns int `json:"columns,omitempty" toml:"columns"`

	// Rows is the grid height. Zero means auto: ceil(pins / columns).
	Rows int `json:"rows,omitempty" toml:"rows"`
}

// Validate checks structural requirements before assignment begins.
// It fails with an INVALID_PIN error on the first malformed definition.
func (doc *Document) Validate() error {
	if len(doc.PinDefinitions) == 0 {
		return errors.New(errors.ErrCodeInvalidPin, "no pin definitions")
	}
	if doc.Columns < 0 || doc.Rows < 0 {
		return errors.New(errors.ErrCodeInvalidPin, "columns and rows must not be negative")
	}
	for i := range doc.PinDefinitions {
		d := &doc.PinDefinitions[i]
		if d.Pin == "" {
			return errors.New(errors.ErrCodeInvalidPin, "pin %d: missing pin name", i)
		}
		if d.Type == "" {
			return errors.New(errors.ErrCodeInvalidPin, "pin %q: missing type", d.Pin)
		}
		if d.Number != nil && *d.Number < 1 {
			return errors.New(errors.ErrCodeInvalidPin, "pin %q: pin_number must be >= 1, got %d", d.Pin, *d.Number)
		}
	}
	return nil
}

// GridSize returns the effective grid dimensions: Columns defaulting to
// [DefaultColumns], and Rows defaulting to ceil(pins / columns).
func (doc *Document) GridSize() (cols, rows int) {
	cols = doc.Columns
	if cols <= 0 {
		cols = DefaultColumns
	}
	rows = doc.Rows
	if rows <= 0 {
		rows = (len(doc.PinDefinitions) + cols - 1) / cols
	}
	return cols, rows
}
