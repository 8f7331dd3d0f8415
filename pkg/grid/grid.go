// Package grid assigns pin definitions to cells of the output grid.
//
// # Overview
//
// Assignment happens in two passes over the input order:
//
//  1. Pins carrying an explicit pin number are placed at the position
//     that number derives to. A later pin with the same number silently
//     replaces an earlier one (last writer wins).
//  2. Remaining pins are auto-placed at the first free cell found by a
//     boustrophedon scan: columns left to right, rows top to bottom in
//     even columns and bottom to top in odd columns. The alternating
//     direction keeps consecutively listed pins visually adjacent when
//     the table wraps into multiple columns.
//
// Auto-placement fails with a GRID_FULL error when the scan finds no
// free cell, which aborts table generation entirely.
//
// Assignment is a pure function: inputs are never mutated, and the same
// input always produces the same grid.
package grid

import (
	"cmp"
	"slices"

	"github.com/pingrid/pingrid/pkg/errors"
	"github.com/pingrid/pingrid/pkg/pin"
)

// Position is a zero-based grid coordinate.
type Position struct {
	Column int
	Row    int
}

// Grid maps occupied positions to their pin definitions.
type Grid map[Position]*pin.Definition

// PositionFor derives the position of a 1-based pin number in a grid of
// the given height. Numbers run down each column: number 1 is (0,0),
// number rows+1 is (1,0).
func PositionFor(number, rows int) Position {
	return Position{
		Column: (number - 1) / rows,
		Row:    (number - 1) % rows,
	}
}

// Assign places every pin into a cols x rows grid. Explicitly numbered
// pins are placed first, then the rest are auto-placed in input order.
// The returned grid holds pointers into pins; the slice itself is not
// modified.
func Assign(pins []pin.Definition, cols, rows int) (Grid, error) {
	if cols < 1 || rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidPin, "grid dimensions must be positive, got %dx%d", cols, rows)
	}

	g := make(Grid, len(pins))

	for i := range pins {
		if p := &pins[i]; p.HasNumber() {
			g[PositionFor(*p.Number, rows)] = p
		}
	}

	for i := range pins {
		p := &pins[i]
		if p.HasNumber() {
			continue
		}
		pos, ok := freeCell(g, cols, rows)
		if !ok {
			return nil, errors.New(errors.ErrCodeGridFull, "no free cell for pin %q in %dx%d grid", p.Pin, cols, rows)
		}
		g[pos] = p
	}

	return g, nil
}

// freeCell returns the first unoccupied position in boustrophedon scan
// order, or false when the grid is full.
func freeCell(g Grid, cols, rows int) (Position, bool) {
	for c := 0; c < cols; c++ {
		if c%2 == 0 {
			for r := 0; r < rows; r++ {
				if pos := (Position{c, r}); g[pos] == nil {
					return pos, true
				}
			}
		} else {
			for r := rows - 1; r >= 0; r-- {
				if pos := (Position{c, r}); g[pos] == nil {
					return pos, true
				}
			}
		}
	}
	return Position{}, false
}

// Positions returns the occupied positions in column-major order.
// Renderers iterate this instead of the map so output is deterministic.
func (g Grid) Positions() []Position {
	out := make([]Position, 0, len(g))
	for pos := range g {
		out = append(out, pos)
	}
	slices.SortFunc(out, func(a, b Position) int {
		if c := cmp.Compare(a.Column, b.Column); c != 0 {
			return c
		}
		return cmp.Compare(a.Row, b.Row)
	})
	return out
}
