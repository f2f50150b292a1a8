package sprite

import (
	"github.com/matzehuels/spriteforge/pkg/errors"
)

// Direction is a diagonal facing synthesized from two cardinal rows.
type Direction string

// The four diagonal directions.
const (
	NorthEast Direction = "ne"
	NorthWest Direction = "nw"
	SouthEast Direction = "se"
	SouthWest Direction = "sw"
)

// Cardinal row indices within an LPC sheet, top to bottom.
const (
	RowSouth = 0
	RowWest  = 1
	RowNorth = 2
	RowEast  = 3
)

// Directions lists all valid diagonal directions in display order.
var Directions = []Direction{NorthEast, NorthWest, SouthEast, SouthWest}

// ParseDirection converts a user-supplied string into a Direction.
// Valid inputs are exactly "ne", "nw", "se" and "sw" (lowercase).
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case NorthEast, NorthWest, SouthEast, SouthWest:
		return Direction(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidDirection,
		"invalid direction: %q (must be one of: ne, nw, se, sw)", s)
}

// RowPair returns the cardinal row indices blended for this direction.
// The primary row dominates the blend; the secondary contributes a muted
// horizontal cue. The mapping is fixed policy:
//
//	NE → East, North
//	NW → West, North
//	SE → East, South
//	SW → West, South
func (d Direction) RowPair() (primary, secondary int) {
	switch d {
	case NorthEast:
		return RowEast, RowNorth
	case NorthWest:
		return RowWest, RowNorth
	case SouthEast:
		return RowEast, RowSouth
	default: // SouthWest
		return RowWest, RowSouth
	}
}

// EastLeaning reports whether the direction slants content to the east
// (positive horizontal shear). West-leaning directions use the negative
// shear with a compensating translation.
func (d Direction) EastLeaning() bool {
	return d == NorthEast || d == SouthEast
}

// Up reports whether the direction faces away from the viewer. Up
// diagonals lean back (negative vertical skew); down diagonals lean
// forward.
func (d Direction) Up() bool {
	return d == NorthEast || d == NorthWest
}

// String returns the lowercase direction token.
func (d Direction) String() string {
	return string(d)
}
