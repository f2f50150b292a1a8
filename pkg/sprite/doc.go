// Package sprite defines the LPC sprite-sheet model shared by the geometry
// engine and the diagonal synthesizer.
//
// An LPC sheet stacks four equal-height cardinal animation rows top to
// bottom in the order South, West, North, East. Each row is a horizontal
// strip of square animation frames whose side length equals the row height.
//
// The package provides:
//   - Direction: the four diagonal facings and their cardinal row pairs
//   - Params: the tunable transform parameters for diagonal synthesis
//   - IsMultiRow: the layout recognition predicate
package sprite
