package sprite

import (
	"image"
)

// Layout recognition thresholds for multi-row LPC sheets.
const (
	// RowCount is the number of stacked cardinal rows in an LPC sheet.
	RowCount = 4

	// MinSheetHeight is the minimum height for a buffer to be treated as
	// a 4-row sheet. Anything shorter would yield rows under 64px, below
	// a viable frame size, so it is handled as a single legacy row.
	MinSheetHeight = 256
)

// IsMultiRow reports whether img is recognized as a 4-row LPC sprite
// sheet: height divisible by four and at least MinSheetHeight. Buffers
// failing the test take the whole-buffer fallback path in synthesis.
func IsMultiRow(img image.Image) bool {
	h := img.Bounds().Dy()
	return h%RowCount == 0 && h >= MinSheetHeight
}
