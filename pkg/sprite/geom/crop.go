package geom

import (
	"image"
	"image/draw"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/sprite"
)

// ExtractRow crops one cardinal row out of a 4-row sheet. Row height is
// the sheet height divided by four; index selects the band
// [index*rowHeight, (index+1)*rowHeight). The returned buffer is a copy
// with a zero origin.
//
// An out-of-range index is a caller precondition violation and returns an
// INVALID_INPUT error before any pixel work.
func ExtractRow(sheet *image.NRGBA, index int) (*image.NRGBA, error) {
	if index < 0 || index >= sprite.RowCount {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"row index %d out of range [0,%d)", index, sprite.RowCount)
	}

	b := sheet.Bounds()
	rowHeight := b.Dy() / sprite.RowCount
	top := b.Min.Y + index*rowHeight

	row := image.NewNRGBA(image.Rect(0, 0, b.Dx(), rowHeight))
	draw.Draw(row, row.Bounds(), sheet, image.Pt(b.Min.X, top), draw.Src)
	return row, nil
}

// CropFrame cuts the i-th square frame of side size out of a row. Frames
// are laid out left to right with no gaps.
func CropFrame(row *image.NRGBA, i, size int) (*image.NRGBA, error) {
	b := row.Bounds()
	left := i * size
	if i < 0 || left+size > b.Dx() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"frame %d (size %d) out of range for row width %d", i, size, b.Dx())
	}

	frame := image.NewNRGBA(image.Rect(0, 0, size, b.Dy()))
	draw.Draw(frame, frame.Bounds(), row, image.Pt(b.Min.X+left, b.Min.Y), draw.Src)
	return frame, nil
}

// Clone returns a zero-origin copy of img.
func Clone(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
