package geom

import (
	"image"
	"image/draw"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// CenterOnCanvas alpha-composites frame onto a fresh transparent square
// canvas of the given side, horizontally centered (integer division) and
// flush with the top edge. The frame's alpha acts as the paste mask:
// transparent source pixels leave the canvas untouched.
func CenterOnCanvas(frame *image.NRGBA, size int) (*image.NRGBA, error) {
	b := frame.Bounds()
	if b.Dx() > size || b.Dy() > size {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"frame %dx%d does not fit canvas %d", b.Dx(), b.Dy(), size)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	xOff := (size - b.Dx()) / 2
	dst := image.Rect(xOff, 0, xOff+b.Dx(), b.Dy())
	draw.Draw(canvas, dst, frame, b.Min, draw.Over)
	return canvas, nil
}

// PasteAt alpha-composites src into dst with its top-left corner at
// (x, y). dst is mutated; it is the one buffer in the engine a caller
// owns as an assembly target rather than a transform input.
func PasteAt(dst *image.NRGBA, src *image.NRGBA, x, y int) {
	sb := src.Bounds()
	target := image.Rect(x, y, x+sb.Dx(), y+sb.Dy()).Intersect(dst.Bounds())
	draw.Draw(dst, target, src, sb.Min, draw.Over)
}
