package geom

import (
	"image"
	"math"
)

// ShearOpts describes the affine slant applied to a buffer.
//
// Horizontal is the slant magnitude along x proportional to y. East-leaning
// output samples at x+h*y; west-leaning negates the term and adds a
// compensating translation of width*h so content stays on canvas.
//
// Vertical is the secondary slant along y proportional to x, distinguishing
// lean-back from lean-forward postures. Up diagonals use the negative term
// with a compensating downward translation of height*v; down diagonals use
// the positive term with no compensation. Zero disables the vertical term
// entirely (the simple/non-blended path).
type ShearOpts struct {
	Horizontal  float64
	Vertical    float64
	EastLeaning bool
	Up          bool
}

// Shear applies the slant described by opts and returns a buffer of the
// same dimensions. Sampling is nearest-neighbor on the inverse-mapped
// source coordinate; samples falling outside the source become fully
// transparent pixels.
func Shear(img *image.NRGBA, opts ShearOpts) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	hx := opts.Horizontal
	htx := 0.0
	if !opts.EastLeaning {
		hx = -opts.Horizontal
		htx = float64(w) * opts.Horizontal
	}

	vy := 0.0
	vty := 0.0
	if opts.Vertical != 0 {
		if opts.Up {
			vy = -opts.Vertical
			vty = float64(h) * opts.Vertical
		} else {
			vy = opts.Vertical
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcX := int(math.Floor(float64(x) + hx*float64(y) + htx))
			srcY := int(math.Floor(float64(y) + vy*float64(x) + vty))
			if srcX < 0 || srcX >= w || srcY < 0 || srcY >= h {
				continue // stays transparent
			}
			si := img.PixOffset(b.Min.X+srcX, b.Min.Y+srcY)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}
