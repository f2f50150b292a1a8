package geom

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// Squash compresses a buffer horizontally to floor(width*factor), height
// unchanged, using nearest-neighbor resampling. factor must be in (0,1];
// factor 1 returns an unmodified copy. The floor rule makes repeated
// squashing reproducible: Squash(Squash(x, f), 1) == Squash(x, f).
func Squash(img *image.NRGBA, factor float64) (*image.NRGBA, error) {
	if factor <= 0 || factor > 1 {
		return nil, errors.New(errors.ErrCodeInvalidParams,
			"squash factor must be in (0,1], got %g", factor)
	}

	b := img.Bounds()
	newWidth := int(float64(b.Dx()) * factor)
	if newWidth < 1 {
		newWidth = 1
	}
	if newWidth == b.Dx() {
		return Clone(img), nil
	}

	out := image.NewNRGBA(image.Rect(0, 0, newWidth, b.Dy()))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out, nil
}
