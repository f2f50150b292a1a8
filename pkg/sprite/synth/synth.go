// Package synth implements the diagonal synthesis orchestrator. It decides
// how a source buffer is interpreted (4-row LPC sheet or legacy single
// row), selects the cardinal row pair for the requested diagonal, and
// drives the geometry engine frame by frame to assemble the output row.
package synth

import (
	"image"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/sprite"
	"github.com/matzehuels/spriteforge/pkg/sprite/geom"
)

// Options configures a synthesis run.
type Options struct {
	// Simple selects the minimal single-row path: one cardinal row,
	// squashed and sheared whole, with no per-frame blending and no
	// vertical skew. The default (false) is the canonical frame-aware
	// blended path.
	Simple bool

	// Params are the transform tunables. Zero value means defaults.
	Params sprite.Params
}

// Synthesize produces one diagonal-facing row from a source buffer.
//
// Conforming 4-row sheets take either the blended path (canonical) or the
// simple path per opts. Buffers failing the layout test are treated as a
// single generic row and receive one whole-buffer shear; that path never
// errors. An unrecognized direction is rejected before any pixel work.
//
// For the blended path the output row has exactly the width, height, frame
// size and frame order of the source's primary cardinal row, so animation
// frame indices stay aligned for paper-doll layering.
func Synthesize(sheet *image.NRGBA, dir sprite.Direction, opts Options) (*image.NRGBA, error) {
	if _, err := sprite.ParseDirection(string(dir)); err != nil {
		return nil, err
	}

	p := opts.Params
	if p == (sprite.Params{}) {
		p = sprite.DefaultParams()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if !sprite.IsMultiRow(sheet) {
		return shearWhole(sheet, dir, p), nil
	}

	if opts.Simple {
		return synthesizeSimple(sheet, dir, p)
	}
	return synthesizeBlended(sheet, dir, p)
}

// shearWhole is the fallback for non-conforming buffers: a single
// horizontal shear over the entire image, no squash, no blending, no
// frame slicing.
func shearWhole(img *image.NRGBA, dir sprite.Direction, p sprite.Params) *image.NRGBA {
	return geom.Shear(img, geom.ShearOpts{
		Horizontal:  p.ShearAmount,
		EastLeaning: dir.EastLeaning(),
	})
}

// synthesizeSimple extracts one cardinal row (East for NE/SE, West for
// NW/SW), squashes it and shears it as a whole. It carries no vertical
// skew, so NE/SE share one result shape and NW/SW the mirrored other.
func synthesizeSimple(sheet *image.NRGBA, dir sprite.Direction, p sprite.Params) (*image.NRGBA, error) {
	index := sprite.RowWest
	if dir.EastLeaning() {
		index = sprite.RowEast
	}

	row, err := geom.ExtractRow(sheet, index)
	if err != nil {
		return nil, err
	}
	squashed, err := geom.Squash(row, p.SquashFactor)
	if err != nil {
		return nil, err
	}
	return geom.Shear(squashed, geom.ShearOpts{
		Horizontal:  p.ShearAmount,
		EastLeaning: dir.EastLeaning(),
	}), nil
}

// synthesizeBlended is the canonical path: per animation frame, squash and
// shear the primary and secondary cardinal frames, blend them with the
// primary dominant, and re-center the result on a transparent canvas at
// the frame's original offset.
//
// The secondary frame gets half the shear and no vertical skew; it only
// contributes a muted horizontal cue.
func synthesizeBlended(sheet *image.NRGBA, dir sprite.Direction, p sprite.Params) (*image.NRGBA, error) {
	primaryIdx, secondaryIdx := dir.RowPair()

	primaryRow, err := geom.ExtractRow(sheet, primaryIdx)
	if err != nil {
		return nil, err
	}
	secondaryRow, err := geom.ExtractRow(sheet, secondaryIdx)
	if err != nil {
		return nil, err
	}

	frameSize := primaryRow.Bounds().Dy()
	rowWidth := primaryRow.Bounds().Dx()
	if frameSize == 0 || rowWidth%frameSize != 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout,
			"row width %d is not a multiple of frame size %d (frames must be square)",
			rowWidth, frameSize)
	}
	frameCount := rowWidth / frameSize

	out := image.NewNRGBA(image.Rect(0, 0, rowWidth, frameSize))
	for i := 0; i < frameCount; i++ {
		frame, err := synthesizeFrame(primaryRow, secondaryRow, i, frameSize, dir, p)
		if err != nil {
			return nil, err
		}
		geom.PasteAt(out, frame, i*frameSize, 0)
	}
	return out, nil
}

// synthesizeFrame transforms and blends one frame pair. Frames are
// independent, so any processing order produces the same output.
func synthesizeFrame(primaryRow, secondaryRow *image.NRGBA, i, frameSize int, dir sprite.Direction, p sprite.Params) (*image.NRGBA, error) {
	primary, err := geom.CropFrame(primaryRow, i, frameSize)
	if err != nil {
		return nil, err
	}
	secondary, err := geom.CropFrame(secondaryRow, i, frameSize)
	if err != nil {
		return nil, err
	}

	primary, err = geom.Squash(primary, p.SquashFactor)
	if err != nil {
		return nil, err
	}
	secondary, err = geom.Squash(secondary, p.SquashFactor)
	if err != nil {
		return nil, err
	}

	primary = geom.Shear(primary, geom.ShearOpts{
		Horizontal:  p.ShearAmount,
		Vertical:    p.VerticalSkew,
		EastLeaning: dir.EastLeaning(),
		Up:          dir.Up(),
	})
	secondary = geom.Shear(secondary, geom.ShearOpts{
		Horizontal:  p.ShearAmount / 2,
		EastLeaning: dir.EastLeaning(),
	})

	blended, err := geom.Blend(secondary, primary, p.BlendRatio)
	if err != nil {
		return nil, err
	}
	return geom.CenterOnCanvas(blended, frameSize)
}
