// Package geom implements the frame geometry engine: the pure pixel-buffer
// transforms used to synthesize diagonal sprite rows.
//
// Every operation takes an *image.NRGBA and returns a freshly allocated
// buffer; inputs are never mutated. All resampling is nearest-neighbor so
// no colors are invented. Out-of-bounds samples become fully transparent
// pixels.
package geom
