// Package recolor implements flat palette substitution: replacing a set of
// exact RGB colors in a sprite with a new color while preserving alpha.
package recolor

import (
	"image"
	"strconv"
	"strings"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/sprite/geom"
)

// RGB is an explicit 8-bit color triple. Alpha is deliberately absent:
// substitution matches and replaces color channels only.
type RGB struct {
	R, G, B uint8
}

// ParseRGB parses a "r,g,b" string with each component in [0,255].
func ParseRGB(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, errors.New(errors.ErrCodeInvalidColor,
			"invalid color %q (expected \"r,g,b\")", s)
	}

	var vals [3]uint8
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return RGB{}, errors.New(errors.ErrCodeInvalidColor,
				"invalid color component %q in %q (expected integer 0-255)", part, s)
		}
		vals[i] = uint8(n)
	}
	return RGB{R: vals[0], G: vals[1], B: vals[2]}, nil
}

// ParseRGBList parses multiple "r,g,b" strings.
func ParseRGBList(specs []string) ([]RGB, error) {
	if len(specs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidColor, "at least one color is required")
	}
	colors := make([]RGB, 0, len(specs))
	for _, s := range specs {
		c, err := ParseRGB(s)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

// String returns the "r,g,b" form.
func (c RGB) String() string {
	return strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B))
}

// Swap returns a copy of img with every pixel whose color channels match
// one of old replaced by replacement. The pixel's alpha is kept as-is, so
// shading carried in transparency survives the recolor.
func Swap(img *image.NRGBA, old []RGB, replacement RGB) *image.NRGBA {
	match := make(map[RGB]bool, len(old))
	for _, c := range old {
		match[c] = true
	}

	out := geom.Clone(img)
	for i := 0; i < len(out.Pix); i += 4 {
		c := RGB{R: out.Pix[i], G: out.Pix[i+1], B: out.Pix[i+2]}
		if match[c] {
			out.Pix[i] = replacement.R
			out.Pix[i+1] = replacement.G
			out.Pix[i+2] = replacement.B
		}
	}
	return out
}
