package sprite

import (
	"github.com/matzehuels/spriteforge/pkg/errors"
)

// Default transform parameters for diagonal synthesis.
const (
	// DefaultSquashFactor is the horizontal compression applied before
	// shearing to approximate foreshortening.
	DefaultSquashFactor = 0.85

	// DefaultShearAmount is the horizontal slant magnitude. 0.15 keeps
	// paper-doll layers aligned across the standard LPC asset set.
	DefaultShearAmount = 0.15

	// DefaultVerticalSkew is the small vertical slant distinguishing
	// lean-back (away-facing) from lean-forward (toward-facing) postures.
	DefaultVerticalSkew = 0.04

	// DefaultBlendRatio is the weight of the primary row's contribution
	// when blending the cardinal pair.
	DefaultBlendRatio = 0.65
)

// Params holds the tunable constants for diagonal synthesis. They are
// passed explicitly into the synthesizer rather than read from globals so
// tests can vary them deterministically.
type Params struct {
	SquashFactor float64 `toml:"squash"`
	ShearAmount  float64 `toml:"shear"`
	VerticalSkew float64 `toml:"skew"`
	BlendRatio   float64 `toml:"blend_ratio"`
}

// DefaultParams returns the standard parameter set.
func DefaultParams() Params {
	return Params{
		SquashFactor: DefaultSquashFactor,
		ShearAmount:  DefaultShearAmount,
		VerticalSkew: DefaultVerticalSkew,
		BlendRatio:   DefaultBlendRatio,
	}
}

// Validate checks that all parameters are within their documented ranges:
// squash in (0,1], blend ratio in [0,1], shear and skew non-negative.
func (p Params) Validate() error {
	if p.SquashFactor <= 0 || p.SquashFactor > 1 {
		return errors.New(errors.ErrCodeInvalidParams,
			"squash factor must be in (0,1], got %g", p.SquashFactor)
	}
	if p.BlendRatio < 0 || p.BlendRatio > 1 {
		return errors.New(errors.ErrCodeInvalidParams,
			"blend ratio must be in [0,1], got %g", p.BlendRatio)
	}
	if p.ShearAmount < 0 {
		return errors.New(errors.ErrCodeInvalidParams,
			"shear amount must be non-negative, got %g", p.ShearAmount)
	}
	if p.VerticalSkew < 0 {
		return errors.New(errors.ErrCodeInvalidParams,
			"vertical skew must be non-negative, got %g", p.VerticalSkew)
	}
	return nil
}
