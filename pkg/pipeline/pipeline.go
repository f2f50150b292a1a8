// Package pipeline provides the core processing pipeline for Spriteforge.
//
// This package implements the complete load → transform → encode pipeline
// that can be used by the CLI and batch components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and decode the source sprite sheet
//  2. Transform: Synthesize a diagonal row or recolor the sheet
//  3. Encode: Serialize the result as PNG
//
// Transformed outputs are cached keyed by the source content hash plus the
// full option set, so re-running over unchanged inputs is cheap.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Operation: pipeline.OperationDiagonal,
//	    Direction: "ne",
//	}
//	result, err := runner.Execute(ctx, "hero.png", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
package pipeline

import (
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spriteforge/pkg/cache"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/sprite"
)

// Operation constants for the transform stage.
const (
	OperationDiagonal = "diagonal"
	OperationRecolor  = "recolor"
)

// ValidOperations is the set of supported operations.
var ValidOperations = map[string]bool{
	OperationDiagonal: true,
	OperationRecolor:  true,
}

// Options contains all configuration for the processing pipeline.
// This struct supports JSON serialization for config files and tooling.
type Options struct {
	// Operation selects the transform: diagonal or recolor.
	Operation string `json:"operation"`

	// Diagonal options
	Direction string        `json:"direction,omitempty"`
	Simple    bool          `json:"simple,omitempty"`
	Params    sprite.Params `json:"params,omitempty"`

	// Recolor options
	OldColors []string `json:"old_colors,omitempty"`
	NewColor  string   `json:"new_color,omitempty"`

	// Refresh bypasses the cache and recomputes the output.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Image is the transformed pixel buffer.
	Image *image.NRGBA

	// PNG is the encoded output.
	PNG []byte

	// SourceHash is the content hash of the input file.
	SourceHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the output came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputBytes    int
	OutputBytes   int
	LoadTime      time.Duration
	TransformTime time.Duration
	EncodeTime    time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	ArtifactHit bool // Whether the output came from cache
}

// ValidateOperation checks that an operation is valid.
func ValidateOperation(op string) error {
	if !ValidOperations[op] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid operation: %q (must be one of: diagonal, recolor)", op)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateOperation(o.Operation); err != nil {
		return err
	}

	switch o.Operation {
	case OperationDiagonal:
		if _, err := sprite.ParseDirection(o.Direction); err != nil {
			return err
		}
		if o.Params == (sprite.Params{}) {
			o.Params = sprite.DefaultParams()
		}
		if err := o.Params.Validate(); err != nil {
			return err
		}
	case OperationRecolor:
		if len(o.OldColors) == 0 {
			return errors.New(errors.ErrCodeInvalidColor, "at least one old color is required")
		}
		if o.NewColor == "" {
			return errors.New(errors.ErrCodeInvalidColor, "new color is required")
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for the transformed output.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Operation:  o.Operation,
		Direction:  o.Direction,
		Simple:     o.Simple,
		Squash:     o.Params.SquashFactor,
		Shear:      o.Params.ShearAmount,
		Skew:       o.Params.VerticalSkew,
		BlendRatio: o.Params.BlendRatio,
		OldColors:  o.OldColors,
		NewColor:   o.NewColor,
	}
}
