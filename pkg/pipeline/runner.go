package pipeline

import (
	"context"
	"image"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spriteforge/pkg/cache"
	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/imageio"
	"github.com/matzehuels/spriteforge/pkg/observability"
	"github.com/matzehuels/spriteforge/pkg/recolor"
	"github.com/matzehuels/spriteforge/pkg/sprite"
	"github.com/matzehuels/spriteforge/pkg/sprite/synth"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and batch processing use this to avoid duplicating caching
// logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → transform → encode pipeline with
// caching for the file at path.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "read %s", path)
	}
	result.SourceHash = cache.Hash(data)
	result.Stats.InputBytes = len(data)

	// Try cache before decoding (unless refresh requested)
	cacheKey := r.Keyer.ArtifactKey(result.SourceHash, opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			img, err := imageio.Decode(cached)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.Image = img
				result.PNG = cached
				result.Stats.OutputBytes = len(cached)
				result.Stats.LoadTime = time.Since(loadStart)
				result.CacheInfo.ArtifactHit = true
				r.Logger.Debug("cache hit", "path", path, "key", cacheKey)
				return result, nil
			}
			// Corrupt cached artifact - recompute
			_ = r.Cache.Delete(ctx, cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	src, err := imageio.Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Transform
	transformStart := time.Now()
	observability.Pipeline().OnTransformStart(ctx, opts.Operation, path)
	out, err := Transform(src, opts)
	observability.Pipeline().OnTransformComplete(ctx, opts.Operation, path, time.Since(transformStart), err)
	if err != nil {
		return nil, err
	}
	result.Image = out
	result.Stats.TransformTime = time.Since(transformStart)

	r.Logger.Debug("transformed sprite",
		"path", path,
		"operation", opts.Operation,
		"size", out.Bounds().Size(),
		"duration", result.Stats.TransformTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	encoded, err := imageio.Encode(out)
	if err != nil {
		return nil, err
	}
	result.PNG = encoded
	result.Stats.OutputBytes = len(encoded)
	result.Stats.EncodeTime = time.Since(encodeStart)

	if err := r.Cache.Set(ctx, cacheKey, encoded, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(encoded))
	}

	return result, nil
}

// Transform applies the configured operation to a decoded buffer. Callers
// that already hold pixels in memory can use this directly and skip the
// file and cache stages.
func Transform(src *image.NRGBA, opts Options) (*image.NRGBA, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	switch opts.Operation {
	case OperationDiagonal:
		return synth.Synthesize(src, sprite.Direction(opts.Direction), synth.Options{
			Simple: opts.Simple,
			Params: opts.Params,
		})
	case OperationRecolor:
		old, err := recolor.ParseRGBList(opts.OldColors)
		if err != nil {
			return nil, err
		}
		replacement, err := recolor.ParseRGB(opts.NewColor)
		if err != nil {
			return nil, err
		}
		return recolor.Swap(src, old, replacement), nil
	}
	return nil, ValidateOperation(opts.Operation)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
