// Package batch drives the processing pipeline over directory trees.
//
// A run recursively discovers PNG files under the input directory, applies
// the configured pipeline operation to each, and writes the results to
// mirrored relative paths under the output directory with a marker suffix
// in the filename. Per-file data errors (undecodable files, unexpected
// layouts) are logged and skipped so one bad asset never aborts a run;
// only invalid options and context cancellation stop it.
package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/imageio"
	"github.com/matzehuels/spriteforge/pkg/observability"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

// Options configures a batch run.
type Options struct {
	// InputDir is the root searched recursively for .png files.
	InputDir string

	// OutputDir is the root the mirrored output tree is written under.
	OutputDir string

	// Suffix is inserted before the file extension of every output.
	// Empty means "_" plus the operation name, e.g. "_diagonal".
	Suffix string

	// Workers bounds concurrent file processing. Zero means one worker
	// per CPU.
	Workers int

	// Pipeline is the per-file transform configuration.
	Pipeline pipeline.Options
}

// Report summarizes a completed run.
type Report struct {
	Processed int
	Skipped   int
	CacheHits int
	Duration  time.Duration
}

// Processor executes batch runs against a shared pipeline runner.
type Processor struct {
	Runner *pipeline.Runner
	Logger *log.Logger
}

// NewProcessor creates a batch processor. A nil logger falls back to the
// runner's logger.
func NewProcessor(runner *pipeline.Runner, logger *log.Logger) *Processor {
	if logger == nil {
		logger = runner.Logger
	}
	return &Processor{Runner: runner, Logger: logger}
}

// Run processes every PNG under opts.InputDir. Option validation failures
// abort before any file is touched; per-file failures are logged, counted
// as skipped and do not stop the run.
func (p *Processor) Run(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.Pipeline.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.InputDir == "" || opts.OutputDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input and output directories are required")
	}

	suffix := opts.Suffix
	if suffix == "" {
		suffix = "_" + opts.Pipeline.Operation
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, err := Discover(opts.InputDir)
	if err != nil {
		return nil, err
	}
	p.Logger.Info("starting batch run",
		"files", len(files),
		"workers", workers,
		"operation", opts.Pipeline.Operation)
	observability.Batch().OnBatchStart(ctx, len(files), workers)

	start := time.Now()
	var processed, skipped, cacheHits atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outPath, err := outputPath(opts.InputDir, opts.OutputDir, path, suffix)
			if err != nil {
				p.Logger.Warn("skipping file", "path", path, "error", err)
				skipped.Add(1)
				return nil
			}

			result, err := p.Runner.Execute(gctx, path, opts.Pipeline)
			if err != nil {
				p.Logger.Warn("skipping file", "path", path, "error", err)
				skipped.Add(1)
				return nil
			}
			if result.CacheInfo.ArtifactHit {
				cacheHits.Add(1)
			}

			if err := imageio.Save(result.Image, outPath); err != nil {
				p.Logger.Warn("skipping file", "path", path, "error", err)
				skipped.Add(1)
				return nil
			}

			p.Logger.Debug("processed file", "input", path, "output", outPath)
			processed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Processed: int(processed.Load()),
		Skipped:   int(skipped.Load()),
		CacheHits: int(cacheHits.Load()),
		Duration:  time.Since(start),
	}
	p.Logger.Info("batch run complete",
		"processed", report.Processed,
		"skipped", report.Skipped,
		"cache_hits", report.CacheHits,
		"duration", report.Duration)
	observability.Batch().OnBatchComplete(ctx, report.Processed, report.Skipped, report.Duration)
	return report, nil
}

// Discover returns every .png file under root in lexical walk order.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input directory %s", root)
		}
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "stat %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".png") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "walk %s", root)
	}
	return files, nil
}

// outputPath mirrors path's location relative to inputDir under outputDir
// and inserts suffix before the extension.
func outputPath(inputDir, outputDir, path, suffix string) (string, error) {
	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "relativize %s", path)
	}
	if err := errors.ValidateRelativePath(filepath.ToSlash(rel)); err != nil {
		return "", err
	}
	ext := filepath.Ext(rel)
	rel = rel[:len(rel)-len(ext)] + suffix + ext
	return filepath.Join(outputDir, rel), nil
}
