package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/spriteforge/pkg/batch"
	"github.com/matzehuels/spriteforge/pkg/imageio"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

// runSingle processes one source file and writes the result to output.
func (c *CLI) runSingle(ctx context.Context, runner *pipeline.Runner, source, output string, opts pipeline.Options, doneMsg string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, source, opts)
	if err != nil {
		printError("%s", err)
		return err
	}
	if err := imageio.Save(result.Image, output); err != nil {
		printError("%s", err)
		return err
	}
	prog.done(doneMsg)

	size := result.Image.Bounds().Size()
	printSuccess("%s", doneMsg)
	printFile(output)
	printFrameStats(size.X, size.Y, result.CacheInfo.ArtifactHit)
	return nil
}

// runBatchDir processes every PNG under source into output.
func (c *CLI) runBatchDir(ctx context.Context, runner *pipeline.Runner, source, output string, workers int, opts pipeline.Options, spinMsg string) error {
	logger := loggerFromContext(ctx)
	proc := batch.NewProcessor(runner, logger)

	sp := newSpinnerWithContext(ctx, spinMsg+"...")
	sp.Start()

	report, err := proc.Run(ctx, batch.Options{
		InputDir:  source,
		OutputDir: output,
		Workers:   workers,
		Pipeline:  opts,
	})
	if err != nil {
		if sp.Cancelled() {
			sp.StopWithError("Cancelled")
		} else {
			sp.StopWithError(err.Error())
		}
		return err
	}
	sp.StopWithSuccess(fmt.Sprintf("Processed %d files (%s)",
		report.Processed, report.Duration.Round(time.Millisecond)))

	if report.Skipped > 0 {
		printWarning("Skipped %d files, see log for details", report.Skipped)
	}
	printFile(output)
	printBatchStats(report.Processed, report.Skipped, report.CacheHits)
	return nil
}
