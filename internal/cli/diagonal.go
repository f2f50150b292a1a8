package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
	"github.com/matzehuels/spriteforge/pkg/sprite"
)

// diagonalOpts holds the command-line flags for the diagonal command.
type diagonalOpts struct {
	direction  string  // diagonal facing to synthesize
	simple     bool    // single-row path without blending
	squash     float64 // horizontal compression factor
	shear      float64 // horizontal slant magnitude
	skew       float64 // vertical slant magnitude
	blendRatio float64 // primary row weight in the blend
	workers    int     // batch concurrency
	noCache    bool    // disable the artifact cache
	refresh    bool    // recompute even on cache hit
	configPath string  // explicit spriteforge.toml path
}

// diagonalCommand creates the diagonal synthesis command. A directory
// source processes every PNG underneath it; a file source writes a single
// output row.
func (c *CLI) diagonalCommand() *cobra.Command {
	opts := diagonalOpts{
		squash:     sprite.DefaultSquashFactor,
		shear:      sprite.DefaultShearAmount,
		skew:       sprite.DefaultVerticalSkew,
		blendRatio: sprite.DefaultBlendRatio,
	}

	cmd := &cobra.Command{
		Use:   "diagonal <source> <output>",
		Short: "Synthesize a diagonal-facing sprite row",
		Long: `Synthesize a diagonal-facing walk row from an LPC sprite sheet.

The source sheet must stack the four cardinal rows south, west, north,
east top to bottom. The requested diagonal is built by squashing,
shearing and blending the matching cardinal pair frame by frame.

A directory source processes every .png beneath it and mirrors the tree
under the output directory with a _diagonal filename suffix.

Examples:
  spriteforge diagonal hero.png hero_ne.png --direction ne
  spriteforge diagonal hero.png hero_se.png -d se --simple
  spriteforge diagonal spritesheets/ out/ -d nw --workers 8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiagonal(cmd, args[0], args[1], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "diagonal direction: ne, nw, se, sw")
	cmd.Flags().BoolVar(&opts.simple, "simple", false, "single-row mode without blending or skew")
	cmd.Flags().Float64Var(&opts.squash, "squash", opts.squash, "horizontal squash factor (0,1]")
	cmd.Flags().Float64Var(&opts.shear, "shear", opts.shear, "horizontal shear amount")
	cmd.Flags().Float64Var(&opts.skew, "skew", opts.skew, "vertical skew amount")
	cmd.Flags().Float64Var(&opts.blendRatio, "blend-ratio", opts.blendRatio, "primary row blend weight [0,1]")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "batch workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute outputs even when cached")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to spriteforge.toml")
	_ = cmd.MarkFlagRequired("direction")

	return cmd
}

// runDiagonal resolves config and flags into pipeline options and
// dispatches to single-file or batch processing.
func (c *CLI) runDiagonal(cmd *cobra.Command, source, output string, opts *diagonalOpts) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Explicit flags override config file values.
	params := cfg.Diagonal
	flags := cmd.Flags()
	if flags.Changed("squash") {
		params.SquashFactor = opts.squash
	}
	if flags.Changed("shear") {
		params.ShearAmount = opts.shear
	}
	if flags.Changed("skew") {
		params.VerticalSkew = opts.skew
	}
	if flags.Changed("blend-ratio") {
		params.BlendRatio = opts.blendRatio
	}
	workers := cfg.Batch.Workers
	if flags.Changed("workers") {
		workers = opts.workers
	}

	popts := pipeline.Options{
		Operation: pipeline.OperationDiagonal,
		Direction: strings.ToLower(opts.direction),
		Simple:    opts.simple,
		Params:    params,
		Refresh:   opts.refresh,
		Logger:    logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		printError("%s", err)
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return c.runBatchDir(cmd.Context(), runner, source, output, workers, popts,
			fmt.Sprintf("Synthesizing %s rows", popts.Direction))
	}
	return c.runSingle(cmd.Context(), runner, source, output, popts,
		fmt.Sprintf("Synthesized %s row", popts.Direction))
}
