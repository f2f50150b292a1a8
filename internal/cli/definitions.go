package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/registry"
)

// definitionsOpts holds the command-line flags for the definitions command.
type definitionsOpts struct {
	spritesheets string
	definitions  string
	backupDir    string
	dryRun       bool
}

// definitionsCommand creates the asset definition sync command.
func (c *CLI) definitionsCommand() *cobra.Command {
	opts := definitionsOpts{
		spritesheets: "lpc_generator/spritesheets",
		definitions:  "lpc_generator/sheet_definitions",
		backupDir:    registry.DefaultBackupDir,
	}

	cmd := &cobra.Command{
		Use:   "definitions",
		Short: "Sync JSON asset definitions with sprite files on disk",
		Long: `Scan the spritesheet tree for per-item sprite files and append missing
entries to the matching sheet_definitions JSON files. Every JSON file is
backed up with a timestamp before it is modified.

With --dry-run the command only reports what would be added.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDefinitions(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.spritesheets, "spritesheets", opts.spritesheets, "path to spritesheets directory")
	cmd.Flags().StringVar(&opts.definitions, "definitions", opts.definitions, "path to sheet_definitions directory")
	cmd.Flags().StringVar(&opts.backupDir, "backup-dir", opts.backupDir, "directory for JSON backups")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report missing entries without writing")

	return cmd
}

func (c *CLI) runDefinitions(cmd *cobra.Command, opts *definitionsOpts) error {
	logger := loggerFromContext(cmd.Context())
	printInfo("Scanning sprite sheets and definitions")

	prog := newProgress(logger)
	report, err := registry.Sync(registry.Options{
		SpritesheetDir: opts.spritesheets,
		DefinitionsDir: opts.definitions,
		BackupDir:      opts.backupDir,
		DryRun:         opts.dryRun,
		Logger:         logger,
	})
	if err != nil {
		printError("%s", err)
		return err
	}

	if report.MissingCount() == 0 {
		prog.done("Scan complete")
		printSuccess("All %d items are already registered", report.Items)
		return nil
	}

	categories := make([]string, 0, len(report.Missing))
	for category := range report.Missing {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	if opts.dryRun {
		prog.done("Scan complete")
		printWarning("%d missing entries (dry run, nothing written)", report.MissingCount())
		for _, category := range categories {
			for _, entry := range report.Missing[category] {
				printDetail("%s: %s (%s)", category, entry.Name, entry.Gender)
			}
		}
		return nil
	}

	prog.done("Definitions updated")
	printSuccess("Added %d entries across %d categories", report.MissingCount(), len(report.Updated))
	for _, file := range report.Updated {
		printFile(file)
	}
	if len(report.Backups) > 0 {
		printDetail("Backups in %s", opts.backupDir)
	}
	return nil
}
