// Package cli implements the spriteforge command-line interface.
//
// This package provides commands for synthesizing diagonal-facing sprite
// rows from LPC sprite sheets, recoloring sheets, keeping JSON asset
// definitions in sync and serving the asset tree for browser preview. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - diagonal: Synthesize NE/NW/SE/SW rows from a sheet or directory
//   - recolor: Replace flat palette colors across sheets
//   - definitions: Sync sheet_definitions JSON files with sprite files
//   - serve: Host the asset tree locally
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/buildinfo"
	"github.com/matzehuels/spriteforge/pkg/cache"
	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "spriteforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "spriteforge",
		Short:        "Spriteforge synthesizes diagonal sprite rows for LPC sheets",
		Long:         `Spriteforge is a CLI tool for LPC-style sprite sheets: it synthesizes the four diagonal walk rows (NE, NW, SE, SW) from the standard four cardinal rows, recolors flat palettes, and keeps generator asset definitions in sync.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.diagonalCommand())
	root.AddCommand(c.recolorCommand())
	root.AddCommand(c.definitionsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	artifactCache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(artifactCache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/spriteforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
