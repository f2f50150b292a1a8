package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/spriteforge/pkg/config"
	"github.com/matzehuels/spriteforge/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	dir        string
	addr       string
	configPath string
}

// serveCommand creates the local preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{dir: "lpc_generator"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the asset directory for browser preview",
		Long: `Host the generator asset directory over HTTP so the browser-based
character generator can load sprite sheets and definitions locally.
The server runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", opts.dir, "directory to serve")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to spriteforge.toml")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	srv, err := server.New(server.Options{
		Addr:   addr,
		Dir:    opts.dir,
		Logger: logger,
	})
	if err != nil {
		printError("%s", err)
		return err
	}

	printInfo("Serving %s on %s", opts.dir, addr)
	printDetail("http://localhost%s/", addr)
	return srv.ListenAndServe(cmd.Context())
}
