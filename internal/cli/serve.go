package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphbrot/internal/server"
	"github.com/matzehuels/glyphbrot/pkg/cache"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		backend  string
		maxCells int
		maxIters int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve frames over HTTP",
		Long: `Serve frames over HTTP until interrupted.

Endpoints:
  GET /healthz
  GET /version
  GET /regions
  GET /regions/{name}
  GET /frame?region=seahorse&width=80&height=24&iters=500&format=text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("cache") {
				cfg.Cache = backend
			}
			if flags.Changed("max-cells") {
				cfg.MaxCells = maxCells
			}
			if flags.Changed("max-iters") {
				cfg.MaxIters = maxIters
			}
			if cfg.Cache == "" {
				cfg.Cache = cache.BackendMemory
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner := c.newRunner(ctx, cfg.Cache)
			defer c.closeCache(runner)

			srv := server.New(server.Config{
				Addr:         cfg.Addr,
				MaxCells:     cfg.MaxCells,
				MaxIters:     cfg.MaxIters,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			}, runner, c.Config.RegionTable(), logger)

			printInfo("Serving frames on %s", StyleLink.Render(displayURL(cfg.Addr)))
			printKeyValue("cache", cache.Kind(runner.Cache))
			printKeyValue("max cells", limitString(cfg.MaxCells))
			printKeyValue("max iters", limitString(cfg.MaxIters))
			printNextStep("Try", fmt.Sprintf("curl '%s/frame?region=seahorse&width=80'", displayURL(cfg.Addr)))

			return srv.Run(ctx)
		},
	}

	d := c.Config.Server
	cmd.Flags().StringVar(&addr, "addr", d.Addr, "listen address")
	cmd.Flags().StringVar(&backend, "cache", d.Cache, "cache backend: none, memory, file, redis://..., mongodb://...")
	cmd.Flags().IntVar(&maxCells, "max-cells", d.MaxCells, "largest frame in cells (0 disables)")
	cmd.Flags().IntVar(&maxIters, "max-iters", d.MaxIters, "largest iteration limit (0 disables)")
	return cmd
}

// displayURL turns a listen address into something clickable.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func limitString(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return fmt.Sprint(n)
}
