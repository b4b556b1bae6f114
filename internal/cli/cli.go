// Package cli implements the glyphbrot command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphbrot/internal/config"
	"github.com/matzehuels/glyphbrot/pkg/buildinfo"
	"github.com/matzehuels/glyphbrot/pkg/cache"
	"github.com/matzehuels/glyphbrot/pkg/observability"
	"github.com/matzehuels/glyphbrot/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "glyphbrot"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and server hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Install()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand, it renders one frame to stdout.
func (c *CLI) RootCommand() *cobra.Command {
	var frame frameOpts

	root := &cobra.Command{
		Use:   "glyphbrot [flags]",
		Short: "glyphbrot renders the Mandelbrot set as text",
		Long: `glyphbrot samples a rectangle of the complex plane, counts how many
iterations of z = z² + c each point survives, and prints the result as rows
of glyphs. Denser glyphs mean the point stayed bounded longer.`,
		Example: `  glyphbrot
  glyphbrot -w 160 -i 48 -m 500
  glyphbrot --region seahorse --charset ascii
  glyphbrot -x -0.75 -z -0.74 -y 0.1 -t 0.11 --format json -o frame.json`,
		Version:      buildinfo.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, &frame)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	addFrameFlags(root, &frame)
	addOutputFlags(root, &frame)
	_ = root.RegisterFlagCompletionFunc("region", c.completeRegions)

	// Register all subcommands
	root.AddCommand(c.regionsCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file into c.Config.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPathOrDefault(), "regions", len(cfg.Regions))
	return nil
}

func (c *CLI) configPathOrDefault() string {
	if c.configPath != "" {
		return c.configPath
	}
	return config.DefaultPath()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the given cache backend.
// An unreachable backend degrades to no caching rather than failing the
// command.
func (c *CLI) newRunner(ctx context.Context, backend string) *pipeline.Runner {
	ch := c.openCache(ctx, backend)

	var keyer cache.Keyer
	if prefix := c.Config.Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
	}

	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if c.Config.Cache.TTL > 0 {
		runner.TTL = c.Config.Cache.TTL
	}
	return runner
}

func (c *CLI) openCache(ctx context.Context, backend string) cache.Cache {
	if backend == cache.BackendMemory {
		mem, err := cache.NewMemoryCache(c.Config.Server.MemoryEntries)
		if err == nil {
			return mem
		}
		c.Logger.Warn("memory cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}

	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory", "err", err)
		dir = ""
	}

	ch, err := cache.Open(ctx, backend, dir)
	if err != nil {
		c.Logger.Warn("cache unavailable, caching disabled", "backend", backend, "err", err)
		return cache.NewNullCache()
	}
	c.Logger.Debug("opened cache", "backend", cache.Kind(ch))
	return ch
}

// closeCache closes the runner's cache, logging any failure.
func (c *CLI) closeCache(r *pipeline.Runner) {
	if err := r.Cache.Close(); err != nil {
		c.Logger.Warn("close cache", "err", err)
	}
}
