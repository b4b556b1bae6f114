package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/glyphbrot/pkg/cache"
	"github.com/matzehuels/glyphbrot/pkg/errors"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
	"github.com/matzehuels/glyphbrot/pkg/pipeline"
)

// frameOpts holds the command-line flags that describe one frame.
type frameOpts struct {
	iters   int
	width   int
	height  int
	xmin    float64
	xmax    float64
	ymin    float64
	ymax    float64
	region  string
	charset string

	format    string // text or json
	output    string // file path; stdout if empty
	withField bool   // include raw escape values in JSON
	noCache   bool
	refresh   bool
}

// addFrameFlags registers the viewport, resolution and glyph flags.
// The short names match the classic mandelbrot CLI.
func addFrameFlags(cmd *cobra.Command, f *frameOpts) {
	vp := fractal.DefaultViewport
	flags := cmd.Flags()
	flags.IntVarP(&f.iters, "iters", "m", pipeline.DefaultMaxIters, "maximum iterations per point")
	flags.Float64VarP(&f.xmin, "xmin", "x", vp.XMin, "left edge of the viewport (real axis)")
	flags.Float64VarP(&f.xmax, "xmax", "z", vp.XMax, "right edge of the viewport (real axis)")
	flags.Float64VarP(&f.ymin, "ymin", "y", vp.YMin, "top edge of the viewport (imaginary axis)")
	flags.Float64VarP(&f.ymax, "ymax", "t", vp.YMax, "bottom edge of the viewport (imaginary axis)")
	flags.IntVarP(&f.width, "width", "w", pipeline.DefaultWidth, "columns")
	flags.IntVarP(&f.height, "height", "i", pipeline.DefaultHeight, "rows")
	flags.StringVar(&f.region, "region", "", "named viewport, see 'glyphbrot regions' (explicit bounds override it)")
	flags.StringVar(&f.charset, "charset", pipeline.DefaultCharset, "glyph set: unicode, ascii")
	flags.BoolVar(&f.noCache, "no-cache", false, "disable the field cache")
	flags.BoolVar(&f.refresh, "refresh", false, "recompute even if the field is cached")
}

// addOutputFlags registers the flags that control where a frame goes.
func addOutputFlags(cmd *cobra.Command, f *frameOpts) {
	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", pipeline.DefaultFormat, "output format: text, json")
	flags.StringVarP(&f.output, "output", "o", "", "write the frame to a file instead of stdout")
	flags.BoolVar(&f.withField, "field", false, "include raw escape counts in JSON output")
}

// options turns the flags into pipeline options. Flags left at their
// defaults fall back to the config file; bound flags are only set when
// given, so that a region can supply the rest.
func (c *CLI) options(cmd *cobra.Command, f *frameOpts) (pipeline.Options, error) {
	flags := cmd.Flags()
	defaults := c.Config.Defaults

	opts := pipeline.Options{
		Width:     defaults.Width,
		Height:    defaults.Height,
		MaxIters:  defaults.Iters,
		Region:    defaults.Region,
		Charset:   defaults.Charset,
		Format:    f.format,
		WithField: f.withField,
		Refresh:   f.refresh,
		Logger:    c.Logger,
		Regions:   c.Config.RegionTable(),
	}

	if flags.Changed("width") || flags.Changed("height") {
		if flags.Changed("width") {
			opts.Width = f.width
		}
		if flags.Changed("height") {
			opts.Height = f.height
		}
		if err := errors.ValidateResolution(opts.Width, opts.Height); err != nil {
			return opts, err
		}
	}
	if flags.Changed("iters") {
		if err := errors.ValidateIterations(f.iters); err != nil {
			return opts, err
		}
		opts.MaxIters = f.iters
	}
	if flags.Changed("region") {
		opts.Region = f.region
	}
	if flags.Changed("charset") {
		opts.Charset = f.charset
	}

	bounds := []struct {
		name string
		val  float64
		dst  **float64
	}{
		{"xmin", f.xmin, &opts.XMin},
		{"xmax", f.xmax, &opts.XMax},
		{"ymin", f.ymin, &opts.YMin},
		{"ymax", f.ymax, &opts.YMax},
	}
	for _, b := range bounds {
		if flags.Changed(b.name) {
			*b.dst = pipeline.Float(b.val)
		}
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// backend returns the cache backend for a one-shot command.
func (c *CLI) backend(f *frameOpts) string {
	if f.noCache {
		return cache.BackendNone
	}
	return c.Config.Cache.Backend
}

// runRender renders one frame to stdout or --output.
func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, f *frameOpts) error {
	opts, err := c.options(cmd, f)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, c.backend(f))
	defer c.closeCache(runner)

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Computing frame...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	status := iconFresh
	if result.CacheInfo.FieldHit {
		status = iconCached
	}
	prog.done(fmt.Sprintf("Rendered %dx%d frame, %d bounded, %s",
		result.Resolution.Width, result.Resolution.Height, result.Stats.Bounded, status))

	if f.output == "" {
		_, err := cmd.OutOrStdout().Write(result.Artifact)
		return err
	}

	if err := os.WriteFile(f.output, result.Artifact, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.output, err)
	}
	printSuccess("Wrote %s frame", result.Format)
	printFile(f.output)
	return nil
}
