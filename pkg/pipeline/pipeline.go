// Package pipeline provides the frame pipeline for glyphbrot.
//
// This package implements the complete validate → compute → render pipeline
// used by both the CLI and the HTTP server. By centralizing this logic, both
// entry points apply the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compute: Sample the viewport and build the escape field (cached)
//  2. Render: Quantize the field into glyph lines and encode the artifact
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Region:   "seahorse",
//	    MaxIters: 500,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifact)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphbrot/pkg/cache"
	"github.com/matzehuels/glyphbrot/pkg/errors"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
	"github.com/matzehuels/glyphbrot/pkg/render/glyph"
	"github.com/matzehuels/glyphbrot/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultMaxIters is the default iteration limit per point.
	DefaultMaxIters = 1000

	// DefaultWidth is the default number of columns.
	DefaultWidth = 100

	// DefaultHeight is the default number of rows.
	DefaultHeight = 24

	// DefaultCharset is the default glyph set.
	DefaultCharset = glyph.CharsetUnicode

	// DefaultFormat is the default output format.
	DefaultFormat = sink.FormatText
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one frame.
// This struct supports JSON serialization for API requests.
//
// Viewport bounds are pointers so that "not given" can be told apart from
// zero. A bound resolves to, in order: the explicit value, the named Region's
// bound, then [fractal.DefaultViewport]'s bound.
type Options struct {
	XMin     *float64 `json:"xmin,omitempty"`
	XMax     *float64 `json:"xmax,omitempty"`
	YMin     *float64 `json:"ymin,omitempty"`
	YMax     *float64 `json:"ymax,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	MaxIters int      `json:"max_iters,omitempty"`
	Region   string   `json:"region,omitempty"`

	Charset   string `json:"charset,omitempty"`
	Format    string `json:"format,omitempty"`
	WithField bool   `json:"with_field,omitempty"` // include raw escape values in JSON output
	Refresh   bool   `json:"refresh,omitempty"`    // bypass cache lookup

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Regions *fractal.Regions `json:"-"` // region table; built-ins if nil

	viewport  fractal.Viewport
	table     *glyph.Table
	validated bool
}

// Float returns a pointer to v, for filling Options bounds.
func Float(v float64) *float64 { return &v }

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID uniquely identifies this run.
	ID string

	// Viewport, Resolution and MaxIters are the resolved inputs.
	Viewport   fractal.Viewport
	Resolution fractal.Resolution
	MaxIters   int

	// Field is the computed escape field.
	Field fractal.Field

	// Lines are the rendered glyph rows, top to bottom.
	Lines []string

	// Artifact is the encoded output in Format.
	Artifact []byte
	Format   string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the field came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells       int
	Bounded     int
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FieldHit bool // Whether the field came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !sink.ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults, resolves the region and charset,
// and checks every input. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	vp, err := o.resolveViewport()
	if err != nil {
		return err
	}
	if err := errors.ValidateViewport(vp.XMin, vp.XMax, vp.YMin, vp.YMax); err != nil {
		return err
	}
	if err := errors.ValidateResolution(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateIterations(o.MaxIters); err != nil {
		return err
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	table, err := glyph.Lookup(o.Charset)
	if err != nil {
		return err
	}

	o.viewport = vp
	o.table = table
	o.validated = true
	return nil
}

// SetDefaults fills zero-valued fields. It does not touch bounds.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MaxIters == 0 {
		o.MaxIters = DefaultMaxIters
	}
	if o.Charset == "" {
		o.Charset = DefaultCharset
	}
	o.Charset = strings.ToLower(o.Charset)
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Regions == nil {
		o.Regions = fractal.NewRegions()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) resolveViewport() (fractal.Viewport, error) {
	vp := fractal.DefaultViewport
	if o.Region != "" {
		reg, ok := o.Regions.Lookup(o.Region)
		if !ok {
			return vp, errors.New(errors.ErrCodeInvalidRegion, "unknown region %q (must be one of: %s)",
				o.Region, strings.Join(o.Regions.Names(), ", "))
		}
		vp = reg.Viewport
	}
	if o.XMin != nil {
		vp.XMin = *o.XMin
	}
	if o.XMax != nil {
		vp.XMax = *o.XMax
	}
	if o.YMin != nil {
		vp.YMin = *o.YMin
	}
	if o.YMax != nil {
		vp.YMax = *o.YMax
	}
	return vp, nil
}

// CheckLimits rejects frames larger than maxCells cells or deeper than
// maxIters iterations. A limit of zero disables that check.
// Call it after ValidateAndSetDefaults.
func (o *Options) CheckLimits(maxCells, maxIters int) error {
	// Compare per dimension so Width*Height cannot overflow.
	if maxCells > 0 && (o.Width > maxCells || o.Height > maxCells || o.Width > maxCells/max(o.Height, 1)) {
		return errors.New(errors.ErrCodeLimitExceeded, "frame is %dx%d, limit is %d cells", o.Width, o.Height, maxCells)
	}
	if maxIters > 0 && o.MaxIters > maxIters {
		return errors.New(errors.ErrCodeLimitExceeded, "max_iters %d exceeds limit %d", o.MaxIters, maxIters)
	}
	return nil
}

// Viewport returns the resolved viewport. Valid after ValidateAndSetDefaults.
func (o *Options) Viewport() fractal.Viewport { return o.viewport }

// Resolution returns the grid size.
func (o *Options) Resolution() fractal.Resolution {
	return fractal.Resolution{Width: o.Width, Height: o.Height}
}

// Table returns the resolved glyph table. Valid after ValidateAndSetDefaults.
func (o *Options) Table() *glyph.Table { return o.table }

// FieldKeyOpts returns cache key options for the escape field.
func (o *Options) FieldKeyOpts() cache.FieldKeyOpts {
	return cache.FieldKeyOpts{
		XMin:     o.viewport.XMin,
		XMax:     o.viewport.XMax,
		YMin:     o.viewport.YMin,
		YMax:     o.viewport.YMax,
		Width:    o.Width,
		Height:   o.Height,
		MaxIters: o.MaxIters,
	}
}
