package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/glyphbrot/pkg/cache"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
	"github.com/matzehuels/glyphbrot/pkg/observability"
	"github.com/matzehuels/glyphbrot/pkg/render/sink"
)

// keyTypeField labels field entries in cache hooks.
const keyTypeField = "field"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs the complete compute → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		ID:         uuid.NewString(),
		Viewport:   opts.Viewport(),
		Resolution: opts.Resolution(),
		MaxIters:   opts.MaxIters,
		Format:     opts.Format,
	}

	// Stage 1: Compute
	computeStart := time.Now()
	field, hit, err := r.ComputeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.Field = field
	result.Stats.ComputeTime = time.Since(computeStart)
	result.CacheInfo.FieldHit = hit

	fs := field.Stats(opts.MaxIters)
	result.Stats.Cells = fs.Cells
	result.Stats.Bounded = fs.Bounded

	opts.Logger.Info("computed field",
		"width", opts.Width,
		"height", opts.Height,
		"max_iters", opts.MaxIters,
		"bounded", fs.Bounded,
		"cached", hit,
		"duration", result.Stats.ComputeTime)

	// Stage 2: Render
	renderStart := time.Now()
	lines, artifact, err := r.Render(ctx, field, opts, result.ID)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Lines = lines
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered frame",
		"format", opts.Format,
		"charset", opts.Charset,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeWithCacheInfo returns the escape field for opts, reading and
// filling the cache, and reports whether it was a cache hit.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, opts Options) (fractal.Field, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.FieldKey(opts.FieldKeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		if err == nil && hit {
			if field, ok := decodeField(data, opts.Resolution(), opts.MaxIters); ok {
				observability.Cache().OnCacheHit(ctx, keyTypeField)
				return field, true, nil
			}
			opts.Logger.Debug("discarding malformed cache entry", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeField)
	}

	cells := opts.Width * opts.Height
	hooks := observability.Pipeline()
	hooks.OnComputeStart(ctx, cells, opts.MaxIters)
	start := time.Now()
	field := fractal.Compute(opts.Viewport(), opts.Resolution(), opts.MaxIters)
	hooks.OnComputeComplete(ctx, cells, time.Since(start), nil)

	if data, err := json.Marshal(field); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeField, len(data))
		}
	}

	return field, false, nil
}

// Compute is a convenience wrapper that calls ComputeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Compute(ctx context.Context, opts Options) (fractal.Field, error) {
	field, _, err := r.ComputeWithCacheInfo(ctx, opts)
	return field, err
}

// Render quantizes field with the requested charset and encodes it in the
// requested format. id is recorded in JSON output and may be empty.
func (r *Runner) Render(ctx context.Context, field fractal.Field, opts Options, id string) ([]string, []byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()

	lines := opts.Table().Render(field)

	var (
		artifact []byte
		err      error
	)
	switch opts.Format {
	case sink.FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithID(id), sink.WithCharset(opts.Table().Name())}
		if opts.WithField {
			jsonOpts = append(jsonOpts, sink.WithField())
		}
		artifact, err = sink.RenderJSON(sink.Frame{
			Viewport:   opts.Viewport(),
			Resolution: opts.Resolution(),
			MaxIters:   opts.MaxIters,
			Field:      field,
			Lines:      lines,
		}, jsonOpts...)
	default:
		artifact = sink.Text(lines)
	}

	hooks.OnRenderComplete(ctx, opts.Format, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return lines, artifact, nil
}

// decodeField parses a cached field and checks it matches res and that
// every count lies in [0, maxIters].
func decodeField(data []byte, res fractal.Resolution, maxIters int) (fractal.Field, bool) {
	var field fractal.Field
	if err := json.Unmarshal(data, &field); err != nil {
		return nil, false
	}
	if field.Height() != res.Height {
		return nil, false
	}
	for _, row := range field {
		if len(row) != res.Width {
			return nil, false
		}
		for _, v := range row {
			if v < 0 || v > maxIters {
				return nil, false
			}
		}
	}
	return field, true
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
