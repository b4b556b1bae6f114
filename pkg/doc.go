// Package pkg provides the core libraries for glyphbrot.
//
// # Overview
//
// glyphbrot renders the Mandelbrot set as rows of text glyphs. The pkg
// directory is organized into a few areas:
//
//  1. [fractal] - Domain logic (viewport mapping, escape counting, regions)
//  2. [render] - Quantizing fields into glyphs and encoding frames
//  3. [pipeline] - Orchestration (validate → compute → render) with caching
//  4. [cache] - Field cache backends (file, memory, Redis, MongoDB)
//  5. [httputil] and [observability] - Server plumbing and event hooks
//
// # Architecture
//
// The data flow for one frame:
//
//	Viewport + Resolution + iteration limit
//	         ↓
//	    [fractal] package (escape field, cached by [pipeline])
//	         ↓
//	    [render/glyph] package (one glyph per cell, one line per row)
//	         ↓
//	    [render/sink] package (text or JSON)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Region: "seahorse"})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifact)
//
// [fractal]: github.com/matzehuels/glyphbrot/pkg/fractal
// [render]: github.com/matzehuels/glyphbrot/pkg/render
// [render/glyph]: github.com/matzehuels/glyphbrot/pkg/render/glyph
// [render/sink]: github.com/matzehuels/glyphbrot/pkg/render/sink
// [pipeline]: github.com/matzehuels/glyphbrot/pkg/pipeline
// [cache]: github.com/matzehuels/glyphbrot/pkg/cache
// [httputil]: github.com/matzehuels/glyphbrot/pkg/httputil
// [observability]: github.com/matzehuels/glyphbrot/pkg/observability
package pkg
