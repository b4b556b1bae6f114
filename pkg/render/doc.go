// Package render turns escape fields into text frames.
//
// # Overview
//
// Rendering happens in two steps that live in separate subpackages:
//
//   - [glyph]: Quantize every escape value into one of nine glyphs and
//     assemble one line per field row
//   - [sink]: Encode the finished frame for output (plain text or JSON)
//
// Neither step mutates the field it is given, so a field can be rendered
// any number of times with identical results.
//
//	f := fractal.Compute(vp, res, 1000)
//	lines := glyph.Default.Render(f)
//	out := sink.Text(lines)
//
// [glyph]: github.com/matzehuels/glyphbrot/pkg/render/glyph
// [sink]: github.com/matzehuels/glyphbrot/pkg/render/sink
package render
