// Package sink encodes rendered frames for output.
//
// # Overview
//
// A "sink" takes the lines produced by the glyph renderer and produces the
// bytes that are written to stdout, a file, or an HTTP response:
//
//   - Text: one line per row, each terminated by '\n'
//   - JSON: frame metadata plus the rendered rows for external tools
//
// # JSON Output
//
// [RenderJSON] records the viewport, resolution and iteration limit next to
// the rows, so a consumer can reproduce the frame:
//
//	data, err := sink.RenderJSON(frame,
//	    sink.WithCharset("ascii"),
//	    sink.WithField(),
//	)
package sink

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/glyphbrot/pkg/fractal"
)

// Format names.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// Frame is a rendered field together with the inputs that produced it.
type Frame struct {
	Viewport   fractal.Viewport
	Resolution fractal.Resolution
	MaxIters   int
	Field      fractal.Field
	Lines      []string
}

// Text joins lines into newline-terminated output.
func Text(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	var b strings.Builder
	for _, line := range lines {
		b.Grow(len(line) + 1)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id        string
	charset   string
	withField bool
}

// WithID records a frame identifier, e.g. the pipeline result ID.
func WithID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithCharset records the charset name used to render the rows.
func WithCharset(name string) JSONOption { return func(r *jsonRenderer) { r.charset = name } }

// WithField includes the raw escape values next to the rendered rows.
func WithField() JSONOption { return func(r *jsonRenderer) { r.withField = true } }

type jsonOutput struct {
	ID       string           `json:"id,omitempty"`
	Viewport fractal.Viewport `json:"viewport"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	MaxIters int              `json:"max_iters"`
	Charset  string           `json:"charset,omitempty"`
	Stats    fractal.Stats    `json:"stats"`
	Rows     []string         `json:"rows"`
	Field    fractal.Field    `json:"field,omitempty"`
}

// RenderJSON encodes the frame as indented JSON.
func RenderJSON(f Frame, opts ...JSONOption) ([]byte, error) {
	r := &jsonRenderer{}
	for _, opt := range opts {
		opt(r)
	}

	out := jsonOutput{
		ID:       r.id,
		Viewport: f.Viewport,
		Width:    f.Resolution.Width,
		Height:   f.Resolution.Height,
		MaxIters: f.MaxIters,
		Charset:  r.charset,
		Stats:    f.Field.Stats(f.MaxIters),
		Rows:     f.Lines,
	}
	if out.Rows == nil {
		out.Rows = []string{}
	}
	if r.withField {
		out.Field = f.Field
	}
	return json.MarshalIndent(out, "", "  ")
}
