// Package glyph quantizes escape values into printable glyphs.
//
// A [Table] maps escape values onto nine intensity levels separated by the
// fixed, upper-inclusive [Breakpoints]:
//
//	0–2     ' '
//	3–5     '.'
//	6–10    '•'
//	11–30   '*'
//	31–100  '+'
//	101–200 'x'
//	201–400 '$'
//	401–700 '#'
//	701+    '%'
//
// The breakpoints are part of the observable output and never change. Only
// the glyphs can be swapped, e.g. by the [ASCII] table for terminals that
// cannot display '•'.
package glyph

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/matzehuels/glyphbrot/pkg/errors"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
)

// Breakpoints are the inclusive upper bounds of the first eight levels.
// Values above the last breakpoint fall into the ninth level.
var Breakpoints = []int{2, 5, 10, 30, 100, 200, 400, 700}

// Levels is the number of glyphs in a table.
const Levels = 9

// Charset names.
const (
	CharsetUnicode = "unicode"
	CharsetASCII   = "ascii"
)

// Table assigns one glyph per level, from lightest to darkest.
type Table struct {
	name   string
	glyphs [Levels]rune
}

var (
	// Unicode is the reference table.
	Unicode = MustTable(CharsetUnicode, " .•*+x$#%")

	// ASCII replaces the bullet with ':' and is otherwise identical.
	ASCII = MustTable(CharsetASCII, " .:*+x$#%")

	// Default is the table used when no charset is requested.
	Default = Unicode
)

var charsets = map[string]*Table{
	CharsetUnicode: Unicode,
	CharsetASCII:   ASCII,
}

// NewTable builds a table from exactly nine distinct printable glyphs.
func NewTable(name, glyphs string) (*Table, error) {
	runes := []rune(glyphs)
	if len(runes) != Levels {
		return nil, errors.New(errors.ErrCodeInvalidCharset, "charset %q needs %d glyphs, got %d", name, Levels, len(runes))
	}

	t := &Table{name: name}
	seen := make(map[rune]bool, Levels)
	for i, r := range runes {
		if !unicode.IsPrint(r) {
			return nil, errors.New(errors.ErrCodeInvalidCharset, "charset %q: glyph %d (%U) is not printable", name, i, r)
		}
		if seen[r] {
			return nil, errors.New(errors.ErrCodeInvalidCharset, "charset %q: glyph %q is repeated", name, r)
		}
		seen[r] = true
		t.glyphs[i] = r
	}
	return t, nil
}

// MustTable is like [NewTable] but panics on error.
func MustTable(name, glyphs string) *Table {
	t, err := NewTable(name, glyphs)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the built-in table with the given name.
// An empty name selects [Default].
func Lookup(name string) (*Table, error) {
	if name == "" {
		return Default, nil
	}
	t, ok := charsets[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidCharset, "unknown charset %q (must be one of: %s)", name, strings.Join(Charsets(), ", "))
	}
	return t, nil
}

// Charsets returns the names of the built-in tables, sorted.
func Charsets() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the charset name the table was built with.
func (t *Table) Name() string { return t.name }

// Glyphs returns the nine glyphs from lightest to darkest.
func (t *Table) Glyphs() string { return string(t.glyphs[:]) }

// Level returns the index of the level v falls into.
func Level(v int) int {
	return sort.SearchInts(Breakpoints, v)
}

// Glyph returns the glyph for escape value v.
func (t *Table) Glyph(v int) rune {
	return t.glyphs[Level(v)]
}

// Line renders one field row. The result holds exactly len(row) runes.
func (t *Table) Line(row []int) string {
	var b strings.Builder
	b.Grow(len(row))
	for _, v := range row {
		b.WriteRune(t.Glyph(v))
	}
	return b.String()
}

// Render returns one line per field row, top to bottom.
func (t *Table) Render(f fractal.Field) []string {
	lines := make([]string, len(f))
	for i, row := range f {
		lines[i] = t.Line(row)
	}
	return lines
}

// Write streams the rendered field to w, one newline-terminated line per
// row, and stops at the first write error.
func (t *Table) Write(w io.Writer, f fractal.Field) error {
	for i, row := range f {
		if _, err := io.WriteString(w, t.Line(row)+"\n"); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return nil
}
