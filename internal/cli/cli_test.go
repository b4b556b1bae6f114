package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/glyphbrot/pkg/errors"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
	"github.com/matzehuels/glyphbrot/pkg/observability"
)

// isolate points config and cache lookups at temp dirs and returns the
// cache directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return filepath.Join(cacheHome, appName)
}

// runCLI executes the root command and returns stdout and the log output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), logs.String(), err
}

func frameLines(out string) []string {
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestRenderDefaults(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	lines := frameLines(out)
	if len(lines) != 24 {
		t.Fatalf("got %d lines, want 24", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 100 {
			t.Errorf("line %d has %d glyphs, want 100", i, n)
		}
	}
}

func TestRenderShortFlags(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "-w", "10", "-i", "5", "-m", "50")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	lines := frameLines(out)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	// Column 5 of row 2 samples c = -0.2i, inside the set.
	if got := []rune(lines[2])[5]; got != '+' {
		t.Errorf("center glyph = %q, want '+'", got)
	}
	// Column 0 samples x = -2; the top-left corner escapes at once.
	if got := []rune(lines[0])[0]; got != ' ' {
		t.Errorf("corner glyph = %q, want ' '", got)
	}
}

func TestRenderBoundsOverrideRegion(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "--region", "seahorse", "-x", "-0.78", "-w", "8", "-i", "2", "-m", "30", "--format", "json", "--no-cache")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	var doc struct {
		Viewport fractal.Viewport `json:"viewport"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	want := fractal.Viewport{XMin: -0.78, XMax: -0.7, YMin: 0.05, YMax: 0.15}
	if doc.Viewport != want {
		t.Errorf("viewport = %+v, want %+v", doc.Viewport, want)
	}
}

func TestRenderToFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "frame.json")

	out, _, err := runCLI(t, "-w", "6", "-i", "3", "-m", "20", "-f", "json", "--field", "-o", path)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should stay empty when writing a file, got %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Rows  []string `json:"rows"`
		Field [][]int  `json:"field"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Rows) != 3 || len(doc.Field) != 3 {
		t.Errorf("rows %d, field %d, want 3 each", len(doc.Rows), len(doc.Field))
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"zero width", []string{"-w", "0"}, errors.ErrCodeInvalidResolution},
		{"negative height", []string{"-i", "-1"}, errors.ErrCodeInvalidResolution},
		{"zero iters", []string{"-m", "0"}, errors.ErrCodeInvalidIterations},
		{"inverted x", []string{"-x", "1", "-z", "-1"}, errors.ErrCodeInvalidViewport},
		{"empty y", []string{"-y", "0.5", "-t", "0.5"}, errors.ErrCodeInvalidViewport},
		{"unknown region", []string{"--region", "atlantis"}, errors.ErrCodeInvalidRegion},
		{"unknown charset", []string{"--charset", "braille"}, errors.ErrCodeInvalidCharset},
		{"unknown format", []string{"-f", "svg"}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, _, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
			if out != "" {
				t.Errorf("nothing should reach stdout on error, got %q", out)
			}
		})
	}
}

func TestRenderUsesConfig(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := `
[defaults]
width = 12
height = 3
iters = 40
charset = "ascii"
region = "tip"

[cache]
backend = "none"

[regions.tip]
xmin = -2.0
xmax = -1.9
ymin = -0.05
ymax = 0.05
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "--config", cfgPath)
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	lines := frameLines(out)
	if len(lines) != 3 || len([]rune(lines[0])) != 12 {
		t.Errorf("config defaults not applied: %q", out)
	}
	if strings.Contains(out, "•") {
		t.Error("ascii charset from config should not emit •")
	}

	out, _, err = runCLI(t, "--config", cfgPath, "-w", "5")
	if err != nil {
		t.Fatal(err)
	}
	if got := len([]rune(frameLines(out)[0])); got != 5 {
		t.Errorf("flag should override config width, got %d", got)
	}
}

func TestRenderBadConfig(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[defaults]\nwidth = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "--config", cfgPath)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestRenderCachesField(t *testing.T) {
	isolate(t)
	args := []string{"-w", "16", "-i", "4", "-m", "60"}

	first, logs, err := runCLI(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "cached=false") {
		t.Errorf("first run should compute, logs:\n%s", logs)
	}

	second, logs, err := runCLI(t, append(args, "--charset", "ascii")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "cached=true") {
		t.Errorf("second run should hit the file cache, logs:\n%s", logs)
	}
	if len(first) != len(strings.ReplaceAll(second, ":", "•")) {
		t.Error("charset swap should keep the frame shape")
	}

	_, logs, err = runCLI(t, append(args, "--refresh")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs, "cached=false") {
		t.Errorf("--refresh should recompute, logs:\n%s", logs)
	}
}

func TestRegionsCommand(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "regions")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"full", "seahorse", "elephant"} {
		if !strings.Contains(out, name) {
			t.Errorf("regions table missing %q", name)
		}
	}

	out, _, err = runCLI(t, "regions", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var regions []fractal.Region
	if err := json.Unmarshal([]byte(out), &regions); err != nil {
		t.Fatalf("regions --json: %v", err)
	}
	if len(regions) == 0 || regions[0].Name != "dragon" {
		t.Errorf("regions should be sorted by name, got %+v", regions)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolate(t)

	out, _, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}

	if _, _, err := runCLI(t, "-w", "4", "-i", "2", "-m", "10"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("render should populate the file cache")
	}

	if _, _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "glyphbrot") {
		t.Error("bash completion should mention the command name")
	}
}

func TestSetLogLevelInstallsHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.SetLogLevel(log.DebugLevel)

	if _, ok := observability.Cache().(*observability.LogHooks); !ok {
		t.Errorf("debug level should install log hooks, got %T", observability.Cache())
	}
}
