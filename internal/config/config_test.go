package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/glyphbrot/pkg/errors"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[defaults]
iters = 250
width = 80
region = "tip"

[cache]
backend = "memory"
ttl = "2h"

[server]
addr = "127.0.0.1:9000"
max_cells = 1000

[regions.tip]
description = "Tip of the needle"
xmin = -2.0
xmax = -1.9
ymin = -0.05
ymax = 0.05
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Defaults.Iters != 250 || cfg.Defaults.Width != 80 {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if cfg.Defaults.Height != 24 {
		t.Errorf("unset height should keep the default, got %d", cfg.Defaults.Height)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.MaxCells != 1000 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.MaxIters != 5000 {
		t.Errorf("unset max_iters should keep the default, got %d", cfg.Server.MaxIters)
	}

	tip, ok := cfg.RegionTable().Lookup("tip")
	if !ok {
		t.Fatal("configured region missing from table")
	}
	want := fractal.Viewport{XMin: -2, XMax: -1.9, YMin: -0.05, YMax: 0.05}
	if tip.Viewport != want || tip.Description != "Tip of the needle" {
		t.Errorf("tip = %+v", tip)
	}
	if _, ok := cfg.RegionTable().Lookup("seahorse"); !ok {
		t.Error("built-in regions should stay available")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Defaults != Default().Defaults {
		t.Errorf("missing file should yield defaults, got %+v", cfg.Defaults)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[defaults\niters = 1"},
		{"unknown key", "[defaults]\ncolour = \"red\""},
		{"zero iters", "[defaults]\niters = 0"},
		{"bad region viewport", "[regions.flat]\nxmin = 1.0\nxmax = 1.0\nymin = 0.0\nymax = 1.0"},
		{"bad region name", "[regions.\"sea horse\"]\nxmin = 0.0\nxmax = 1.0\nymin = 0.0\nymax = 1.0"},
		{"undefined default region", "[defaults]\nregion = \"atlantis\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	if got, want := DefaultPath(), filepath.Join(base, "glyphbrot", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/explicit"
	if dir, _ := cfg.CacheDir(); dir != "/tmp/explicit" {
		t.Errorf("explicit CacheDir() = %q", dir)
	}

	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	cfg.Cache.Dir = ""
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(base, "glyphbrot"); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}
