// Package config loads glyphbrot's TOML configuration file.
//
// The file is optional. Every setting has a built-in default, the file
// overrides defaults, and command-line flags override the file.
//
//	[defaults]
//	iters = 1000
//	width = 100
//	height = 24
//	charset = "unicode"
//
//	[cache]
//	backend = "redis://localhost:6379/0"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	max_cells = 40000
//	max_iters = 5000
//
//	[regions.tip]
//	description = "Tip of the needle"
//	xmin = -2.0
//	xmax = -1.9
//	ymin = -0.05
//	ymax = 0.05
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/glyphbrot/pkg/cache"
	"github.com/matzehuels/glyphbrot/pkg/errors"
	"github.com/matzehuels/glyphbrot/pkg/fractal"
	"github.com/matzehuels/glyphbrot/pkg/pipeline"
)

const appName = "glyphbrot"

// Config is the decoded configuration file.
type Config struct {
	Defaults Defaults                `toml:"defaults"`
	Cache    Cache                   `toml:"cache"`
	Server   Server                  `toml:"server"`
	Regions  map[string]RegionConfig `toml:"regions"`
}

// Defaults seed the frame flags.
type Defaults struct {
	Iters   int    `toml:"iters"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Charset string `toml:"charset"`
	Region  string `toml:"region"`
}

// Cache selects and tunes the field cache.
type Cache struct {
	Backend string        `toml:"backend"` // see cache.Open
	Dir     string        `toml:"dir"`     // file backend root; XDG cache dir if empty
	TTL     time.Duration `toml:"ttl"`
	Prefix  string        `toml:"prefix"` // key prefix for shared backends
}

// Server configures `glyphbrot serve`.
type Server struct {
	Addr          string        `toml:"addr"`
	Cache         string        `toml:"cache"` // backend for the server; memory if empty
	MaxCells      int           `toml:"max_cells"`
	MaxIters      int           `toml:"max_iters"`
	ReadTimeout   time.Duration `toml:"read_timeout"`
	WriteTimeout  time.Duration `toml:"write_timeout"`
	MemoryEntries int           `toml:"memory_entries"`
}

// RegionConfig is a user-defined region.
type RegionConfig struct {
	Description string  `toml:"description"`
	XMin        float64 `toml:"xmin"`
	XMax        float64 `toml:"xmax"`
	YMin        float64 `toml:"ymin"`
	YMax        float64 `toml:"ymax"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Iters:   pipeline.DefaultMaxIters,
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Charset: pipeline.DefaultCharset,
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     cache.DefaultTTL,
		},
		Server: Server{
			Addr:          ":8080",
			Cache:         cache.BackendMemory,
			MaxCells:      40000,
			MaxIters:      5000,
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  30 * time.Second,
			MemoryEntries: cache.DefaultMemoryEntries,
		},
	}
}

// Load reads the config at path on top of Default().
// An empty path means DefaultPath(), and a missing default file is not an
// error. A missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks defaults, limits and user regions.
func (c Config) Validate() error {
	if err := errors.ValidateIterations(c.Defaults.Iters); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[defaults] iters")
	}
	if err := errors.ValidateResolution(c.Defaults.Width, c.Defaults.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[defaults] width/height")
	}
	if c.Server.MaxCells < 0 || c.Server.MaxIters < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[server] limits cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] ttl cannot be negative")
	}

	for _, name := range c.regionNames() {
		r := c.Regions[name]
		if err := errors.ValidateRegionName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[regions.%s]", name)
		}
		if err := errors.ValidateViewport(r.XMin, r.XMax, r.YMin, r.YMax); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[regions.%s]", name)
		}
	}

	if c.Defaults.Region != "" {
		if _, ok := c.RegionTable().Lookup(c.Defaults.Region); !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "[defaults] region %q is not defined", c.Defaults.Region)
		}
	}
	return nil
}

// RegionTable returns the built-in regions plus the configured ones.
func (c Config) RegionTable() *fractal.Regions {
	extra := make([]fractal.Region, 0, len(c.Regions))
	for _, name := range c.regionNames() {
		r := c.Regions[name]
		extra = append(extra, fractal.Region{
			Name:        name,
			Description: r.Description,
			Viewport:    fractal.Viewport{XMin: r.XMin, XMax: r.XMax, YMin: r.YMin, YMax: r.YMax},
		})
	}
	return fractal.NewRegions(extra...)
}

func (c Config) regionNames() []string {
	names := make([]string, 0, len(c.Regions))
	for name := range c.Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Paths
// =============================================================================

// Dir returns the configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, appName)
}

// DefaultPath returns the path of config.toml inside Dir().
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// CacheDir returns the file cache directory: the configured one, or the XDG
// standard ~/.cache/glyphbrot/.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
