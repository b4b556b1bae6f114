package fractal

import (
	"sort"
	"strings"
)

// Region is a named viewport preset.
type Region struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Viewport    Viewport `json:"viewport"`
}

// Built-in regions. Landmark coordinates are the classic ones.
var builtinRegions = []Region{
	{Name: "full", Description: "The whole set", Viewport: DefaultViewport},
	{Name: "seahorse", Description: "Seahorse Valley: dense filaments and repeating curls",
		Viewport: Viewport{XMin: -0.8, XMax: -0.7, YMin: 0.05, YMax: 0.15}},
	{Name: "elephant", Description: "Elephant Valley: large bulb with trunk-like tendrils",
		Viewport: Viewport{XMin: -1.85, XMax: -1.75, YMin: -0.10, YMax: -0.02}},
	{Name: "spiral", Description: "Small Mandelbrot copy with tight spiral arms",
		Viewport: Viewport{XMin: -0.7435, XMax: -0.7420, YMin: 0.1310, YMax: 0.1325}},
	{Name: "triple-spiral", Description: "Threefold symmetric spiral structure",
		Viewport: Viewport{XMin: -0.7480, XMax: -0.7450, YMin: 0.0950, YMax: 0.0980}},
	{Name: "dragon", Description: "Valley of the Dragon: deep spiral filaments",
		Viewport: Viewport{XMin: -0.7400, XMax: -0.7350, YMin: 0.1800, YMax: 0.1850}},
	{Name: "minibrot", Description: "Self-similar copy inside a spiral arm",
		Viewport: Viewport{XMin: -1.7390, XMax: -1.7375, YMin: -0.0235, YMax: -0.0220}},
}

// Regions is a lookup table of named viewports.
// The zero value is empty; use [NewRegions] for one seeded with built-ins.
type Regions struct {
	byName map[string]Region
}

// NewRegions returns a table holding the built-in regions plus extra.
// Entries in extra replace built-ins of the same name.
func NewRegions(extra ...Region) *Regions {
	r := &Regions{byName: make(map[string]Region, len(builtinRegions)+len(extra))}
	for _, reg := range builtinRegions {
		r.Add(reg)
	}
	for _, reg := range extra {
		r.Add(reg)
	}
	return r
}

// Add registers reg under its lowercased name.
func (r *Regions) Add(reg Region) {
	if r.byName == nil {
		r.byName = make(map[string]Region)
	}
	reg.Name = strings.ToLower(strings.TrimSpace(reg.Name))
	r.byName[reg.Name] = reg
}

// Lookup finds a region by case-insensitive name.
func (r *Regions) Lookup(name string) (Region, bool) {
	reg, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return reg, ok
}

// All returns every region sorted by name.
func (r *Regions) All() []Region {
	out := make([]Region, 0, len(r.byName))
	for _, reg := range r.byName {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted region names.
func (r *Regions) Names() []string {
	all := r.All()
	names := make([]string, len(all))
	for i, reg := range all {
		names[i] = reg.Name
	}
	return names
}
