package fractal

import (
	"reflect"
	"testing"
)

func TestComputeDimensions(t *testing.T) {
	tests := []struct {
		name string
		res  Resolution
	}{
		{"single cell", Resolution{Width: 1, Height: 1}},
		{"wide", Resolution{Width: 40, Height: 3}},
		{"tall", Resolution{Width: 3, Height: 17}},
		{"default", Resolution{Width: 100, Height: 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Compute(DefaultViewport, tt.res, 30)
			if f.Height() != tt.res.Height {
				t.Fatalf("rows = %d, want %d", f.Height(), tt.res.Height)
			}
			for r, row := range f {
				if len(row) != tt.res.Width {
					t.Errorf("row %d has %d entries, want %d", r, len(row), tt.res.Width)
				}
			}
		})
	}
}

func TestComputeValuesInRange(t *testing.T) {
	const maxIters = 64
	f := Compute(Viewport{XMin: -2.5, XMax: 1, YMin: -1.25, YMax: 1.25}, Resolution{Width: 60, Height: 30}, maxIters)
	for r, row := range f {
		for k, v := range row {
			if v < 0 || v > maxIters {
				t.Fatalf("field[%d][%d] = %d, outside [0, %d]", r, k, v, maxIters)
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	res := Resolution{Width: 50, Height: 20}
	a := Compute(DefaultViewport, res, 200)
	b := Compute(DefaultViewport, res, 200)
	if !reflect.DeepEqual(a, b) {
		t.Error("Compute should return identical fields for identical inputs")
	}
}

func TestEscapeOrigin(t *testing.T) {
	for _, maxIters := range []int{1, 50, 1000} {
		if got := Escape(0, maxIters); got != maxIters {
			t.Errorf("Escape(0, %d) = %d, want %d", maxIters, got, maxIters)
		}
	}
}

func TestEscapeOutsideRadius(t *testing.T) {
	tests := []struct {
		c    complex128
		want int
	}{
		{complex(3, 0), 1},
		{complex(-3, 0), 1},
		{complex(0, 2.5), 1},
		{complex(-2, -1), 1},
		{complex(1.6, -0.2), 2},
	}
	for _, tt := range tests {
		if got := Escape(tt.c, 100); got != tt.want {
			t.Errorf("Escape(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestEscapeZeroIterations(t *testing.T) {
	f := Compute(DefaultViewport, Resolution{Width: 8, Height: 4}, 0)
	for r, row := range f {
		for k, v := range row {
			if v != 0 {
				t.Errorf("field[%d][%d] = %d, want 0", r, k, v)
			}
		}
	}
}

func TestComputeOriginCell(t *testing.T) {
	// Width 4 over [-2, 2] puts column 2 on x = 0; height 2 over [-1, 1]
	// puts row 1 on y = 0.
	f := Compute(DefaultViewport, Resolution{Width: 4, Height: 2}, 500)
	if f[1][2] != 500 {
		t.Errorf("origin cell = %d, want 500", f[1][2])
	}
}

func TestComputeDegenerateViewport(t *testing.T) {
	vp := Viewport{XMin: 5, XMax: 5, YMin: 5, YMax: 5}
	f := Compute(vp, Resolution{Width: 3, Height: 2}, 10)
	for _, row := range f {
		for _, v := range row {
			if v != 1 {
				t.Errorf("degenerate viewport at 5+5i: got %d, want 1", v)
			}
		}
	}
}

func TestPointHalfOpen(t *testing.T) {
	res := Resolution{Width: 10, Height: 5}
	vp := DefaultViewport

	if got := vp.Point(0, 0, res); got != complex(vp.XMin, vp.YMin) {
		t.Errorf("Point(0, 0) = %v, want %v", got, complex(vp.XMin, vp.YMin))
	}

	last := vp.Point(res.Width-1, res.Height-1, res)
	if real(last) >= vp.XMax || imag(last) >= vp.YMax {
		t.Errorf("last cell %v should stay below (%v, %v)", last, vp.XMax, vp.YMax)
	}
	if want := complex(1.6, 0.6); !closeTo(last, want) {
		t.Errorf("last cell = %v, want %v", last, want)
	}
}

func TestEndToEndSmallFrame(t *testing.T) {
	f := Compute(DefaultViewport, Resolution{Width: 10, Height: 5}, 50)

	// Corners lie outside radius 2 and escape on the first check after the
	// initial update.
	for _, cell := range [][2]int{{0, 0}, {4, 0}} {
		if v := f[cell[0]][cell[1]]; v != 1 {
			t.Errorf("edge cell %v = %d, want 1", cell, v)
		}
	}

	// -0.2i and -0.4-0.2i sit inside the main cardioid.
	for _, cell := range [][2]int{{2, 5}, {2, 4}, {3, 5}} {
		if v := f[cell[0]][cell[1]]; v != 50 {
			t.Errorf("interior cell %v = %d, want 50", cell, v)
		}
	}
}

func TestFieldStats(t *testing.T) {
	f := Field{
		{1, 2, 10},
		{10, 7, 3},
	}
	got := f.Stats(10)
	want := Stats{Cells: 6, Bounded: 2, MinEscape: 1, MaxEscape: 10}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}

	if (Field{}).Stats(10) != (Stats{}) {
		t.Error("empty field should have zero stats")
	}
	if (Field{}).Width() != 0 {
		t.Error("empty field should have zero width")
	}
}

func TestRegions(t *testing.T) {
	r := NewRegions(Region{Name: " Tip ", Viewport: Viewport{XMin: -2, XMax: -1.9, YMin: -0.05, YMax: 0.05}})

	full, ok := r.Lookup("FULL")
	if !ok {
		t.Fatal("full region should be built in")
	}
	if full.Viewport != DefaultViewport {
		t.Errorf("full viewport = %+v, want %+v", full.Viewport, DefaultViewport)
	}

	if _, ok := r.Lookup("tip"); !ok {
		t.Error("custom region should be registered under a normalized name")
	}
	if _, ok := r.Lookup("nowhere"); ok {
		t.Error("unknown region should not be found")
	}

	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}

	for _, reg := range r.All() {
		vp := reg.Viewport
		if vp.XMin >= vp.XMax || vp.YMin >= vp.YMax {
			t.Errorf("region %q has an inverted viewport %+v", reg.Name, vp)
		}
	}
}

func TestRegionsOverride(t *testing.T) {
	custom := Viewport{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	r := NewRegions(Region{Name: "full", Viewport: custom})
	got, _ := r.Lookup("full")
	if got.Viewport != custom {
		t.Errorf("override viewport = %+v, want %+v", got.Viewport, custom)
	}
}

func closeTo(a, b complex128) bool {
	const eps = 1e-12
	d := a - b
	return real(d) < eps && real(d) > -eps && imag(d) < eps && imag(d) > -eps
}
