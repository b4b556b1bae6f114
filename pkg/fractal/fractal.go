package fractal

import "math/cmplx"

// EscapeRadius is the magnitude beyond which an orbit is known to diverge.
const EscapeRadius = 2.0

// Viewport is a rectangle in the complex plane.
// XMin < XMax and YMin < YMax are expected but not enforced.
type Viewport struct {
	XMin float64 `json:"xmin" toml:"xmin"`
	XMax float64 `json:"xmax" toml:"xmax"`
	YMin float64 `json:"ymin" toml:"ymin"`
	YMax float64 `json:"ymax" toml:"ymax"`
}

// DefaultViewport frames the whole set: [-2, 2] × [-1, 1].
var DefaultViewport = Viewport{XMin: -2.0, XMax: 2.0, YMin: -1.0, YMax: 1.0}

// Resolution is the number of columns and rows of the sampling grid.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point returns the complex coordinate sampled for grid cell (col, row).
// The mapping is half-open: index 0 lands on the minimum bound, and the last
// index lands one cell before the maximum bound.
func (v Viewport) Point(col, row int, res Resolution) complex128 {
	xFrac := float64(col) / float64(res.Width)
	yFrac := float64(row) / float64(res.Height)
	cx := v.XMin + (v.XMax-v.XMin)*xFrac
	cy := v.YMin + (v.YMax-v.YMin)*yFrac
	return complex(cx, cy)
}

// Escape returns the escape value of c: the first step i in [0, maxIters]
// at which |z| > EscapeRadius, checked before z is advanced. Points that
// never escape return maxIters.
func Escape(c complex128, maxIters int) int {
	var z complex128
	for i := 0; i <= maxIters; i++ {
		if cmplx.Abs(z) > EscapeRadius {
			return i
		}
		z = z*z + c
	}
	return maxIters
}

// Compute samples vp on a res grid and returns the escape value of every
// cell. The result has exactly res.Height rows of res.Width entries.
func Compute(vp Viewport, res Resolution, maxIters int) Field {
	height := max(res.Height, 0)
	width := max(res.Width, 0)

	rows := make(Field, 0, height)
	for r := 0; r < height; r++ {
		row := make([]int, 0, width)
		for k := 0; k < width; k++ {
			row = append(row, Escape(vp.Point(k, r, res), maxIters))
		}
		rows = append(rows, row)
	}
	return rows
}
