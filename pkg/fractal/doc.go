// Package fractal computes Mandelbrot escape-time fields.
//
// A [Viewport] selects a rectangle of the complex plane and a [Resolution]
// selects the grid it is sampled on. [Compute] runs the recurrence
// z ← z² + c for every grid cell and records the step at which |z| first
// exceeds 2, producing a [Field].
//
// # Coordinate Mapping
//
// The mapping from grid to plane is half-open: column 0 maps to XMin and
// row 0 maps to YMin, but the last column and row stop one cell short of
// XMax and YMax. Rows are emitted in increasing Y order, so the top line of a
// rendered frame corresponds to YMin.
//
// # Totality
//
// Nothing in this package validates its inputs. Degenerate viewports and a
// zero iteration limit are accepted and simply yield fields of low values.
// Callers that accept user input validate it first (see pkg/pipeline).
//
// # Example
//
//	f := fractal.Compute(fractal.DefaultViewport, fractal.Resolution{Width: 100, Height: 24}, 1000)
//	for _, row := range f {
//	    fmt.Println(row)
//	}
package fractal
