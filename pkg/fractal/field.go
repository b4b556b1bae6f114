package fractal

// Field holds one escape value per grid cell, indexed [row][column].
// Fields are built once by [Compute] and never modified afterwards.
type Field [][]int

// Height returns the number of rows.
func (f Field) Height() int { return len(f) }

// Width returns the number of columns, or 0 for an empty field.
func (f Field) Width() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Stats summarizes a field computed with a given iteration limit.
type Stats struct {
	Cells     int `json:"cells"`
	Bounded   int `json:"bounded"` // cells that reached the limit without escaping
	MinEscape int `json:"min_escape"`
	MaxEscape int `json:"max_escape"`
}

// Stats counts cells and tallies how many stayed bounded for maxIters steps.
func (f Field) Stats(maxIters int) Stats {
	var s Stats
	first := true
	for _, row := range f {
		for _, v := range row {
			s.Cells++
			if v >= maxIters {
				s.Bounded++
			}
			if first || v < s.MinEscape {
				s.MinEscape = v
			}
			if first || v > s.MaxEscape {
				s.MaxEscape = v
			}
			first = false
		}
	}
	return s
}
