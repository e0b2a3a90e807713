package contour

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is an immutable rectangular array of scalar samples stored row-major.
// Sample (x, y) is at index y*Width+x.
type Grid struct {
	width, height int
	values        []float64
	min, max      float64
}

// NewGrid validates values and returns a grid that owns a copy of them.
// It fails with ErrInvalidInput when either dimension is below 2, when the
// sample count does not match width*height, or when a sample is NaN or ±Inf.
func NewGrid(width, height int, values []float64) (*Grid, error) {
	if width < 2 || height < 2 {
		return nil, invalidf("grid is %dx%d, need at least 2x2", width, height)
	}
	if len(values) != width*height {
		return nil, invalidf("grid %dx%d needs %d samples, got %d", width, height, width*height, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &GridError{X: i % width, Y: i / width, Value: v}
		}
	}

	g := &Grid{
		width:  width,
		height: height,
		values: make([]float64, len(values)),
	}
	copy(g.values, values)
	g.min = floats.Min(g.values)
	g.max = floats.Max(g.values)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) float64 {
	return g.values[y*g.width+x]
}

// Extent returns the smallest and largest sample.
func (g *Grid) Extent() (lo, hi float64) {
	return g.min, g.max
}

// Values returns a copy of the samples in row-major order.
func (g *Grid) Values() []float64 {
	out := make([]float64, len(g.values))
	copy(out, g.values)
	return out
}
