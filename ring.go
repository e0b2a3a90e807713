package contour

import "github.com/golang/geo/r2"

// Ring is a closed polygon boundary. The last point connects back to the
// first; the first point is not repeated at the end.
type Ring []Point

// Orientation is the winding direction of a ring.
type Orientation int

const (
	// Degenerate rings enclose no area.
	Degenerate Orientation = iota
	// CounterClockwise rings have positive signed area (outer boundaries).
	CounterClockwise
	// Clockwise rings have negative signed area (holes).
	Clockwise
)

// String returns a readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case CounterClockwise:
		return "ccw"
	case Clockwise:
		return "cw"
	default:
		return "degenerate"
	}
}

// Area returns the signed area enclosed by the ring.
// Positive when the interior is on the left of the walk (outer rings produced
// by Extract), negative otherwise. Uses the shoelace formula.
func (r Ring) Area() float64 {
	return ringArea(r)
}

// Orientation returns the winding direction of the ring.
func (r Ring) Orientation() Orientation {
	a := r.Area()
	switch {
	case a > 0:
		return CounterClockwise
	case a < 0:
		return Clockwise
	default:
		return Degenerate
	}
}

// Winding returns the winding number of pt relative to the ring.
// 0 = outside. Uses ray casting with a horizontal ray to the right.
func (r Ring) Winding(pt Point) int {
	var winding int
	for i := range r {
		winding += lineWinding(r[i], r[(i+1)%len(r)], pt)
	}
	return winding
}

// Contains tests if a point is inside the ring using the non-zero rule.
func (r Ring) Contains(pt Point) bool {
	return r.Winding(pt) != 0
}

// Bounds returns the axis-aligned bounding rectangle of the ring.
func (r Ring) Bounds() r2.Rect {
	pts := make([]r2.Point, len(r))
	for i, p := range r {
		pts[i] = p.R2()
	}
	return r2.RectFromPoints(pts...)
}

// Reversed returns a copy of the ring walked in the opposite direction.
func (r Ring) Reversed() Ring {
	out := make(Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

func ringArea(pts []Point) float64 {
	var area float64
	for i := range pts {
		area += lineArea(pts[i], pts[(i+1)%len(pts)])
	}
	return area
}

// lineArea computes the contribution of a line segment to the signed area.
// Uses the shoelace formula: 0.5 * (x0*y1 - x1*y0)
func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// dedupe drops consecutive duplicate points, including a last point equal to
// the first, and collapses zero-width spikes a, b, a to a. The ring is
// treated as closed, so spikes across the seam are removed too. The input is
// not modified.
func dedupe(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		n := len(out)
		switch {
		case n > 0 && out[n-1] == p:
		case n > 1 && out[n-2] == p:
			out = out[:n-1]
		default:
			out = append(out, p)
		}
	}
	for len(out) > 1 {
		n := len(out)
		switch {
		case out[n-1] == out[0], out[n-2] == out[0]:
			out = out[:n-1]
		case out[n-1] == out[1]:
			out = out[1:]
		default:
			return out
		}
	}
	return out
}

// distinct reports whether pts holds at least n distinct points.
func distinct(pts []Point, n int) bool {
	seen := make(map[Point]struct{}, n)
	for _, p := range pts {
		seen[p] = struct{}{}
		if len(seen) >= n {
			return true
		}
	}
	return false
}
