package contour

import "math"

// Outline is the renderer-ready form of a polygon: the outer boundary and the
// holes as plain vertex lists. The same outline serves as a flat fill shape
// and as the profile of an extrusion.
type Outline struct {
	Outer []Point
	Holes [][]Point
}

// Pather receives an outline as path commands.
type Pather interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
}

// Build converts a polygon into an outline, preserving point order and ring
// orientation. Consecutive duplicate points are removed. It fails with
// ErrDegenerateGeometry when the outer ring has fewer than 3 distinct points;
// degenerate holes are dropped.
func Build(p Polygon) (Outline, error) {
	outer := dedupe(p.Outer)
	if len(outer) < 3 || !distinct(outer, 3) {
		return Outline{}, degeneratef("outer ring has %d distinct points at threshold %v", len(outer), p.Threshold)
	}

	o := Outline{Outer: outer}
	for _, h := range p.Holes {
		hole := dedupe(h)
		if len(hole) < 3 || !distinct(hole, 3) {
			continue
		}
		o.Holes = append(o.Holes, hole)
	}
	return o, nil
}

// Area returns the filled area: the outer ring minus its holes.
func (o Outline) Area() float64 {
	a := math.Abs(ringArea(o.Outer))
	for _, h := range o.Holes {
		a -= math.Abs(ringArea(h))
	}
	return a
}

// Len returns the total number of vertices over all rings.
func (o Outline) Len() int {
	n := len(o.Outer)
	for _, h := range o.Holes {
		n += len(h)
	}
	return n
}

// Rings returns the outer ring followed by the holes.
func (o Outline) Rings() [][]Point {
	rings := make([][]Point, 0, 1+len(o.Holes))
	rings = append(rings, o.Outer)
	return append(rings, o.Holes...)
}

// AppendPath replays the outline as one closed subpath per ring.
// Holes keep their opposite orientation, so non-zero and even-odd fills both
// cut them out.
func (o Outline) AppendPath(p Pather) {
	for _, r := range o.Rings() {
		if len(r) == 0 {
			continue
		}
		p.MoveTo(r[0].X, r[0].Y)
		for _, pt := range r[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		p.ClosePath()
	}
}

// Transform returns a copy of the outline with every point mapped to
// p*scale + offset. Uniform scaling keeps every ring's orientation.
func (o Outline) Transform(scale float64, offset Point) Outline {
	mapRing := func(r []Point) []Point {
		out := make([]Point, len(r))
		for i, p := range r {
			out[i] = p.Mul(scale).Add(offset)
		}
		return out
	}
	t := Outline{Outer: mapRing(o.Outer)}
	for _, h := range o.Holes {
		t.Holes = append(t.Holes, mapRing(h))
	}
	return t
}
