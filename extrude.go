package contour

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/contour/internal/path"
)

// Face is a planar cap of a solid: an outer loop and hole loops of vertex
// indices. Seen from outside the solid, the outer loop runs counter-clockwise
// and hole loops clockwise.
type Face struct {
	Outer []int
	Holes [][]int
}

// Quad is a side-wall face given as four vertex indices, counter-clockwise
// when seen from outside the solid.
type Quad [4]int

// Solid is an outline extruded along an axis.
//
// Vertices holds every front vertex (outer ring first, then holes, in outline
// order) followed by the matching back vertices, so back vertex i is
// Vertices[i+n] where n is the number of front vertices.
type Solid struct {
	Vertices []r3.Vec
	Front    Face
	Back     Face
	Walls    []Quad

	outline Outline
	axis    r3.Vec // unit length
	depth   float64
}

// ZAxis is the default extrusion axis.
var ZAxis = r3.Vec{Z: 1}

// Extrude turns an outline in the z=0 plane into a closed solid. The back face
// is every front vertex moved by |depth| along the normalized axis; the sign
// of depth is ignored.
//
// Extrude fails with ErrDegenerateGeometry when depth is zero or not finite,
// when the outline has fewer than 3 outer vertices, or when the axis is zero
// or lies in the outline plane.
func Extrude(o Outline, depth float64, axis r3.Vec) (*Solid, error) {
	if depth == 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return nil, degeneratef("extrusion depth %v", depth)
	}
	if len(o.Outer) < 3 {
		return nil, degeneratef("outline has %d outer vertices", len(o.Outer))
	}
	norm := r3.Norm(axis)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, degeneratef("extrusion axis %v has no direction", axis)
	}
	unit := r3.Scale(1/norm, axis)
	if unit.Z == 0 {
		return nil, degeneratef("extrusion axis %v is parallel to the outline plane", axis)
	}

	depth = math.Abs(depth)
	offset := r3.Scale(depth, unit)
	n := o.Len()
	s := &Solid{
		Vertices: make([]r3.Vec, 2*n),
		Walls:    make([]Quad, 0, n),
		outline:  o,
		axis:     unit,
		depth:    depth,
	}

	// Back faces +axis. With unit.Z > 0 that is the +z side, where an outer
	// loop must run counter-clockwise in the plane.
	up := unit.Z > 0
	base := 0
	for k, r := range o.Rings() {
		for i, p := range r {
			v := r3.Vec{X: p.X, Y: p.Y}
			s.Vertices[base+i] = v
			s.Vertices[n+base+i] = r3.Add(v, offset)
		}

		// Walk the ring outer-ccw / hole-cw so that the right-hand side of
		// every edge is outside the material.
		loop := make([]int, len(r))
		for i := range r {
			loop[i] = base + i
		}
		a := ringArea(r)
		if (k == 0 && a < 0) || (k > 0 && a > 0) {
			reverse(loop)
		}

		for i := range loop {
			f0, f1 := loop[i], loop[(i+1)%len(loop)]
			q := Quad{f0, f1, f1 + n, f0 + n}
			if !up {
				q = Quad{f0, f0 + n, f1 + n, f1}
			}
			s.Walls = append(s.Walls, q)
		}

		back := make([]int, len(loop))
		front := make([]int, len(loop))
		for i, idx := range loop {
			back[i] = idx + n
			front[len(loop)-1-i] = idx
		}
		if !up {
			reverse(back)
			reverse(front)
		}
		if k == 0 {
			s.Back.Outer, s.Front.Outer = back, front
		} else {
			s.Back.Holes = append(s.Back.Holes, back)
			s.Front.Holes = append(s.Front.Holes, front)
		}
		base += len(r)
	}
	return s, nil
}

// Depth returns the extrusion thickness along the axis (always positive).
func (s *Solid) Depth() float64 { return s.depth }

// Axis returns the unit extrusion direction.
func (s *Solid) Axis() r3.Vec { return s.axis }

// Outline returns the profile the solid was extruded from.
func (s *Solid) Outline() Outline { return s.outline }

// FrontCount returns the number of front vertices.
func (s *Solid) FrontCount() int { return len(s.Vertices) / 2 }

// Volume returns the enclosed volume: profile area times the height gained
// along the outline normal.
func (s *Solid) Volume() float64 {
	return s.outline.Area() * s.depth * math.Abs(s.axis.Z)
}

// Triangles returns the solid as a triangle list of vertex index triples,
// counter-clockwise seen from outside: both caps triangulated by ear clipping
// followed by two triangles per wall.
func (s *Solid) Triangles() ([][3]int, error) {
	n := s.FrontCount()

	var pts []path.Point
	var holeStarts []int
	idx := make([]int, 0, n)
	addLoop := func(loop []int) {
		for _, v := range loop {
			pts = append(pts, path.Point{X: s.Vertices[v].X, Y: s.Vertices[v].Y})
			idx = append(idx, v)
		}
	}
	addLoop(s.Back.Outer)
	for _, h := range s.Back.Holes {
		holeStarts = append(holeStarts, len(pts))
		addLoop(h)
	}

	caps, err := path.Triangulate(pts, holeStarts)
	if err != nil {
		return nil, degeneratef("cap triangulation: %v", err)
	}

	tris := make([][3]int, 0, 2*len(caps)+2*len(s.Walls))
	up := s.axis.Z > 0
	for _, t := range caps {
		// Triangulate yields counter-clockwise triangles in the plane, which
		// face +z. Map them onto the cap that faces that way.
		a, b, c := idx[t[0]], idx[t[1]], idx[t[2]]
		a, b, c = a%n, b%n, c%n
		if up {
			tris = append(tris, [3]int{a + n, b + n, c + n}, [3]int{a, c, b})
		} else {
			tris = append(tris, [3]int{a, b, c}, [3]int{a + n, c + n, b + n})
		}
	}
	for _, q := range s.Walls {
		tris = append(tris, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
	}
	return tris, nil
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
