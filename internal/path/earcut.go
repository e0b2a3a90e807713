// Package path triangulates polygons with holes for extruded solid caps.
package path

import (
	"errors"
	"math"
	"sort"
)

// Point is a vertex in the plane.
type Point struct {
	X, Y float64
}

// ErrNoEar is returned when a hole cannot be bridged or no diagonal splits
// a stalled ring.
var ErrNoEar = errors.New("path: polygon has no ear")

// node is a vertex in the circular list used during triangulation.
type node struct {
	i          int // index into the caller's point slice
	p          Point
	prev, next *node
}

// Triangulate splits a polygon with holes into triangles.
//
// pts holds the outer ring followed by every hole; holeStarts holds the index
// of the first point of each hole in increasing order. The result lists
// triangles as index triples into pts, each counter-clockwise (positive
// area). Either ring orientation is accepted.
//
// Holes are merged into the outer ring with bridge edges from each hole's
// leftmost vertex to a visible outer vertex, then the merged ring is ear
// clipped. Rings that touch themselves at a vertex or double back on an edge
// are accepted: when a full turn finds no ear the ring is filtered, local
// self-intersections are cut off, and as a last resort the ring is split
// along a diagonal and each half is clipped on its own.
func Triangulate(pts []Point, holeStarts []int) ([][3]int, error) {
	outerEnd := len(pts)
	if len(holeStarts) > 0 {
		outerEnd = holeStarts[0]
	}
	if outerEnd < 3 {
		return nil, nil
	}

	outer := ring(pts, 0, outerEnd, true)

	var holes []*node
	for k, start := range holeStarts {
		end := len(pts)
		if k+1 < len(holeStarts) {
			end = holeStarts[k+1]
		}
		if end-start < 3 {
			continue
		}
		holes = append(holes, leftmost(ring(pts, start, end, false)))
	}
	sort.SliceStable(holes, func(a, b int) bool {
		pa, pb := holes[a].p, holes[b].p
		return pa.X < pb.X || (pa.X == pb.X && pa.Y < pb.Y)
	})
	for _, h := range holes {
		b := findBridge(h, outer)
		if b == nil {
			return nil, ErrNoEar
		}
		back := splitRing(b, h)
		filter(back, back.next)
		outer = filter(b, b.next)
	}

	c := clipper{tris: make([][3]int, 0, len(pts)+2*len(holes))}
	c.earcut(outer, 0)
	if c.stalled {
		return nil, ErrNoEar
	}
	return c.tris, nil
}

// ring builds a circular list over pts[start:end]. Outer rings are made
// counter-clockwise and holes clockwise.
func ring(pts []Point, start, end int, ccw bool) *node {
	var area float64
	for i := start; i < end; i++ {
		j := i + 1
		if j == end {
			j = start
		}
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}

	var head, last *node
	add := func(i int) {
		n := &node{i: i, p: pts[i]}
		if head == nil {
			head = n
		} else {
			last.next = n
			n.prev = last
		}
		last = n
	}
	if (area > 0) == ccw {
		for i := start; i < end; i++ {
			add(i)
		}
	} else {
		for i := end - 1; i >= start; i-- {
			add(i)
		}
	}
	last.next = head
	head.prev = last
	return head
}

func leftmost(n *node) *node {
	best := n
	for m := n.next; m != n; m = m.next {
		if m.p.X < best.p.X || (m.p.X == best.p.X && m.p.Y < best.p.Y) {
			best = m
		}
	}
	return best
}

// findBridge returns the outer vertex that hole vertex h connects to: the
// nearest edge hit by a ray from h toward -x, narrowed to the visible vertex
// closest in angle to the ray. It returns nil when the ray hits nothing.
func findBridge(h, outer *node) *node {
	hx, hy := h.p.X, h.p.Y
	qx := math.Inf(-1)
	var m *node
	p := outer
	for {
		a, b := p.p, p.next.p
		if hy <= a.Y && hy >= b.Y && a.Y != b.Y {
			x := a.X + (hy-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if x <= hx && x > qx {
				qx = x
				m = p.next
				if a.X < b.X {
					m = p
				}
				if x == hx {
					// The hole touches the edge.
					return m
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}
	if m == nil {
		return nil
	}

	// Vertices inside the triangle (h, hit, m) could block the bridge.
	stop := m
	mp := m.p
	tanMin := math.Inf(1)
	hit := Point{X: qx, Y: hy}
	p = m
	for {
		pp := p.p
		if hx >= pp.X && pp.X >= mp.X && hx != pp.X && inTriangle(h.p, mp, hit, pp) {
			tan := math.Abs(hy-pp.Y) / (hx - pp.X)
			if locallyInside(p, h) &&
				(tan < tanMin || (tan == tanMin && (pp.X > m.p.X || (pp.X == m.p.X && sectorContains(m, p))))) {
				m = p
				tanMin = tan
			}
		}
		p = p.next
		if p == stop {
			break
		}
	}
	return m
}

// sectorContains reports whether the corner at p lies within the corner at m.
func sectorContains(m, p *node) bool {
	return cross(m.prev.p, m.p, p.prev.p) > 0 && cross(p.next.p, m.p, m.next.p) > 0
}

func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
}

// inTriangle reports whether p lies inside or on triangle abc of either
// orientation.
func inTriangle(a, b, c, p Point) bool {
	d1 := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	d2 := (c.X-b.X)*(p.Y-b.Y) - (c.Y-b.Y)*(p.X-b.X)
	d3 := (a.X-c.X)*(p.Y-c.Y) - (a.Y-c.Y)*(p.X-c.X)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// isEar reports whether the vertex n can be cut off as a triangle: it is
// convex and no reflex vertex other than a copy of its predecessor lies in
// the triangle.
func isEar(n *node) bool {
	a, b, c := n.prev.p, n.p, n.next.p
	if cross(a, b, c) <= 0 {
		return false
	}
	for m := n.next.next; m != n.prev; m = m.next {
		if m.p != a && inTriangle(a, b, c, m.p) && cross(m.prev.p, m.p, m.next.p) <= 0 {
			return false
		}
	}
	return true
}

func remove(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

type clipper struct {
	tris    [][3]int
	stalled bool
}

// emit records a counter-clockwise triangle. Zero-area triangles are
// dropped.
func (c *clipper) emit(a, b, d *node) {
	switch k := cross(a.p, b.p, d.p); {
	case k > 0:
		c.tris = append(c.tris, [3]int{a.i, b.i, d.i})
	case k < 0:
		c.tris = append(c.tris, [3]int{a.i, d.i, b.i})
	}
}

// earcut clips ears off the ring at ear. Pass 0 works on the ring as given,
// pass 1 after filtering, pass 2 after curing local self-intersections.
func (c *clipper) earcut(ear *node, pass int) {
	if ear == nil {
		return
	}
	stop := ear
	for ear.prev != ear.next {
		prev, next := ear.prev, ear.next
		if isEar(ear) {
			c.emit(prev, ear, next)
			remove(ear)
			ear = next.next
			stop = next.next
			continue
		}
		ear = next
		if ear != stop {
			continue
		}
		switch pass {
		case 0:
			c.earcut(filter(ear, nil), 1)
		case 1:
			c.earcut(c.cure(filter(ear, nil)), 2)
		default:
			c.split(ear)
		}
		return
	}
}

// filter removes repeated and collinear vertices between start and end,
// including zero-width spikes. It returns a vertex still in the ring.
func filter(start, end *node) *node {
	if start == nil {
		return nil
	}
	if end == nil {
		end = start
	}
	p := start
	for {
		again := false
		if p.p == p.next.p || cross(p.prev.p, p.p, p.next.p) == 0 {
			remove(p)
			p = p.prev
			end = p
			if p == p.next {
				break
			}
			again = true
		} else {
			p = p.next
		}
		if !again && p == end {
			break
		}
	}
	return end
}

// cure cuts off triangles where two edges one vertex apart cross.
func (c *clipper) cure(start *node) *node {
	p := start
	for {
		a, b := p.prev, p.next.next
		if a.p != b.p && intersects(a.p, p.p, p.next.p, b.p) && locallyInside(a, b) && locallyInside(b, a) {
			c.emit(a, p, b)
			remove(p)
			remove(p.next)
			p, start = b, b
		}
		p = p.next
		if p == start {
			break
		}
	}
	return filter(p, nil)
}

// split looks for a diagonal that divides the ring in two and clips both
// halves. Pinched rings split at their repeated vertex.
func (c *clipper) split(start *node) {
	a := start
	for {
		for b := a.next.next; b != a.prev; b = b.next {
			if a.i == b.i || !validDiagonal(a, b) {
				continue
			}
			d := splitRing(a, b)
			a = filter(a, a.next)
			d = filter(d, d.next)
			c.earcut(a, 0)
			c.earcut(d, 0)
			return
		}
		a = a.next
		if a == start {
			break
		}
	}
	c.stalled = true
}

// splitRing links a to b, and a copy of b back to a copy of a, so the ring
// becomes two. It returns the copy of b.
func splitRing(a, b *node) *node {
	a2 := &node{i: a.i, p: a.p}
	b2 := &node{i: b.i, p: b.p}
	an, bp := a.next, b.prev

	a.next, b.prev = b, a
	a2.next, an.prev = an, a2
	b2.next, a2.prev = a2, b2
	bp.next, b2.prev = b2, bp
	return b2
}

func validDiagonal(a, b *node) bool {
	if a.next.i == b.i || a.prev.i == b.i || intersectsRing(a, b) {
		return false
	}
	if locallyInside(a, b) && locallyInside(b, a) && middleInside(a, b) &&
		(cross(a.prev.p, a.p, b.prev.p) != 0 || cross(a.p, b.prev.p, b.p) != 0) {
		return true
	}
	// Two copies of one point, both reflex: the ring is pinched there.
	return a.p == b.p && cross(a.prev.p, a.p, a.next.p) < 0 &&
		cross(b.prev.p, b.p, b.next.p) < 0
}

// locallyInside reports whether the diagonal from a toward b starts inside
// the ring.
func locallyInside(a, b *node) bool {
	if cross(a.prev.p, a.p, a.next.p) > 0 {
		return cross(a.p, b.p, a.next.p) <= 0 && cross(a.p, a.prev.p, b.p) <= 0
	}
	return cross(a.p, b.p, a.prev.p) > 0 || cross(a.p, a.next.p, b.p) > 0
}

// middleInside reports whether the midpoint of ab is inside the ring.
func middleInside(a, b *node) bool {
	inside := false
	mx, my := (a.p.X+b.p.X)/2, (a.p.Y+b.p.Y)/2
	p := a
	for {
		q := p.next
		if (p.p.Y > my) != (q.p.Y > my) && mx < (q.p.X-p.p.X)*(my-p.p.Y)/(q.p.Y-p.p.Y)+p.p.X {
			inside = !inside
		}
		p = q
		if p == a {
			return inside
		}
	}
}

// intersectsRing reports whether segment ab crosses a ring edge that does
// not end at a or b.
func intersectsRing(a, b *node) bool {
	p := a
	for {
		q := p.next
		if p.i != a.i && q.i != a.i && p.i != b.i && q.i != b.i && intersects(p.p, q.p, a.p, b.p) {
			return true
		}
		p = q
		if p == a {
			return false
		}
	}
}

// intersects reports whether segments p1q1 and p2q2 cross or touch.
func intersects(p1, q1, p2, q2 Point) bool {
	o1 := sign(cross(p1, q1, p2))
	o2 := sign(cross(p1, q1, q2))
	o3 := sign(cross(p2, q2, p1))
	o4 := sign(cross(p2, q2, q1))
	if o1 != o2 && o3 != o4 {
		return true
	}
	return o1 == 0 && onSegment(p1, p2, q1) ||
		o2 == 0 && onSegment(p1, q2, q1) ||
		o3 == 0 && onSegment(p2, p1, q2) ||
		o4 == 0 && onSegment(p2, q1, q2)
}

// onSegment reports whether q, collinear with pr, lies within its bounds.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
