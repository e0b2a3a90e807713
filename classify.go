package contour

import (
	"log/slog"
	"math"
)

// MinRingArea is the absolute signed area below which a ring is considered
// degenerate and dropped by Classify.
const MinRingArea = 1e-9

// Polygon is one outer ring plus the holes it contains, all traced at the
// same threshold. Holes have the opposite orientation of the outer ring.
type Polygon struct {
	Threshold float64
	Outer     Ring
	Holes     []Ring
}

// Area returns the unsigned area of the outer ring minus its holes.
func (p Polygon) Area() float64 {
	a := math.Abs(p.Outer.Area())
	for _, h := range p.Holes {
		a -= math.Abs(h.Area())
	}
	return a
}

// Classify splits the rings of a band into polygons.
//
// Rings with positive signed area are outer boundaries and rings with
// negative area are holes. Each hole goes to the smallest outer ring that
// contains its first vertex. Rings with |area| <= MinRingArea are dropped.
// Polygons keep the order of their outer rings in the band. Classify never
// fails; an empty band yields no polygons.
func Classify(band ContourBand) []Polygon {
	type outer struct {
		ring Ring
		area float64
	}
	var outers []outer
	var holes []Ring
	for _, r := range band.Rings {
		a := r.Area()
		switch {
		case a > MinRingArea:
			outers = append(outers, outer{ring: r, area: a})
		case a < -MinRingArea:
			holes = append(holes, r)
		}
	}
	if len(outers) == 0 {
		if len(holes) > 0 {
			Logger().Debug("contour: band has holes but no outer ring",
				slog.Float64("threshold", band.Threshold),
				slog.Int("holes", len(holes)))
		}
		return nil
	}

	polys := make([]Polygon, len(outers))
	for i, o := range outers {
		polys[i] = Polygon{Threshold: band.Threshold, Outer: o.ring}
	}

	for _, h := range holes {
		pt := h[0]
		best := -1
		for i, o := range outers {
			if best >= 0 && o.area >= outers[best].area {
				continue
			}
			if !o.ring.Bounds().ContainsPoint(pt.R2()) || !o.ring.Contains(pt) {
				continue
			}
			best = i
		}
		if best < 0 {
			Logger().Debug("contour: dropped hole outside every outer ring",
				slog.Float64("threshold", band.Threshold),
				slog.Float64("x", pt.X),
				slog.Float64("y", pt.Y))
			continue
		}
		polys[best].Holes = append(polys[best].Holes, h)
	}
	return polys
}
