package contour

import (
	"log/slog"
	"math"

	"github.com/gogpu/contour/internal/parallel"
)

// ContourBand holds the rings traced at one threshold. The rings bound the
// region where samples are above the threshold.
type ContourBand struct {
	Threshold float64
	Rings     []Ring
}

// Empty reports whether the band has no rings.
func (b ContourBand) Empty() bool { return len(b.Rings) == 0 }

// Lookup returns the band traced at threshold t.
func Lookup(bands []ContourBand, t float64) (ContourBand, bool) {
	for _, b := range bands {
		if b.Threshold == t {
			return b, true
		}
	}
	return ContourBand{}, false
}

// ExtractOption configures contour extraction.
type ExtractOption func(*extractOptions)

type extractOptions struct {
	saddle  SaddlePolicy
	workers int
}

func defaultExtractOptions() extractOptions {
	return extractOptions{saddle: AverageSaddle}
}

// WithSaddlePolicy sets the rule used to split ambiguous saddle cells.
// A nil policy restores AverageSaddle.
func WithSaddlePolicy(p SaddlePolicy) ExtractOption {
	return func(o *extractOptions) {
		if p == nil {
			p = AverageSaddle
		}
		o.saddle = p
	}
}

// WithWorkers traces up to n bands concurrently. Values below 2 trace
// sequentially. The result does not depend on n.
func WithWorkers(n int) ExtractOption {
	return func(o *extractOptions) {
		o.workers = n
	}
}

// Extract traces one band per threshold, in threshold order.
//
// It fails with ErrInvalidInput when grid is nil or the thresholds are empty,
// not finite, or not strictly increasing. A threshold outside the grid's
// value range yields an empty band.
func Extract(grid *Grid, thresholds Thresholds, opts ...ExtractOption) ([]ContourBand, error) {
	if grid == nil {
		return nil, invalidf("grid is nil")
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	o := defaultExtractOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bands := make([]ContourBand, len(thresholds))
	if o.workers < 2 || len(thresholds) < 2 {
		for i, t := range thresholds {
			bands[i] = extractBand(grid, t, o)
		}
		return bands, nil
	}

	pool := parallel.NewPool(min(o.workers, len(thresholds)))
	defer pool.Close()
	pool.ForEach(len(thresholds), func(i int) {
		bands[i] = extractBand(grid, thresholds[i], o)
	})
	return bands, nil
}

// ExtractBand traces the rings of a single threshold.
func ExtractBand(grid *Grid, threshold float64, opts ...ExtractOption) (ContourBand, error) {
	if grid == nil {
		return ContourBand{}, invalidf("grid is nil")
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return ContourBand{}, invalidf("threshold is not finite: %v", threshold)
	}

	o := defaultExtractOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return extractBand(grid, threshold, o), nil
}

// extractBand traces a validated threshold.
func extractBand(grid *Grid, threshold float64, o extractOptions) ContourBand {
	band := ContourBand{Threshold: threshold}
	lo, hi := grid.Extent()
	if threshold < lo || threshold >= hi {
		return band
	}

	m := marcher{grid: grid, threshold: threshold, saddle: o.saddle}
	band.Rings = m.trace(m.segments())

	Logger().Debug("contour: band extracted",
		slog.Float64("threshold", threshold),
		slog.Int("rings", len(band.Rings)))
	return band
}

// edgeKey identifies the grid edge between sample (x, y) and its right
// neighbor, or its lower neighbor when vertical is set.
type edgeKey struct {
	x, y     int
	vertical bool
}

type segment struct {
	from, to edgeKey
}

// marcher runs marching squares over the grid padded by one virtual sample on
// every side. Virtual samples are always below the threshold, so regions that
// reach the border are closed along it.
type marcher struct {
	grid      *Grid
	threshold float64
	saddle    SaddlePolicy
}

// sample returns the value at (x, y) and whether it lies on the real grid.
func (m *marcher) sample(x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= m.grid.width || y >= m.grid.height {
		return math.Inf(-1), false
	}
	return m.grid.At(x, y), true
}

func (m *marcher) above(x, y int) bool {
	v, ok := m.sample(x, y)
	return ok && v > m.threshold
}

// segments emits the oriented segments of every cell in row-major order.
func (m *marcher) segments() []segment {
	var segs []segment
	w, h := m.grid.width, m.grid.height
	for y := -1; y < h; y++ {
		for x := -1; x < w; x++ {
			c := 0
			if m.above(x, y) {
				c |= cornerTopLeft
			}
			if m.above(x+1, y) {
				c |= cornerTopRight
			}
			if m.above(x+1, y+1) {
				c |= cornerBottomRight
			}
			if m.above(x, y+1) {
				c |= cornerBottomLeft
			}
			if c == 0 || c == 15 {
				continue
			}
			join := func() bool {
				tl, _ := m.sample(x, y)
				tr, _ := m.sample(x+1, y)
				br, _ := m.sample(x+1, y+1)
				bl, _ := m.sample(x, y+1)
				return m.saddle(tl, tr, br, bl, m.threshold)
			}
			for _, s := range segmentsFor(c, join) {
				segs = append(segs, segment{
					from: cellEdge(x, y, s.from),
					to:   cellEdge(x, y, s.to),
				})
			}
		}
	}
	return segs
}

// cellEdge converts a cell-relative edge into a grid edge key.
func cellEdge(x, y int, e uint8) edgeKey {
	switch e {
	case edgeTop:
		return edgeKey{x: x, y: y}
	case edgeRight:
		return edgeKey{x: x + 1, y: y, vertical: true}
	case edgeBottom:
		return edgeKey{x: x, y: y + 1}
	case edgeLeft:
		return edgeKey{x: x, y: y, vertical: true}
	default:
		panic("contour: invalid cell edge")
	}
}

// crossing returns the point where the threshold crosses edge e.
func (m *marcher) crossing(e edgeKey) Point {
	x1, y1 := e.x+1, e.y
	if e.vertical {
		x1, y1 = e.x, e.y+1
	}
	p0 := Pt(float64(e.x), float64(e.y))
	p1 := Pt(float64(x1), float64(y1))

	v0, ok0 := m.sample(e.x, e.y)
	v1, ok1 := m.sample(x1, y1)
	switch {
	case !ok0:
		return p1
	case !ok1:
		return p0
	}
	return p0.Lerp(p1, crossingT(v0, v1, m.threshold))
}

// crossingT returns where along v0->v1 the threshold is reached, in [0, 1].
func crossingT(v0, v1, threshold float64) float64 {
	if v0 == v1 {
		return 0.5
	}
	return clamp01((threshold - v0) / (v1 - v0))
}

// trace stitches segments into closed rings. Each crossing edge starts exactly
// one segment, so rings are followed by edge identity, starting from the first
// unused segment in scan order.
func (m *marcher) trace(segs []segment) []Ring {
	byStart := make(map[edgeKey]int, len(segs))
	for i, s := range segs {
		byStart[s.from] = i
	}

	used := make([]bool, len(segs))
	var rings []Ring
	for i := range segs {
		if used[i] {
			continue
		}
		var pts []Point
		closed := false
		for j := i; ; {
			used[j] = true
			pts = append(pts, m.crossing(segs[j].from))
			next, ok := byStart[segs[j].to]
			if !ok || (used[next] && next != i) {
				break
			}
			if next == i {
				closed = true
				break
			}
			j = next
		}
		if !closed {
			Logger().Debug("contour: dropped open chain", slog.Int("points", len(pts)))
			continue
		}
		pts = dedupe(pts)
		if !distinct(pts, 3) {
			continue
		}
		rings = append(rings, Ring(pts))
	}
	return rings
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
