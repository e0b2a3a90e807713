package contour

// Cell edges, clockwise from the top in grid space (row y grows downward).
const (
	edgeTop uint8 = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// Corner bits of the 4-bit cell case. A bit is set when the corner sample is
// above the threshold.
const (
	cornerTopLeft     = 1
	cornerTopRight    = 2
	cornerBottomRight = 4
	cornerBottomLeft  = 8
)

// Saddle cases: diagonally opposite corners share a side of the threshold.
const (
	saddleMain = cornerTopLeft | cornerBottomRight
	saddleAnti = cornerTopRight | cornerBottomLeft
)

// cellSegment is a directed crossing between two edges of one cell.
// The above region is always on the left of from->to in grid space, which
// gives outer rings positive shoelace area.
type cellSegment struct {
	from, to uint8
}

// caseSegments maps the 4-bit corner case to the segments it produces.
// Saddle entries hold the separated resolution; see joinedSaddles.
var caseSegments = [16][]cellSegment{
	0:  nil,
	1:  {{edgeTop, edgeLeft}},
	2:  {{edgeRight, edgeTop}},
	3:  {{edgeRight, edgeLeft}},
	4:  {{edgeBottom, edgeRight}},
	5:  {{edgeTop, edgeLeft}, {edgeBottom, edgeRight}},
	6:  {{edgeBottom, edgeTop}},
	7:  {{edgeBottom, edgeLeft}},
	8:  {{edgeLeft, edgeBottom}},
	9:  {{edgeTop, edgeBottom}},
	10: {{edgeRight, edgeTop}, {edgeLeft, edgeBottom}},
	11: {{edgeRight, edgeBottom}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeTop, edgeRight}},
	14: {{edgeLeft, edgeTop}},
	15: nil,
}

// joinedSaddles holds the saddle resolutions in which the above corners
// connect through the cell center and the below corners are cut off.
var joinedSaddles = map[int][]cellSegment{
	saddleMain: {{edgeTop, edgeRight}, {edgeBottom, edgeLeft}},
	saddleAnti: {{edgeLeft, edgeTop}, {edgeRight, edgeBottom}},
}

// SaddlePolicy decides how an ambiguous cell is split. It receives the four
// corner samples (top-left, top-right, bottom-right, bottom-left) and the
// threshold, and reports whether the above corners join through the center.
//
// A policy must be a pure function of its arguments: the same grid and
// threshold must always yield the same ring topology.
type SaddlePolicy func(tl, tr, br, bl, threshold float64) bool

// AverageSaddle joins the above corners when the mean of the four corners is
// above the threshold. This is the default policy.
func AverageSaddle(tl, tr, br, bl, threshold float64) bool {
	return (tl+tr+br+bl)/4 > threshold
}

// SeparateSaddle never joins, so every above corner gets its own ring piece.
func SeparateSaddle(_, _, _, _, _ float64) bool { return false }

// JoinSaddle always joins the above corners.
func JoinSaddle(_, _, _, _, _ float64) bool { return true }

// segmentsFor returns the segments for a cell case, consulting the saddle
// policy only for the two ambiguous cases.
func segmentsFor(c int, join func() bool) []cellSegment {
	if c == saddleMain || c == saddleAnti {
		if join() {
			return joinedSaddles[c]
		}
	}
	return caseSegments[c]
}
