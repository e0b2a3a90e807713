package contour

import "math"

// Thresholds is an ordered list of strictly increasing contour levels.
// The levels slice the grid into bands (-inf, t0], (t0, t1], ..., (tn, +inf).
type Thresholds []float64

// Validate reports ErrInvalidInput when the list is empty, holds a non-finite
// value, or is not strictly increasing.
func (ts Thresholds) Validate() error {
	if len(ts) == 0 {
		return invalidf("threshold list is empty")
	}
	for i, t := range ts {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return invalidf("threshold %d is not finite: %v", i, t)
		}
		if i > 0 && t <= ts[i-1] {
			return invalidf("thresholds not strictly increasing at %d: %v <= %v", i, t, ts[i-1])
		}
	}
	return nil
}

// Extent returns the first and last threshold.
// The result is meaningless for an empty list.
func (ts Thresholds) Extent() Domain {
	if len(ts) == 0 {
		return Domain{}
	}
	return Domain{Min: ts[0], Max: ts[len(ts)-1]}
}

// Range returns start, start+step, ... up to but excluding stop.
// Each value is computed as start+i*step so errors do not accumulate.
func Range(start, stop, step float64) (Thresholds, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidf("range bound is not finite: %v", v)
		}
	}
	if step <= 0 {
		return nil, invalidf("range step must be positive, got %v", step)
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil, invalidf("range [%v, %v) is empty", start, stop)
	}
	ts := make(Thresholds, n)
	for i := range ts {
		ts[i] = start + float64(i)*step
	}
	return ts, nil
}

// EvenThresholds returns n levels evenly spaced strictly inside (lo, hi).
func EvenThresholds(lo, hi float64, n int) (Thresholds, error) {
	if n < 1 {
		return nil, invalidf("need at least one threshold, got %d", n)
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || hi <= lo {
		return nil, invalidf("invalid threshold interval [%v, %v]", lo, hi)
	}
	ts := make(Thresholds, n)
	step := (hi - lo) / float64(n+1)
	for i := range ts {
		ts[i] = lo + float64(i+1)*step
	}
	return ts, nil
}
