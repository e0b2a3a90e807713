package contour

// Domain is the scalar extent mapped onto a palette.
type Domain struct {
	Min, Max float64
}

// Normalize maps v linearly into [0, 1], clamping values outside the domain
// to the nearest end. An empty domain (Min == Max) maps everything to 0.
func (d Domain) Normalize(v float64) float64 {
	if d.Max == d.Min {
		return 0
	}
	return clamp01((v - d.Min) / (d.Max - d.Min))
}

// ColorOf returns the palette color for value within domain. Values outside
// the domain take the color of the nearest endpoint.
func ColorOf(value float64, domain Domain, p Palette) RGBA {
	return p.At(domain.Normalize(value))
}

// ColorOfIndex colors a band by its rank: index i of count bands samples the
// palette at i/count. A non-positive count samples position 0.
func ColorOfIndex(index, count int, p Palette) RGBA {
	if count <= 0 {
		return p.At(0)
	}
	return p.At(clamp01(float64(index) / float64(count)))
}
