package contour

import "gonum.org/v1/gonum/spatial/r3"

// Option configures Run.
// Use functional options to customize the pipeline.
//
// Example:
//
//	// Flat bands colored by value
//	bands, err := contour.Run(grid, ts)
//
//	// Extruded bands, colored by rank with a rainbow palette
//	bands, err := contour.Run(grid, ts,
//	    contour.WithSolids(true),
//	    contour.WithDepthScale(20),
//	    contour.WithIndexColors(true),
//	    contour.WithPalette(contour.Rainbow),
//	)
type Option func(*options)

// options holds optional configuration for Run.
type options struct {
	axis        r3.Vec
	depthScale  float64
	domain      *Domain
	palette     Palette
	indexColors bool
	saddle      SaddlePolicy
	scale       float64
	offset      Point
	solids      bool
	workers     int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		axis:       ZAxis,
		depthScale: 1,
		palette:    Viridis,
		saddle:     AverageSaddle,
		scale:      1,
	}
}

// WithAxis sets the extrusion direction. It is normalized by Extrude.
func WithAxis(axis r3.Vec) Option {
	return func(o *options) {
		o.axis = axis
	}
}

// WithDepthScale sets the factor applied to a band's threshold to get its
// extrusion depth.
func WithDepthScale(s float64) Option {
	return func(o *options) {
		o.depthScale = s
	}
}

// WithDomain fixes the value range mapped onto the palette. By default the
// domain spans the first to the last threshold.
func WithDomain(d Domain) Option {
	return func(o *options) {
		o.domain = &d
	}
}

// WithPalette sets the palette. A nil palette is ignored.
func WithPalette(p Palette) Option {
	return func(o *options) {
		if p != nil {
			o.palette = p
		}
	}
}

// WithIndexColors colors bands by their rank among the thresholds instead of
// by their value.
func WithIndexColors(enabled bool) Option {
	return func(o *options) {
		o.indexColors = enabled
	}
}

// WithSaddle sets the saddle policy used during extraction.
func WithSaddle(p SaddlePolicy) Option {
	return func(o *options) {
		if p != nil {
			o.saddle = p
		}
	}
}

// WithTransform maps grid coordinates to output coordinates as
// p*scale + offset before extrusion.
func WithTransform(scale float64, offset Point) Option {
	return func(o *options) {
		o.scale = scale
		o.offset = offset
	}
}

// WithSolids enables extrusion of every outline. Outlines that cannot be
// extruded keep a nil solid.
func WithSolids(enabled bool) Option {
	return func(o *options) {
		o.solids = enabled
	}
}

// WithConcurrency extracts up to n bands at once. The output is identical
// to a sequential run.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
