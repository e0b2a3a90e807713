package contour

import (
	"errors"
	"log/slog"
)

// Band is the renderable output for one threshold. Polygons, Outlines and
// Solids are index-aligned; Solids is nil unless extrusion was requested. A
// nil entry in Solids marks an outline that could not be extruded; the flat
// outline is still drawn.
type Band struct {
	Index     int // position of the threshold in the input list
	Threshold float64
	Color     RGBA
	Polygons  []Polygon
	Outlines  []Outline
	Solids    []*Solid
}

// Run extracts, classifies, builds and optionally extrudes every band.
//
// Invalid input fails with ErrInvalidInput and no output. Polygons whose
// outline cannot be built are logged and skipped; bands left with nothing to
// draw are omitted. A failed extrusion is logged and leaves a nil solid next
// to the kept outline.
func Run(grid *Grid, thresholds Thresholds, opts ...Option) ([]Band, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	bands, err := Extract(grid, thresholds, WithSaddlePolicy(o.saddle), WithWorkers(o.workers))
	if err != nil {
		return nil, err
	}

	domain := thresholds.Extent()
	if o.domain != nil {
		domain = *o.domain
	}
	log := Logger()

	var out []Band
	for i, cb := range bands {
		band := Band{Index: i, Threshold: cb.Threshold}
		if o.indexColors {
			band.Color = ColorOfIndex(i, len(thresholds), o.palette)
		} else {
			band.Color = ColorOf(cb.Threshold, domain, o.palette)
		}

		for _, p := range Classify(cb) {
			outline, err := Build(p)
			if err != nil {
				skip(log, cb.Threshold, err)
				continue
			}
			if o.scale != 1 || o.offset != (Point{}) {
				outline = outline.Transform(o.scale, o.offset)
			}

			var solid *Solid
			if o.solids {
				solid, err = Extrude(outline, cb.Threshold*o.depthScale, o.axis)
				if err != nil {
					skip(log, cb.Threshold, err)
				}
			}

			band.Polygons = append(band.Polygons, p)
			band.Outlines = append(band.Outlines, outline)
			if o.solids {
				band.Solids = append(band.Solids, solid)
			}
		}

		log.Debug("contour: band built",
			slog.Int("index", i),
			slog.Float64("threshold", cb.Threshold),
			slog.Int("rings", len(cb.Rings)),
			slog.Int("outlines", len(band.Outlines)))
		if len(band.Outlines) > 0 {
			out = append(out, band)
		}
	}
	return out, nil
}

func skip(log *slog.Logger, threshold float64, err error) {
	if !errors.Is(err, ErrDegenerateGeometry) {
		log.Error("contour: unexpected build failure", slog.Float64("threshold", threshold), slog.Any("err", err))
		return
	}
	log.Warn("contour: skipped degenerate geometry", slog.Float64("threshold", threshold), slog.Any("err", err))
}
