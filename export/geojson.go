// Package export writes contour bands to interchange formats: GeoJSON for
// flat bands and Wavefront OBJ/MTL for extruded solids.
package export

import (
	"encoding/json"
	"io"

	"github.com/gogpu/contour"
)

// FeatureCollection is the GeoJSON document written by WriteGeoJSON.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one band as a GeoJSON feature.
type Feature struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties carries the band's threshold and color.
type Properties struct {
	Value float64 `json:"value"`
	Index int     `json:"index"`
	Fill  string  `json:"fill"`
}

// Geometry is a MultiPolygon: polygons of rings (first outer, following
// holes) of [x, y] positions, each ring closed by repeating its first point.
type Geometry struct {
	Type        string           `json:"type"`
	Coordinates [][][][2]float64 `json:"coordinates"`
}

// GeoJSON converts bands into a feature collection, one MultiPolygon feature
// per band.
func GeoJSON(bands []contour.Band) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(bands))}
	for _, b := range bands {
		geom := Geometry{Type: "MultiPolygon", Coordinates: make([][][][2]float64, 0, len(b.Outlines))}
		for _, o := range b.Outlines {
			poly := make([][][2]float64, 0, 1+len(o.Holes))
			for _, r := range o.Rings() {
				poly = append(poly, closedRing(r))
			}
			geom.Coordinates = append(geom.Coordinates, poly)
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Properties: Properties{
				Value: b.Threshold,
				Index: b.Index,
				Fill:  b.Color.Hex(),
			},
			Geometry: geom,
		})
	}
	return fc
}

// WriteGeoJSON encodes the bands as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, bands []contour.Band) error {
	enc := json.NewEncoder(w)
	return enc.Encode(GeoJSON(bands))
}

func closedRing(r []contour.Point) [][2]float64 {
	out := make([][2]float64, 0, len(r)+1)
	for _, p := range r {
		out = append(out, [2]float64{p.X, p.Y})
	}
	if len(r) > 0 {
		out = append(out, [2]float64{r[0].X, r[0].Y})
	}
	return out
}
