// Package contour turns regular grids of scalar samples into colored iso-bands.
//
// # Overview
//
// contour is a Pure Go library that extracts closed contour rings from a
// height-field style grid, separates them into polygons with holes, and turns
// every polygon into renderer-agnostic geometry: a flat outline for 2D fills or
// an extruded solid for 3D scenes. Each band gets a deterministic color from a
// palette.
//
// # Quick Start
//
//	import "github.com/gogpu/contour"
//
//	grid, err := contour.NewGrid(4, 4, values)
//	if err != nil {
//	    return err
//	}
//
//	bands, err := contour.Run(grid, contour.Thresholds{2, 4, 6},
//	    contour.WithPalette(contour.Viridis),
//	    contour.WithDepthScale(0.5),
//	)
//
// # Pipeline
//
// The stages can also be called one by one:
//   - [Extract]: grid + thresholds -> one [ContourBand] of rings per threshold
//   - [Classify]: band -> polygons (outer ring + holes)
//   - [Build]: polygon -> [Outline]
//   - [Extrude]: outline -> [Solid]
//   - [ColorOf], [ColorOfIndex]: value or rank -> [RGBA]
//
// # Coordinate System
//
// Points live in grid space: X is the column, Y is the row, sample (x, y) sits
// at point (x, y). Outer rings have positive shoelace area and holes negative
// area in this space. Solids are built with the outline in the z=0 plane.
//
// # Errors
//
// Malformed input fails with [ErrInvalidInput] and no partial output. A single
// polygon that cannot be turned into geometry fails with
// [ErrDegenerateGeometry]; [Run] logs and skips such polygons.
package contour
