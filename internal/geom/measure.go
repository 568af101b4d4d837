// Package geom measures curve-like drawing entities.
package geom

import (
	"math"

	"github.com/mwaldrop/bomgen/internal/dxf"
)

// MillimetersPerMeter is the assumed native drawing unit scale. Drawings
// produced in other native units need a different divisor (see the
// DRAWING_UNITS_PER_METER config knob).
const MillimetersPerMeter = 1000.0

// Length returns the length of a curve-like entity in native drawing units.
// Segments measure as the distance between their endpoints; polylines as the
// sum of consecutive vertex distances. Degenerate geometry (fewer than two
// vertices) and non-curve entities measure zero, never an error.
func Length(e dxf.Entity) float64 {
	switch v := e.(type) {
	case *dxf.Line:
		return Distance(v.Start, v.End)
	case *dxf.Polyline:
		return pathLength(v.Vertices)
	default:
		return 0
	}
}

// Distance is the Euclidean distance between two points.
func Distance(a, b dxf.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func pathLength(pts []dxf.Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += Distance(pts[i-1], pts[i])
	}
	return total
}
