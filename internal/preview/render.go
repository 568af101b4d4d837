// Package preview rasterizes a drawing's curve entities into a PNG so the
// results page can show what was measured.
package preview

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/mwaldrop/bomgen/internal/dxf"
)

const margin = 16.0

// Colors follow the original preview: lines black, lightweight polylines
// blue, heavyweight polylines green.
var colors = map[string][3]float64{
	dxf.TypeLine:       {0, 0, 0},
	dxf.TypeLWPolyline: {0, 0, 0.8},
	dxf.TypePolyline:   {0, 0.6, 0},
}

// Render draws all curve-like entities to scale and encodes a PNG. maxDim
// bounds the longer image side in pixels. A drawing with no drawable
// geometry still renders (a blank canvas), never errors.
func Render(w io.Writer, doc *dxf.Document, maxDim int) error {
	if maxDim <= 0 {
		maxDim = 1200
	}

	paths := collectPaths(doc)
	minX, minY, maxX, maxY := bounds(paths)

	spanX, spanY := maxX-minX, maxY-minY
	scale := 1.0
	if span := math.Max(spanX, spanY); span > 0 {
		scale = (float64(maxDim) - 2*margin) / span
	}
	width := int(spanX*scale + 2*margin)
	height := int(spanY*scale + 2*margin)
	if width < int(2*margin)+1 {
		width = int(2*margin) + 1
	}
	if height < int(2*margin)+1 {
		height = int(2*margin) + 1
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetLineWidth(1)

	// Image Y runs downward; drawing Y runs upward.
	tx := func(p dxf.Point) (float64, float64) {
		return margin + (p.X-minX)*scale, margin + (maxY-p.Y)*scale
	}

	for _, path := range paths {
		c := colors[path.kind]
		dc.SetRGB(c[0], c[1], c[2])
		x, y := tx(path.points[0])
		dc.MoveTo(x, y)
		for _, p := range path.points[1:] {
			x, y = tx(p)
			dc.LineTo(x, y)
		}
		dc.Stroke()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

type path struct {
	kind   string
	points []dxf.Point
}

func collectPaths(doc *dxf.Document) []path {
	var paths []path
	for _, e := range doc.Entities {
		switch v := e.(type) {
		case *dxf.Line:
			paths = append(paths, path{kind: v.Type(), points: []dxf.Point{v.Start, v.End}})
		case *dxf.Polyline:
			if len(v.Vertices) > 1 {
				paths = append(paths, path{kind: v.Type(), points: v.Vertices})
			}
		}
	}
	return paths
}

func bounds(paths []path) (minX, minY, maxX, maxY float64) {
	first := true
	for _, pa := range paths {
		for _, p := range pa.points {
			if first {
				minX, maxX = p.X, p.X
				minY, maxY = p.Y, p.Y
				first = false
				continue
			}
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return
}
