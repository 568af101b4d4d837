// Package bom derives a bill of materials from a drawing and a mapping
// table: layer-mapped curve entities contribute measured length, block
// references contribute counts.
package bom

import (
	"math"
	"sort"
	"strings"

	"github.com/mwaldrop/bomgen/internal/dxf"
	"github.com/mwaldrop/bomgen/internal/geom"
	"github.com/mwaldrop/bomgen/internal/mapstore"
)

// Source says which side of the mapping produced a line.
type Source string

const (
	SourceLayer Source = "Layer"
	SourceBlock Source = "Block"
)

// Line is one aggregated BoM row.
type Line struct {
	Item     string        `json:"item"`
	Quantity float64       `json:"quantity"`
	Unit     mapstore.Unit `json:"unit"`
	Source   Source        `json:"source"`
}

// Aggregate walks all entities once and accumulates quantities per item.
// Curve-like entities on a mapped layer add their measured length converted
// to meters; mapped block references add one to the item's count. Unmapped
// layers and blocks contribute nothing. unitsPerMeter converts native
// drawing units (defaults to millimeters when non-positive).
//
// Length quantities are rounded half-to-even at the table's configured
// precision; count quantities are truncated to whole numbers. Output is
// sorted by item identifier, so identical input yields identical output.
func Aggregate(doc *dxf.Document, table *mapstore.Table, unitsPerMeter float64) []Line {
	if unitsPerMeter <= 0 {
		unitsPerMeter = geom.MillimetersPerMeter
	}

	acc := make(map[string]*Line)
	add := func(entry mapstore.Entry, qty float64, src Source) {
		line, ok := acc[entry.Item]
		if !ok {
			line = &Line{Item: entry.Item, Unit: entry.Unit, Source: src}
			acc[entry.Item] = line
		}
		line.Quantity += qty
	}

	for _, e := range doc.Entities {
		switch v := e.(type) {
		case *dxf.Line, *dxf.Polyline:
			layer := strings.ToUpper(e.Layer())
			entry, ok := table.Layers[layer]
			if !ok {
				continue
			}
			add(entry, geom.Length(e)/unitsPerMeter, SourceLayer)
		case *dxf.Insert:
			name := strings.ToUpper(v.BlockName)
			entry, ok := table.Blocks[name]
			if !ok {
				continue
			}
			add(entry, 1, SourceBlock)
		}
	}

	lines := make([]Line, 0, len(acc))
	for _, line := range acc {
		if line.Unit == mapstore.UnitMeters {
			line.Quantity = roundHalfEven(line.Quantity, table.Defaults.LengthPrecision)
		} else {
			line.Quantity = math.Trunc(line.Quantity)
		}
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Item < lines[j].Item })
	return lines
}

// roundHalfEven rounds to the given number of decimal places using banker's
// rounding, so .5 boundaries do not drift upward across many lines.
func roundHalfEven(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.RoundToEven(v*scale) / scale
}
