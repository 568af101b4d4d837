// Package survey tallies the entity, layer and block populations of a
// drawing. The result seeds first-time mapping synthesis and feeds the
// summary view.
package survey

import (
	"sort"
	"strings"

	"github.com/mwaldrop/bomgen/internal/dxf"
)

// Result holds the three occurrence tallies from one pass over a drawing.
// Counts are insertion-order independent; a Result is never mutated after
// Scan returns it.
type Result struct {
	Entities map[string]int `json:"entities"`
	Layers   map[string]int `json:"layers"`
	Blocks   map[string]int `json:"blocks"`
}

// Scan walks every entity once. Every entity contributes to the type tally;
// entities with a layer contribute to the layer tally under the upper-cased
// name; block references contribute to the block tally.
func Scan(doc *dxf.Document) Result {
	r := Result{
		Entities: make(map[string]int),
		Layers:   make(map[string]int),
		Blocks:   make(map[string]int),
	}
	for _, e := range doc.Entities {
		r.Entities[e.Type()]++
		if layer := strings.ToUpper(e.Layer()); layer != "" {
			r.Layers[layer]++
		}
		if ins, ok := e.(*dxf.Insert); ok {
			if name := strings.ToUpper(ins.BlockName); name != "" {
				r.Blocks[name]++
			}
		}
	}
	return r
}

// Count is one name/occurrence pair for display.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SortedDesc flattens a tally into descending-count order, name ascending on
// ties, for the summary views.
func SortedDesc(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
