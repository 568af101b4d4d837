// Package mapstore persists the layer/block to item mapping tables that
// drive BoM aggregation.
package mapstore

import (
	"fmt"
	"sort"

	"github.com/mwaldrop/bomgen/internal/survey"
)

// Unit is the quantity unit of a mapped item.
type Unit string

const (
	// UnitMeters marks length-derived items.
	UnitMeters Unit = "m"
	// UnitPieces marks count-derived items.
	UnitPieces Unit = "pcs"
)

func (u Unit) valid() bool {
	return u == UnitMeters || u == UnitPieces
}

// Entry translates one layer or block name into a BoM item.
type Entry struct {
	Item string `json:"item"`
	Unit Unit   `json:"unit"`
}

// Defaults holds table-wide settings.
type Defaults struct {
	UnitLength      Unit `json:"unit_length"`
	LengthPrecision int  `json:"length_precision"`
}

// Table is a complete mapping: layer entries, block entries and defaults.
// Keys are upper-case; the table is read-only during aggregation.
type Table struct {
	Layers   map[string]Entry `json:"layers"`
	Blocks   map[string]Entry `json:"blocks"`
	Defaults Defaults         `json:"defaults"`
}

// CollisionError reports a mapping where one item identifier is declared
// with two different units. Summing lengths and counts into one quantity is
// never what the user meant, so the table is rejected up front.
type CollisionError struct {
	Item  string
	Units [2]Unit
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("mapping item %q declared with conflicting units %s and %s", e.Item, e.Units[0], e.Units[1])
}

// Validate checks structural requirements: both entry maps present, known
// units, non-negative precision, and unit-consistent item identifiers.
func (t *Table) Validate() error {
	if t.Layers == nil {
		return fmt.Errorf("missing layers")
	}
	if t.Blocks == nil {
		return fmt.Errorf("missing blocks")
	}
	if !t.Defaults.UnitLength.valid() {
		return fmt.Errorf("invalid default length unit %q", t.Defaults.UnitLength)
	}
	if t.Defaults.LengthPrecision < 0 {
		return fmt.Errorf("negative length precision %d", t.Defaults.LengthPrecision)
	}

	units := make(map[string]Unit, len(t.Layers)+len(t.Blocks))
	check := func(kind, key string, e Entry) error {
		if e.Item == "" {
			return fmt.Errorf("%s %q: empty item", kind, key)
		}
		if !e.Unit.valid() {
			return fmt.Errorf("%s %q: invalid unit %q", kind, key, e.Unit)
		}
		if prev, ok := units[e.Item]; ok && prev != e.Unit {
			return &CollisionError{Item: e.Item, Units: [2]Unit{prev, e.Unit}}
		}
		units[e.Item] = e.Unit
		return nil
	}
	// Deterministic iteration so the same bad table reports the same error.
	for _, key := range sortedKeys(t.Layers) {
		if err := check("layer", key, t.Layers[key]); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(t.Blocks) {
		if err := check("block", key, t.Blocks[key]); err != nil {
			return err
		}
	}
	return nil
}

// Synthesize builds a starter table from a drawing survey: each layer maps
// to itself as a length item, each block to itself as a count item.
func Synthesize(sv survey.Result) *Table {
	t := &Table{
		Layers: make(map[string]Entry, len(sv.Layers)),
		Blocks: make(map[string]Entry, len(sv.Blocks)),
		Defaults: Defaults{
			UnitLength:      UnitMeters,
			LengthPrecision: 2,
		},
	}
	for layer := range sv.Layers {
		t.Layers[layer] = Entry{Item: layer, Unit: UnitMeters}
	}
	for block := range sv.Blocks {
		item := block
		if _, taken := sv.Layers[block]; taken {
			// A name used both as a layer and a block would otherwise
			// synthesize one item with two units.
			item = block + " (PCS)"
		}
		t.Blocks[block] = Entry{Item: item, Unit: UnitPieces}
	}
	return t
}

func sortedKeys(m map[string]Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
