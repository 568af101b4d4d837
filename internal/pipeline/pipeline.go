// Package pipeline runs the drawing-to-BoM derivation: survey the drawing,
// load or bootstrap the mapping for the chosen identity, then aggregate.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/mwaldrop/bomgen/internal/bom"
	"github.com/mwaldrop/bomgen/internal/dxf"
	"github.com/mwaldrop/bomgen/internal/mapstore"
	"github.com/mwaldrop/bomgen/internal/metrics"
	"github.com/mwaldrop/bomgen/internal/survey"
)

// Result is everything one drawing run produces.
type Result struct {
	Identity string          `json:"mapping"`
	Survey   survey.Result   `json:"survey"`
	Table    *mapstore.Table `json:"-"`
	Lines    []bom.Line      `json:"bom"`
}

// Pipeline wires the surveyor, mapping store and aggregator together. It is
// stateless across runs; concurrent runs only share the mapping store, which
// synchronizes itself.
type Pipeline struct {
	store         *mapstore.Store
	log           *slog.Logger
	unitsPerMeter float64
	stats         *Stats
}

func New(store *mapstore.Store, log *slog.Logger, unitsPerMeter float64, statsWindow time.Duration) *Pipeline {
	return &Pipeline{
		store:         store,
		log:           log,
		unitsPerMeter: unitsPerMeter,
		stats:         NewStats(statsWindow),
	}
}

// Process runs one drawing start to finish. The mapping identity selects
// which persisted table applies; a missing table is synthesized from the
// survey before aggregation.
func (p *Pipeline) Process(doc *dxf.Document, identity string) (*Result, error) {
	start := time.Now()

	sv := survey.Scan(doc)
	table, err := p.store.LoadOrInit(identity, sv)
	if err != nil {
		metrics.DrawingsProcessed.WithLabelValues("mapping_error").Inc()
		return nil, err
	}
	lines := bom.Aggregate(doc, table, p.unitsPerMeter)

	elapsed := time.Since(start)
	p.stats.Record(elapsed.Milliseconds())
	metrics.DrawingsProcessed.WithLabelValues("ok").Inc()
	metrics.ProcessingDuration.Observe(elapsed.Seconds())
	metrics.BomLinesProduced.Add(float64(len(lines)))

	p.log.Info("drawing processed",
		"mapping", identity,
		"entities", len(doc.Entities),
		"layers", len(sv.Layers),
		"blocks", len(sv.Blocks),
		"bom_lines", len(lines),
		"duration_ms", elapsed.Milliseconds(),
	)

	return &Result{
		Identity: identity,
		Survey:   sv,
		Table:    table,
		Lines:    lines,
	}, nil
}

// StatsSnapshot returns the rolling latency aggregate.
func (p *Pipeline) StatsSnapshot() StatsSnapshot {
	return p.stats.Snapshot()
}
