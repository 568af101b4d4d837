// Package metrics exposes Prometheus instrumentation for the BoM pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DrawingsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bomgen_drawings_processed_total",
			Help: "Drawings run through the survey/aggregate pipeline",
		},
		[]string{"status"},
	)

	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bomgen_processing_duration_seconds",
			Help:    "End-to-end pipeline duration per drawing",
			Buckets: prometheus.DefBuckets,
		},
	)

	BomLinesProduced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bomgen_bom_lines_total",
			Help: "BoM lines produced across all drawings",
		},
	)

	UploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bomgen_upload_bytes_total",
			Help: "Bytes of drawing uploads accepted",
		},
	)
)
