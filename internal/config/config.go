package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Filesystem layout
	UploadDir  string
	MappingDir string

	// Auth: when set, the JSON API requires this bearer token.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Drawing native units per meter (millimeter drawings: 1000).
	UnitsPerMeter float64

	// Preview rendering
	PreviewMaxDim int

	// Rolling latency stats window
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8094"),

		UploadDir:  envOr("UPLOAD_DIR", "uploads"),
		MappingDir: envOr("MAPPING_DIR", "mappings"),

		APIKey: os.Getenv("BOMGEN_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 33554432), // 32MB

		UnitsPerMeter: envFloat("DRAWING_UNITS_PER_METER", 1000),

		PreviewMaxDim: envInt("PREVIEW_MAX_DIM", 1200),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 33554432
	}
	if cfg.UnitsPerMeter <= 0 {
		cfg.UnitsPerMeter = 1000
	}
	if cfg.PreviewMaxDim <= 0 {
		cfg.PreviewMaxDim = 1200
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.MappingDir == "" {
		return fmt.Errorf("MAPPING_DIR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
