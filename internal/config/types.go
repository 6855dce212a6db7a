// types.go
package config

import (
	"github.com/xtding233/nftgen/internal/catalog"
	"github.com/xtding233/nftgen/internal/rarity"
)

const (
	DefaultCount      = 1000
	DefaultMaxRetries = 1_000_000
	DefaultOutputDir  = "output_nfts"
)

// RawConfig is loaded from YAML; pointer fields distinguish "unset" from zero.
type RawConfig struct {
	Version    string                        `yaml:"version"`
	OutputDir  string                        `yaml:"output_dir,omitempty"`
	Count      *int                          `yaml:"count,omitempty"`
	Seed       *uint64                       `yaml:"seed,omitempty"`
	MaxRetries *int                          `yaml:"max_retries,omitempty"` // 0 = retry forever
	Layers     []LayerConfig                 `yaml:"layers"`
	Weights    map[string]map[string]float64 `yaml:"weights,omitempty"`
	Notes      string                        `yaml:"notes,omitempty"`
}

// LayerConfig is one layer; list order is paint order, bottom first.
type LayerConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Params are the normalized settings of one generation run.
type Params struct {
	OutputDir  string
	Count      int     // requested; clamped to the catalog size at run time
	Seed       *uint64 // nil => crypto random source
	MaxRetries int
	Layers     []catalog.Layer
	Weights    rarity.WeightTable
	Version    string // effective config version for tracing
}
