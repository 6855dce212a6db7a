// resolve.go
package config

import (
	"github.com/xtding233/nftgen/internal/catalog"
	"github.com/xtding233/nftgen/internal/rarity"
)

// Overrides carries values from the environment or command-line flags that
// take precedence over the config files. Nil means "not overridden".
type Overrides struct {
	OutputDir  *string
	Count      *int
	Seed       *uint64
	MaxRetries *int
}

// Merge returns o with every field set in next replacing o's.
func (o Overrides) Merge(next Overrides) Overrides {
	if next.OutputDir != nil {
		o.OutputDir = next.OutputDir
	}
	if next.Count != nil {
		o.Count = next.Count
	}
	if next.Seed != nil {
		o.Seed = next.Seed
	}
	if next.MaxRetries != nil {
		o.MaxRetries = next.MaxRetries
	}
	return o
}

// Resolve applies overrides and defaults to raw, validates the result and
// returns normalized run parameters.
func Resolve(raw RawConfig, o Overrides) (Params, error) {
	if o.OutputDir != nil {
		raw.OutputDir = *o.OutputDir
	}
	if o.Count != nil {
		raw.Count = o.Count
	}
	if o.Seed != nil {
		raw.Seed = o.Seed
	}
	if o.MaxRetries != nil {
		raw.MaxRetries = o.MaxRetries
	}
	if err := ValidateRaw(raw); err != nil {
		return Params{}, err
	}

	p := Params{
		OutputDir:  raw.OutputDir,
		Count:      DefaultCount,
		Seed:       raw.Seed,
		MaxRetries: DefaultMaxRetries,
		Layers:     make([]catalog.Layer, len(raw.Layers)),
		Weights:    make(rarity.WeightTable, len(raw.Weights)),
		Version:    raw.Version,
	}
	if p.OutputDir == "" {
		p.OutputDir = DefaultOutputDir
	}
	if raw.Count != nil {
		p.Count = *raw.Count
	}
	if raw.MaxRetries != nil {
		p.MaxRetries = *raw.MaxRetries
	}
	for i, l := range raw.Layers {
		p.Layers[i] = catalog.Layer{Name: l.Name, Dir: l.Path}
	}
	for layer, variants := range raw.Weights {
		inner := make(map[string]float64, len(variants))
		for v, w := range variants {
			inner[v] = w
		}
		p.Weights[layer] = inner
	}
	return p, nil
}
