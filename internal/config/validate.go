package config

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/xtding233/nftgen/internal/rarity"
)

// ValidationError lists every problem found in one config.
type ValidationError struct {
	Problems []string
	causes   []error
}

func (e *ValidationError) Error() string {
	return "config validation failed: " + strings.Join(e.Problems, "; ")
}

// Unwrap exposes typed causes such as rarity.ErrInvalidWeight to errors.Is.
func (e *ValidationError) Unwrap() []error { return e.causes }

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	v := &ValidationError{}

	// layers
	if len(cfg.Layers) == 0 {
		v.Problems = append(v.Problems, "layers must list at least one layer")
	}
	seen := make(map[string]bool, len(cfg.Layers))
	for i, l := range cfg.Layers {
		if l.Name == "" {
			v.Problems = append(v.Problems, fmt.Sprintf("layers[%d].name is required", i))
		} else if seen[l.Name] {
			v.Problems = append(v.Problems, fmt.Sprintf("layers[%d].name %q is duplicated", i, l.Name))
		}
		seen[l.Name] = true
		if l.Path == "" {
			v.Problems = append(v.Problems, fmt.Sprintf("layers[%d].path is required", i))
		}
	}

	// scalars
	if cfg.Count != nil && *cfg.Count < 1 {
		v.Problems = append(v.Problems, "count must be >= 1")
	}
	if cfg.MaxRetries != nil && *cfg.MaxRetries < 0 {
		v.Problems = append(v.Problems, "max_retries must be >= 0 (0 means unbounded)")
	}

	// weights
	badWeight := false
	for _, layer := range sortedKeys(cfg.Weights) {
		if len(cfg.Layers) > 0 && !seen[layer] {
			v.Problems = append(v.Problems, fmt.Sprintf("weights.%s does not match any layer", layer))
		}
		variants := cfg.Weights[layer]
		for _, name := range sortedKeys(variants) {
			w := variants[name]
			if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
				v.Problems = append(v.Problems, fmt.Sprintf("weights.%s.%s must be > 0 (got %v)", layer, name, w))
				badWeight = true
			}
		}
	}
	if badWeight {
		v.causes = append(v.causes, rarity.ErrInvalidWeight)
	}

	if len(v.Problems) > 0 {
		return v
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
