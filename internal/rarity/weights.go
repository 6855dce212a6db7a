package rarity

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultWeight applies to every variant the weight table does not list.
const DefaultWeight = 1.0

var ErrInvalidWeight = errors.New("invalid rarity weight; must be a finite number > 0")

// WeightTable maps layer name -> variant id -> rarity weight.
// The table is partial; use Weight to resolve a variant.
type WeightTable map[string]map[string]float64

// Weight returns the configured weight of variant in layer, or DefaultWeight.
func (t WeightTable) Weight(layer, variant string) float64 {
	if w, ok := t[layer][variant]; ok {
		return w
	}
	return DefaultWeight
}

// Validate reports the first invalid weight in deterministic order.
func (t WeightTable) Validate() error {
	for _, layer := range sortedKeys(map[string]map[string]float64(t)) {
		variants := t[layer]
		for _, v := range sortedKeys(variants) {
			if err := validateWeight(variants[v]); err != nil {
				return fmt.Errorf("%w: %s/%s = %v", err, layer, v, variants[v])
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (t WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(t))
	for layer, variants := range t {
		inner := make(map[string]float64, len(variants))
		for v, w := range variants {
			inner[v] = w
		}
		out[layer] = inner
	}
	return out
}

func validateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return ErrInvalidWeight
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
