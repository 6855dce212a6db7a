package rarity

import (
	"errors"
	"fmt"
)

var (
	ErrNoLayers     = errors.New("sampler needs at least one layer")
	ErrEmptyLayer   = errors.New("layer has no variants to draw from")
	ErrUnknownLayer = errors.New("unknown layer")
)

// VariantSource lists layers in paint order and the variants of each layer in
// a stable iteration order. *catalog.Catalog satisfies it.
type VariantSource interface {
	LayerNames() []string
	VariantIDs(layer string) []string
}

// layerPlan is the precomputed cumulative weight sequence of one layer.
type layerPlan struct {
	name       string
	variants   []string
	cumulative []float64
}

func (p layerPlan) total() float64 {
	return p.cumulative[len(p.cumulative)-1]
}

// pick selects the first variant whose cumulative weight is >= r*total.
// Exact boundary ties go to the earlier variant.
func (p layerPlan) pick(r float64) string {
	target := r * p.total()
	for i, cw := range p.cumulative {
		if target <= cw {
			return p.variants[i]
		}
	}
	// float rounding only
	return p.variants[len(p.variants)-1]
}

// Sampler draws rarity-weighted variants and records every draw in its Counts.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	layers []layerPlan
	index  map[string]int
	rng    RandomSource
	counts Counts
}

// NewSampler builds the cumulative weight sequences for every layer of src.
// Variants missing from weights use DefaultWeight. If rng is nil the crypto
// backed DefaultRNG is used.
func NewSampler(src VariantSource, weights WeightTable, rng RandomSource) (*Sampler, error) {
	if rng == nil {
		rng = DefaultRNG()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	names := src.LayerNames()
	if len(names) == 0 {
		return nil, ErrNoLayers
	}

	s := &Sampler{
		layers: make([]layerPlan, 0, len(names)),
		index:  make(map[string]int, len(names)),
		rng:    rng,
		counts: make(Counts, len(names)),
	}
	for _, name := range names {
		ids := src.VariantIDs(name)
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyLayer, name)
		}
		plan := layerPlan{
			name:       name,
			variants:   append([]string(nil), ids...),
			cumulative: make([]float64, len(ids)),
		}
		current := 0.0
		for i, id := range ids {
			current += weights.Weight(name, id)
			plan.cumulative[i] = current
		}
		s.index[name] = len(s.layers)
		s.layers = append(s.layers, plan)
	}
	return s, nil
}

// Draw selects one variant of layer and counts it.
func (s *Sampler) Draw(layer string) (string, error) {
	i, ok := s.index[layer]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLayer, layer)
	}
	return s.draw(i), nil
}

func (s *Sampler) draw(i int) string {
	plan := s.layers[i]
	chosen := plan.pick(s.rng.Float64())
	s.counts.add(plan.name, chosen)
	return chosen
}

// SampleCombination draws one variant per layer, bottom to top. Layers are
// drawn independently.
func (s *Sampler) SampleCombination() Combination {
	c := make(Combination, len(s.layers))
	for i := range s.layers {
		c[i] = s.draw(i)
	}
	return c
}

// Layers returns the layer names in draw order.
func (s *Sampler) Layers() []string {
	out := make([]string, len(s.layers))
	for i, p := range s.layers {
		out[i] = p.name
	}
	return out
}

// Counts returns a snapshot of the draw counts so far.
func (s *Sampler) Counts() Counts {
	return s.counts.clone()
}

// Probability returns the selection probability of variant within layer,
// weight(v) / sum(weights). Unknown layers or variants yield 0.
func (s *Sampler) Probability(layer, variant string) float64 {
	i, ok := s.index[layer]
	if !ok {
		return 0
	}
	plan := s.layers[i]
	prev := 0.0
	for j, id := range plan.variants {
		if id == variant {
			return (plan.cumulative[j] - prev) / plan.total()
		}
		prev = plan.cumulative[j]
	}
	return 0
}
