package generator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/xtding233/nftgen/internal/rarity"
	"github.com/xtding233/nftgen/internal/unique"
)

// SimParams describes a dry run: the same sampling and rejection as Run,
// without compositing or writing files.
type SimParams struct {
	Count      int     // NFTs per trial; clamped to the combination space
	MaxRetries int     // per NFT, 0 = unbounded
	Seed       *uint64 // trial i uses Seed+i when set
	Weights    rarity.WeightTable
}

// Stats summarizes the total number of draws one run needed.
type Stats struct {
	Trials  int
	Count   int
	Mean    float64
	Var     float64
	StdDev  float64
	P50     float64
	P90     float64
	P99     float64
	Failed  int   // trials that hit the retry budget
	Samples []int `json:"-"`
}

// calcStats computes population mean/variance and interpolated percentiles.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	fs := make([]float64, n)
	for i, v := range xs {
		fs[i] = float64(v)
	}
	sort.Float64s(fs)

	mean, variance := stat.PopMeanVariance(fs, nil)
	percentile := func(p float64) float64 {
		return stat.Quantile(p, stat.LinInterp, fs, nil)
	}
	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  stat.PopStdDev(fs, nil),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne returns the draws needed to accept count unique combinations.
func simulateOne(src rarity.VariantSource, p SimParams, capacity int, rng rarity.RandomSource) (int, error) {
	sampler, err := rarity.NewSampler(src, p.Weights, rng)
	if err != nil {
		return 0, err
	}
	e := unique.NewEnforcer(sampler,
		unique.WithMaxRetries(p.MaxRetries),
		unique.WithCapacity(capacity))
	for e.Len() < p.Count {
		if _, err := e.Next(); err != nil {
			return e.Attempts(), err
		}
	}
	return e.Attempts(), nil
}

// Simulate repeats dry runs and returns draw statistics over the trials that
// completed. Trials that exhaust the retry budget are counted in Failed.
func Simulate(ctx context.Context, src rarity.VariantSource, capacity int, p SimParams, trials int) (Stats, error) {
	if trials <= 0 {
		return Stats{}, nil
	}
	p.Count = ClampCount(p.Count, capacity)

	samples := make([]int, 0, trials)
	failed := 0
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		var rng rarity.RandomSource
		if p.Seed != nil {
			rng = rarity.NewSeededRNG(*p.Seed + uint64(i))
		} else {
			rng = rarity.DefaultRNG()
		}
		v, err := simulateOne(src, p, capacity, rng)
		switch {
		case err == nil:
			samples = append(samples, v)
		case errors.Is(err, unique.ErrCombinationSpaceExhausted):
			failed++
		default:
			return Stats{}, fmt.Errorf("trial %d: %w", i+1, err)
		}
	}

	s := calcStats(samples)
	s.Trials = trials
	s.Count = p.Count
	s.Failed = failed
	return s, nil
}
