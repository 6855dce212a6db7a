// Package generator drives one generation run: it samples unique
// combinations, composites their layers and writes one PNG per NFT.
package generator

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/xtding233/nftgen/internal/catalog"
	"github.com/xtding233/nftgen/internal/compose"
	"github.com/xtding233/nftgen/internal/config"
	"github.com/xtding233/nftgen/internal/rarity"
	"github.com/xtding233/nftgen/internal/unique"
)

// Result describes a finished (or aborted) run.
type Result struct {
	RunID        string
	Seed         uint64
	Requested    int
	Target       int // requested count clamped to the combination space
	Files        []string
	Combinations []rarity.Combination
	Counts       rarity.Counts
	Attempts     int
}

// Generator owns nothing across runs; every Run starts from empty state.
type Generator struct {
	cat    *catalog.Catalog
	params config.Params
	log    *slog.Logger
}

func New(cat *catalog.Catalog, p config.Params, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cat: cat, params: p, log: logger}
}

// ClampCount limits requested to the number of distinct combinations.
func ClampCount(requested, maxCombinations int) int {
	return max(0, min(requested, maxCombinations))
}

// ResolveSeed returns *seed, or a fresh crypto seed when seed is nil. Logging
// the result makes any run reproducible.
func ResolveSeed(seed *uint64) (uint64, error) {
	if seed != nil {
		return *seed, nil
	}
	return rarity.NewSeed()
}

// UnknownWeights lists "layer/variant" weight entries naming a variant the
// catalog does not have.
func UnknownWeights(src rarity.VariantSource, weights rarity.WeightTable) []string {
	var out []string
	for _, layer := range src.LayerNames() {
		known := make(map[string]bool)
		for _, id := range src.VariantIDs(layer) {
			known[id] = true
		}
		for v := range weights[layer] {
			if !known[v] {
				out = append(out, layer+"/"+v)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Run generates min(Count, MaxCombinations) NFTs. Files written before an
// error stay on disk and are listed in the returned Result.
func (g *Generator) Run(ctx context.Context) (res Result, err error) {
	res = Result{RunID: uuid.NewString(), Requested: g.params.Count}
	log := g.log.With("run_id", res.RunID)

	res.Seed, err = ResolveSeed(g.params.Seed)
	if err != nil {
		return res, err
	}

	maxCombos := g.cat.MaxCombinations()
	res.Target = ClampCount(g.params.Count, maxCombos)
	log.Info("starting generation",
		"max_combinations", maxCombos,
		"requested", res.Requested,
		"target", res.Target,
		"seed", res.Seed,
		"output_dir", g.params.OutputDir,
		"config_version", g.params.Version)
	if res.Target < res.Requested {
		log.Warn("requested count exceeds unique combinations; clamping",
			"requested", res.Requested, "max_combinations", maxCombos)
	}
	for _, w := range UnknownWeights(g.cat, g.params.Weights) {
		log.Warn("weight configured for unknown variant", "variant", w)
	}

	sampler, err := rarity.NewSampler(g.cat, g.params.Weights, rarity.NewSeededRNG(res.Seed))
	if err != nil {
		return res, fmt.Errorf("build sampler: %w", err)
	}
	enforcer := unique.NewEnforcer(sampler,
		unique.WithMaxRetries(g.params.MaxRetries),
		unique.WithCapacity(maxCombos))
	writer, err := compose.NewWriter(g.params.OutputDir)
	if err != nil {
		return res, err
	}

	defer func() {
		res.Counts = sampler.Counts()
		res.Attempts = enforcer.Attempts()
	}()

	layers := g.cat.LayerNames()
	for n := 1; n <= res.Target; n++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		combo, err := enforcer.Next()
		if err != nil {
			return res, fmt.Errorf("nft %d: %w", n, err)
		}

		imgs := make([]image.Image, len(layers))
		for i, layer := range layers {
			img, ok := g.cat.Image(layer, combo[i])
			if !ok || img == nil {
				return res, fmt.Errorf("nft %d: no pixels for %s/%s", n, layer, combo[i])
			}
			imgs[i] = img
		}
		flat, err := compose.Composite(imgs)
		if err != nil {
			return res, fmt.Errorf("nft %d: %w", n, err)
		}
		path, err := writer.Save(n, flat)
		if err != nil {
			return res, fmt.Errorf("nft %d: %w", n, err)
		}

		res.Files = append(res.Files, path)
		res.Combinations = append(res.Combinations, combo)
		log.Info("nft generated",
			"number", n,
			"assets", combo.String(),
			"file", path,
			"dominant", compose.DominantHex(flat))
	}
	return res, nil
}
