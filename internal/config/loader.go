package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrConfigNotFound = errors.New("config file not found")

// Paths helper for default/collection files.
type Paths struct {
	BaseDir string // project directory, e.g. ./my-collection
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "nftgen.yaml")
}

func (p Paths) CollectionPath(name string) string {
	return filepath.Join(p.BaseDir, "collections", name+".yaml")
}

// Loader reads YAML configs and merges default -> collection.
type Loader struct {
	paths Paths
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads the default file and overlays the collection file when
// collection is non-empty. Relative layer paths and the output directory are
// resolved against the base directory. The result is not validated.
func (l *Loader) LoadMerged(collection string) (RawConfig, error) {
	defCfg, defFound, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}

	merged := defCfg
	if collection != "" {
		colCfg, found, err := readYAML(l.paths.CollectionPath(collection))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read collection %s: %w", collection, err)
		}
		if !found {
			return RawConfig{}, fmt.Errorf("%w: %s", ErrConfigNotFound, l.paths.CollectionPath(collection))
		}
		merged = mergeRaw(merged, colCfg)
	} else if !defFound {
		return RawConfig{}, fmt.Errorf("%w: %s", ErrConfigNotFound, l.paths.DefaultPath())
	}

	resolvePaths(&merged, l.paths.BaseDir)
	return merged, nil
}

// readYAML loads a YAML file into RawConfig. A missing file returns a zero
// config and found=false.
func readYAML(path string) (cfg RawConfig, found bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, false, nil
		}
		return RawConfig{}, false, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, true, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, true, nil
}

// mergeRaw overlays b on a: scalars set in b replace a, a non-empty layer list
// in b replaces a's, and weights merge per layer and variant.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if b.OutputDir != "" {
		out.OutputDir = b.OutputDir
	}
	if b.Count != nil {
		out.Count = b.Count
	}
	if b.Seed != nil {
		out.Seed = b.Seed
	}
	if b.MaxRetries != nil {
		out.MaxRetries = b.MaxRetries
	}
	if len(b.Layers) > 0 {
		out.Layers = append([]LayerConfig(nil), b.Layers...)
	}

	if len(b.Weights) > 0 {
		weights := make(map[string]map[string]float64, len(a.Weights)+len(b.Weights))
		for _, src := range []map[string]map[string]float64{a.Weights, b.Weights} {
			for layer, variants := range src {
				inner, ok := weights[layer]
				if !ok {
					inner = make(map[string]float64, len(variants))
					weights[layer] = inner
				}
				for v, w := range variants {
					inner[v] = w
				}
			}
		}
		out.Weights = weights
	}
	return out
}

func resolvePaths(cfg *RawConfig, base string) {
	if base == "" {
		return
	}
	layers := make([]LayerConfig, len(cfg.Layers))
	for i, l := range cfg.Layers {
		if l.Path != "" && !filepath.IsAbs(l.Path) {
			l.Path = filepath.Join(base, l.Path)
		}
		layers[i] = l
	}
	cfg.Layers = layers
	if cfg.OutputDir != "" && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(base, cfg.OutputDir)
	}
}
