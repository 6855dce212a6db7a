package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/nftgen/internal/rarity"
)

const defaultYAML = `
version: "1"
output_dir: output_nfts
count: 1000
layers:
  - name: background
    path: assets/backgrounds
  - name: body
    path: assets/bodies
  - name: accessory
    path: /abs/accessories
weights:
  background:
    1.jpg: 10
    2.jpg: 3
  body:
    1-01.png: 10
`

const collectionYAML = `
version: "2"
count: 50
seed: 42
weights:
  background:
    2.jpg: 7
  accessory:
    1-01.png: 4
`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func ptr[T any](v T) *T { return &v }

func TestLoadMergedDefaultOnly(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "nftgen.yaml"), defaultYAML)

	cfg, err := NewLoader(base).LoadMerged("")
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	require.Len(t, cfg.Layers, 3)
	assert.Equal(t, filepath.Join(base, "assets/backgrounds"), cfg.Layers[0].Path)
	assert.Equal(t, "/abs/accessories", cfg.Layers[2].Path)
	assert.Equal(t, filepath.Join(base, "output_nfts"), cfg.OutputDir)
	assert.Equal(t, 1000, *cfg.Count)
	assert.Nil(t, cfg.Seed)
}

func TestLoadMergedCollectionOverlay(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "nftgen.yaml"), defaultYAML)
	writeFile(t, filepath.Join(base, "collections", "genesis.yaml"), collectionYAML)

	cfg, err := NewLoader(base).LoadMerged("genesis")
	require.NoError(t, err)

	assert.Equal(t, "2", cfg.Version)
	assert.Equal(t, 50, *cfg.Count)
	assert.Equal(t, uint64(42), *cfg.Seed)
	require.Len(t, cfg.Layers, 3, "layers inherited from default")
	assert.Equal(t, 10.0, cfg.Weights["background"]["1.jpg"])
	assert.Equal(t, 7.0, cfg.Weights["background"]["2.jpg"])
	assert.Equal(t, 10.0, cfg.Weights["body"]["1-01.png"])
	assert.Equal(t, 4.0, cfg.Weights["accessory"]["1-01.png"])
}

func TestLoadMergedMissingFiles(t *testing.T) {
	base := t.TempDir()

	_, err := NewLoader(base).LoadMerged("")
	assert.True(t, errors.Is(err, ErrConfigNotFound), "got %v", err)

	writeFile(t, filepath.Join(base, "nftgen.yaml"), defaultYAML)
	_, err = NewLoader(base).LoadMerged("nope")
	assert.True(t, errors.Is(err, ErrConfigNotFound), "got %v", err)
}

func TestLoadMergedBadYAML(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "nftgen.yaml"), "layers: [\n")
	_, err := NewLoader(base).LoadMerged("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read default")
}

func TestValidateRaw(t *testing.T) {
	valid := RawConfig{
		Layers: []LayerConfig{{Name: "background", Path: "bg"}, {Name: "body", Path: "body"}},
	}
	tests := []struct {
		name        string
		mutate      func(c *RawConfig)
		wantProblem string
		badWeight   bool
	}{
		{"valid", func(c *RawConfig) {}, "", false},
		{"no layers", func(c *RawConfig) { c.Layers = nil }, "at least one layer", false},
		{"missing name", func(c *RawConfig) { c.Layers = []LayerConfig{{Path: "x"}} }, "layers[0].name is required", false},
		{"missing path", func(c *RawConfig) { c.Layers = []LayerConfig{{Name: "x"}} }, "layers[0].path is required", false},
		{"duplicate layer", func(c *RawConfig) {
			c.Layers = append(c.Layers, LayerConfig{Name: "body", Path: "b2"})
		}, `layers[2].name "body" is duplicated`, false},
		{"zero count", func(c *RawConfig) { c.Count = ptr(0) }, "count must be >= 1", false},
		{"negative retries", func(c *RawConfig) { c.MaxRetries = ptr(-1) }, "max_retries", false},
		{"zero weight", func(c *RawConfig) {
			c.Weights = map[string]map[string]float64{"body": {"a.png": 0}}
		}, "weights.body.a.png must be > 0", true},
		{"negative weight", func(c *RawConfig) {
			c.Weights = map[string]map[string]float64{"background": {"1.jpg": -3}}
		}, "weights.background.1.jpg must be > 0", true},
		{"unknown weight layer", func(c *RawConfig) {
			c.Weights = map[string]map[string]float64{"hat": {"a.png": 1}}
		}, "weights.hat does not match any layer", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Layers = append([]LayerConfig(nil), valid.Layers...)
			tt.mutate(&cfg)
			err := ValidateRaw(cfg)
			if tt.wantProblem == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantProblem)
			assert.Equal(t, tt.badWeight, errors.Is(err, rarity.ErrInvalidWeight))
		})
	}
}

func TestValidateRawCollectsAllProblems(t *testing.T) {
	err := ValidateRaw(RawConfig{Count: ptr(0), MaxRetries: ptr(-5)})
	var v *ValidationError
	require.True(t, errors.As(err, &v))
	assert.Len(t, v.Problems, 3)
	assert.True(t, strings.HasPrefix(err.Error(), "config validation failed: "))
}

func TestResolveDefaultsAndOverrides(t *testing.T) {
	raw := RawConfig{
		Version: "1",
		Layers:  []LayerConfig{{Name: "background", Path: "bg"}},
		Weights: map[string]map[string]float64{"background": {"a.png": 2}},
	}

	p, err := Resolve(raw, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCount, p.Count)
	assert.Equal(t, DefaultMaxRetries, p.MaxRetries)
	assert.Equal(t, DefaultOutputDir, p.OutputDir)
	assert.Nil(t, p.Seed)
	require.Len(t, p.Layers, 1)
	assert.Equal(t, "bg", p.Layers[0].Dir)
	assert.Equal(t, 2.0, p.Weights.Weight("background", "a.png"))
	assert.Equal(t, rarity.DefaultWeight, p.Weights.Weight("background", "b.png"))

	fromEnv := Overrides{Count: ptr(10), OutputDir: ptr("env-out")}
	fromFlags := Overrides{Count: ptr(3), Seed: ptr(uint64(9)), MaxRetries: ptr(0)}
	p, err = Resolve(raw, fromEnv.Merge(fromFlags))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, "env-out", p.OutputDir)
	assert.Equal(t, uint64(9), *p.Seed)
	assert.Equal(t, 0, p.MaxRetries)

	_, err = Resolve(raw, Overrides{Count: ptr(-1)})
	assert.Error(t, err)
}

func TestLoadEnvFrom(t *testing.T) {
	e, err := LoadEnvFrom(map[string]string{
		"NFTGEN_OUTPUT_DIR": "/tmp/out",
		"NFTGEN_COUNT":      "25",
		"NFTGEN_SEED":       "7",
	})
	require.NoError(t, err)
	assert.Equal(t, "info", e.LogLevel)

	o := e.Overrides()
	require.NotNil(t, o.OutputDir)
	assert.Equal(t, "/tmp/out", *o.OutputDir)
	assert.Equal(t, 25, *o.Count)
	assert.Equal(t, uint64(7), *o.Seed)
	assert.Nil(t, o.MaxRetries)

	e, err = LoadEnvFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Overrides{}, e.Overrides())

	_, err = LoadEnvFrom(map[string]string{"NFTGEN_COUNT": "many"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := NewLogger(&stderr, &file, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("nft generated", "number", 1)

	assert.Contains(t, stderr.String(), "nft generated")
	assert.Contains(t, stderr.String(), "app=nftgen")
	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, file.String(), `"number":1`)
}

func TestSetupLoggerFallsBackToStderr(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "nftgen.log")
	logger, cleanup := setupLogger(&stderr, path, slog.LevelInfo)
	require.NoError(t, cleanup())

	logger.Info("still logging")
	out := stderr.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "log file unavailable")
	assert.Contains(t, out, "still logging")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nftgen.log")
	logger, cleanup := SetupLogger(path, slog.LevelInfo)
	logger.Info("hello")
	require.NoError(t, cleanup())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"log_file":`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("Warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("chatty"))
}
