package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from NFTGEN_* environment variables.
type Env struct {
	LogLevel  string  `env:"NFTGEN_LOG_LEVEL" envDefault:"info"`
	LogFile   string  `env:"NFTGEN_LOG_FILE"`
	OutputDir string  `env:"NFTGEN_OUTPUT_DIR"`
	Count     *int    `env:"NFTGEN_COUNT"`
	Seed      *uint64 `env:"NFTGEN_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	err := ParseEnv(&e)
	return e, err
}

// LoadEnvFrom reads Env from the given variables instead of the process
// environment.
func LoadEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Overrides converts the run-related variables into config overrides.
func (e Env) Overrides() Overrides {
	var o Overrides
	if e.OutputDir != "" {
		dir := e.OutputDir
		o.OutputDir = &dir
	}
	o.Count = e.Count
	o.Seed = e.Seed
	return o
}
