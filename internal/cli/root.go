// Package cli provides the command-line interface for nftgen.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xtding233/nftgen/internal/catalog"
	"github.com/xtding233/nftgen/internal/config"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configDir  string
	collection string
	verbose    bool

	// Set up in PersistentPreRunE
	envCfg      config.Env
	logger      *slog.Logger
	closeLogger = func() error { return nil }
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nftgen",
	Short: "Generate unique layered NFT images",
	Long: `nftgen stacks one randomly chosen asset per layer (background, body,
accessory, ...) into composite images. Variants are drawn according to
configured rarity weights and no combination is produced twice in one run.

Configuration is read from nftgen.yaml in --config-dir, optionally overlaid by
collections/<name>.yaml. NFTGEN_* environment variables and flags override it.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		envCfg, err = config.LoadEnv()
		if err != nil {
			return err
		}
		level := config.ParseLogLevel(envCfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}
		logger, closeLogger = config.SetupLogger(envCfg.LogFile, level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := closeLogger(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to close log file: %v\n", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "C", ".", "directory containing nftgen.yaml")
	rootCmd.PersistentFlags().StringVar(&collection, "collection", "", "collection overlay from collections/<name>.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(maxCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

// runFlags are the run-shaping flags shared by generate and simulate.
type runFlags struct {
	count      int
	seed       uint64
	maxRetries int
	outputDir  string
}

func (f *runFlags) register(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().IntVarP(&f.count, "count", "n", config.DefaultCount, "number of NFTs to generate")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for a reproducible run (default: crypto random)")
	cmd.Flags().IntVar(&f.maxRetries, "max-retries", config.DefaultMaxRetries, "draws allowed per NFT before giving up (0 = unbounded)")
	if withOutput {
		cmd.Flags().StringVarP(&f.outputDir, "output", "o", "", "output directory")
	}
}

// overrides returns the flags the user set explicitly.
func (f *runFlags) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	if cmd.Flags().Changed("count") {
		o.Count = &f.count
	}
	if cmd.Flags().Changed("seed") {
		o.Seed = &f.seed
	}
	if cmd.Flags().Changed("max-retries") {
		o.MaxRetries = &f.maxRetries
	}
	if cmd.Flags().Changed("output") {
		o.OutputDir = &f.outputDir
	}
	return o
}

// loadParams merges files, environment and flags into run parameters.
func loadParams(flags config.Overrides) (config.Params, error) {
	raw, err := config.NewLoader(configDir).LoadMerged(collection)
	if err != nil {
		return config.Params{}, err
	}
	return config.Resolve(raw, envCfg.Overrides().Merge(flags))
}

// indexCatalog lists variants without decoding them.
func indexCatalog(p config.Params) (*catalog.Catalog, error) {
	cat, err := catalog.Index(p.Layers)
	if err != nil {
		return nil, fmt.Errorf("index assets: %w", err)
	}
	return cat, nil
}
