package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/nftgen/internal/catalog"
	"github.com/xtding233/nftgen/internal/generator"
	"github.com/xtding233/nftgen/internal/report"
)

var generateFlags runFlags

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate NFT images and print a summary",
	Long: `Generate composites one PNG per NFT (nft_1.png, nft_2.png, ...) into the
output directory. The requested count is limited to the number of unique
combinations the assets allow.

Examples:
  nftgen generate
  nftgen generate --count 100 --seed 42
  nftgen generate --collection genesis -o out/genesis`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateFlags.register(generateCmd, true)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params, err := loadParams(generateFlags.overrides(cmd))
	if err != nil {
		return err
	}
	cat, err := catalog.Load(params.Layers)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}

	res, runErr := generator.New(cat, params, logger).Run(cmd.Context())
	if len(res.Files) == 0 && runErr != nil {
		return runErr
	}

	summary := report.Summary{
		Generated:       len(res.Files),
		Requested:       res.Requested,
		Target:          res.Target,
		MaxCombinations: cat.MaxCombinations(),
		OutputDir:       params.OutputDir,
		Attempts:        res.Attempts,
		Layers:          report.BuildLayers(cat, res.Counts, params.Weights),
		LayerNames:      cat.LayerNames(),
		Weights:         params.Weights,
	}
	if err := report.Render(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	return runErr
}
