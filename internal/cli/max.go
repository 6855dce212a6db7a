package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/nftgen/internal/config"
)

var maxCmd = &cobra.Command{
	Use:   "max",
	Short: "Print how many unique NFTs the assets allow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(config.Overrides{})
		if err != nil {
			return err
		}
		cat, err := indexCatalog(params)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Maximum number of unique NFTs that can be generated: %d\n", cat.MaxCombinations())
		for _, name := range cat.LayerNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %d variants\n", name, len(cat.VariantIDs(name)))
		}
		return nil
	},
}
