package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/nftgen/internal/generator"
)

var (
	simulateFlags  runFlags
	simulateTrials int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate how many draws a run needs, without writing images",
	Long: `Simulate repeats the sampling and duplicate rejection of a full run, skipping
compositing, and reports how many combinations had to be drawn. Use it to see
retry pressure before generating close to the maximum.

Examples:
  nftgen simulate --trials 200
  nftgen simulate --count 80 --max-retries 10000`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateFlags.register(simulateCmd, false)
	simulateCmd.Flags().IntVar(&simulateTrials, "trials", 100, "number of simulated runs")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	params, err := loadParams(simulateFlags.overrides(cmd))
	if err != nil {
		return err
	}
	cat, err := indexCatalog(params)
	if err != nil {
		return err
	}

	stats, err := generator.Simulate(cmd.Context(), cat, cat.MaxCombinations(), generator.SimParams{
		Count:      params.Count,
		MaxRetries: params.MaxRetries,
		Seed:       params.Seed,
		Weights:    params.Weights,
	}, simulateTrials)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Simulated %d runs of %d NFTs (max %d)\n", stats.Trials, stats.Count, cat.MaxCombinations())
	fmt.Fprintf(out, "═══════════════════════════════════════\n")
	if stats.Failed > 0 {
		fmt.Fprintf(out, "Runs that hit the retry budget: %d\n", stats.Failed)
	}
	if stats.Trials == stats.Failed {
		return nil
	}
	fmt.Fprintf(out, "Draws per run: mean %.1f, stddev %.1f\n", stats.Mean, stats.StdDev)
	fmt.Fprintf(out, "  p50 %.0f  p90 %.0f  p99 %.0f\n", stats.P50, stats.P90, stats.P99)
	return nil
}
