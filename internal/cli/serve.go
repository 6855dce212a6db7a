package cli

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xtding233/nftgen/internal/config"
	"github.com/xtding233/nftgen/internal/generator"
	"github.com/xtding233/nftgen/internal/rarity"
	"github.com/xtding233/nftgen/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve unique combination previews over gRPC",
	Long: `Serve starts a gRPC server (service nftgen.v1.Preview) that hands out unique
combinations from one session shared by all callers, without rendering images.
The standard gRPC health service is registered as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(config.Overrides{})
		if err != nil {
			return err
		}
		cat, err := indexCatalog(params)
		if err != nil {
			return err
		}
		seed, err := generator.ResolveSeed(params.Seed)
		if err != nil {
			return err
		}
		logger.Info("preview session", "seed", seed, "max_combinations", cat.MaxCombinations())

		srv, err := server.New(server.Config{
			Source:     cat,
			Capacity:   cat.MaxCombinations(),
			Weights:    params.Weights,
			RNG:        rarity.NewSeededRNG(seed),
			MaxRetries: params.MaxRetries,
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		lis, err := net.Listen("tcp", serveAddr)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Serve(ctx, lis)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":50051", "listen address")
}
