// Package server exposes a gRPC preview of the generator: callers draw unique
// combinations from one shared session without rendering images.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/nftgen/internal/rarity"
	"github.com/xtding233/nftgen/internal/unique"
)

// Config configures one preview session.
type Config struct {
	Source     rarity.VariantSource
	Capacity   int // number of distinct combinations
	Weights    rarity.WeightTable
	RNG        rarity.RandomSource
	MaxRetries int
	Logger     *slog.Logger
}

// Server holds the session state. The sampler and enforcer are not safe for
// concurrent use, so every RPC takes mu; the membership check and insertion
// of a combination therefore happen atomically.
type Server struct {
	mu       sync.Mutex
	layers   []string
	sampler  *rarity.Sampler
	enforcer *unique.Enforcer
	capacity int
	log      *slog.Logger
}

func New(cfg Config) (*Server, error) {
	sampler, err := rarity.NewSampler(cfg.Source, cfg.Weights, cfg.RNG)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		layers:  sampler.Layers(),
		sampler: sampler,
		enforcer: unique.NewEnforcer(sampler,
			unique.WithMaxRetries(cfg.MaxRetries),
			unique.WithCapacity(cfg.Capacity)),
		capacity: cfg.Capacity,
		log:      logger,
	}, nil
}

func (s *Server) Sample(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	combo, err := s.enforcer.Next()
	if errors.Is(err, unique.ErrCombinationSpaceExhausted) {
		return nil, status.Error(codes.ResourceExhausted, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	layers := make(map[string]any, len(s.layers))
	for i, name := range s.layers {
		layers[name] = combo[i]
	}
	out, err := structpb.NewStruct(map[string]any{
		"number":      s.enforcer.Len(),
		"combination": layers,
		"assets":      combo.String(),
		"attempts":    s.enforcer.Attempts(),
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	s.log.InfoContext(ctx, "preview sampled", "number", s.enforcer.Len(), "assets", combo.String())
	return out, nil
}

func (s *Server) Stats(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := s.sampler.Counts()
	byLayer := make(map[string]any, len(counts))
	for layer, variants := range counts {
		inner := make(map[string]any, len(variants))
		for v, n := range variants {
			inner[v] = n
		}
		byLayer[layer] = inner
	}
	out, err := structpb.NewStruct(map[string]any{
		"accepted": s.enforcer.Len(),
		"attempts": s.enforcer.Attempts(),
		"capacity": s.capacity,
		"counts":   byLayer,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// Register adds the preview and health services to g.
func (s *Server) Register(g *grpc.Server) {
	RegisterPreviewServer(g, s)
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(g, hs)
}

// Serve runs a gRPC server on lis until ctx is done.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	g := grpc.NewServer()
	s.Register(g)

	errCh := make(chan error, 1)
	go func() { errCh <- g.Serve(lis) }()
	s.log.Info("preview server listening", "addr", lis.Addr().String())

	select {
	case <-ctx.Done():
		g.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}
