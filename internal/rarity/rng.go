package rarity

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// cryptoSource reads every value from crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	// top 53 bits => [0, 1)
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// DefaultRNG is the source used when a caller passes none.
func DefaultRNG() RandomSource { return cryptoSource{} }

// NewSeed generates a seed using crypto/rand, so an unseeded run can still
// report the seed that reproduces it.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := cryptoRand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// pcgSource is a replicable PCG stream.
type pcgSource struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic source: equal seeds give equal streams.
func NewSeededRNG(seed uint64) RandomSource {
	return pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s pcgSource) Float64() float64 { return s.r.Float64() }
