package chooser

import (
	"math/rand/v2"
)

// RandomSource is the best-effort source used when no secure bytes are available.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// global math/rand/v2 generator, safe for concurrent use
type globalRNG struct{}

func (globalRNG) Float64() float64 { return rand.Float64() }

// DefaultRNG returns the process-wide pseudorandom generator.
func DefaultRNG() RandomSource { return globalRNG{} }

// Replicable RNG (e.g. simulations and tests). Not safe for concurrent use.
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
