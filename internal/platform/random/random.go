package random

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the randomness contract consumed by the draft services. Tests
// swap in a fixed-seed source so lottery and class generation are
// reproducible draw for draw.
type Source interface {
	// RandInt returns a uniform integer in [min, max], inclusive on both ends.
	RandInt(min, max int) int
	// Gauss returns a normally distributed value with the given mean and stdev.
	Gauss(mean, stdev float64) float64
	// Shuffle permutes n elements in place via the provided swap function.
	Shuffle(n int, swap func(i, j int))
}

type PCGSource struct {
	rng *rand.Rand
}

// NewSeeded builds a deterministic source: the same seed always yields the
// same draw sequence.
func NewSeeded(seed uint64) *PCGSource {
	return &PCGSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// New builds a source seeded from the wall clock.
func New() *PCGSource {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

func (s *PCGSource) RandInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

func (s *PCGSource) Gauss(mean, stdev float64) float64 {
	return s.rng.NormFloat64()*stdev + mean
}

func (s *PCGSource) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// TruncGauss draws from Gauss(mean, stdev) and clamps the result to
// [lo, hi]. Used for bounded rating rolls.
func TruncGauss(src Source, mean, stdev, lo, hi float64) float64 {
	v := src.Gauss(mean, stdev)
	return math.Min(hi, math.Max(lo, v))
}
