package domain

import "math/rand/v2"

// RandomSource yields uniform floats in [0,1). It is the only source of
// nondeterminism in the generators; tests pin it to fixed sequences.
type RandomSource interface {
	Float64() float64
}

// RandomFunc adapts a plain function to RandomSource.
type RandomFunc func() float64

func (f RandomFunc) Float64() float64 { return f() }

// DefaultRandom is safe for concurrent use.
var DefaultRandom RandomSource = RandomFunc(rand.Float64)

// NewSeededRandom returns a reproducible source. It is not safe for
// concurrent use.
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// intn draws an integer in [0,n) by flooring a scaled uniform draw.
func intn(rng RandomSource, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(rng.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
