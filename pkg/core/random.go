package core

import "math/rand/v2"

// Random is a seedable uniform generator. Each worker owns one instance.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a generator with the given seed
func NewRandom(seed uint64) *Random {
	r := &Random{}
	r.SetSeed(seed)
	return r
}

// SetSeed resets the generator state
func (r *Random) SetSeed(seed uint64) {
	r.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Next returns a uniform float64 in [0, 1)
func (r *Random) Next() float64 {
	return r.rng.Float64()
}

// NextUInt returns a uniform unsigned integer, used to seed child generators
func (r *Random) NextUInt() uint64 {
	return r.rng.Uint64()
}

// Get1D returns a random float64 in [0, 1)
func (r *Random) Get1D() float64 {
	return r.rng.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *Random) Get2D() Vec2 {
	return NewVec2(r.rng.Float64(), r.rng.Float64())
}
