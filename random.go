package bertrand

import "math/rand/v2"

// streamSalt separates the two PCG state words derived from one seed.
const streamSalt = 0x9e3779b97f4a7c15

// NewRand returns a generator seeded with seed. Equal seeds produce equal
// sequences.
func NewRand(seed uint64) *rand.Rand {
	return NewStream(seed, 0)
}

// NewStream returns the generator for the independent stream id of seed.
// Parallel samplers give each batch its own stream.
func NewStream(seed, id uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, (id+1)*streamSalt))
}
