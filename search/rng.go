package search

import "math/rand/v2"

// rng wraps a seeded PRNG so a World's ChooseRandom/ChooseSmart decisions
// are reproducible from Config.RandomSeed, matching the teacher's use of
// math/rand/v2 for deterministic simulation runs.
type rng struct {
	src *rand.Rand
}

func newRNG(seed int64) *rng {
	return &rng{src: rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))}
}

// Bool returns a uniformly random boolean.
func (r *rng) Bool() bool { return r.src.IntN(2) == 1 }
