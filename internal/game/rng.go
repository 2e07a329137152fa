package game

import (
	"math/rand"
	"sync"
)

// RNG is the randomness source injected into every resolver. Production code
// uses a seeded math/rand generator; tests substitute deterministic stubs to
// force outcomes.
type RNG interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Shuffle randomizes the order of n elements via the swap function.
	Shuffle(n int, swap func(i, j int))
}

type randSource struct {
	r *rand.Rand
}

func (s *randSource) IntN(n int) int { return s.r.Intn(n) }

func (s *randSource) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }

// NewRNG returns an RNG seeded from the given value. Two RNGs with the same
// seed produce identical draw sequences. Not safe for concurrent use; see
// NewLockedRNG.
func NewRNG(seed int64) RNG {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func (s *lockedSource) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r.Shuffle(n, swap)
}

// NewLockedRNG returns a seeded RNG that serializes draws, for use across
// concurrent request handlers.
func NewLockedRNG(seed int64) RNG {
	return &lockedSource{r: rand.New(rand.NewSource(seed))}
}
