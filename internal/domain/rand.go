package domain

import (
	"math/rand"
	"sync"
	"time"
)

// rng is the package randomness source used for coordinate jitter. Like the
// package clock it is swappable so tests can seed it and assert exact output.
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// SetRand swaps the jitter source. Pass nil to reset to a time-seeded source.
func SetRand(r *rand.Rand) {
	rngMu.Lock()
	defer rngMu.Unlock()
	if r == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		return
	}
	rng = r
}

// jitterOffset returns a uniform offset in [-0.025, +0.025) degrees, applied
// to fallback coordinates so co-located zones do not stack on one point.
func jitterOffset() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return (rng.Float64() - 0.5) * 0.05
}
