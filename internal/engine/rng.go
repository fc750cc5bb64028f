package engine

import (
	"math/rand"
	"sync"
	"time"
)

// RNG is the randomness seam for the simulator. Production wiring passes a
// seeded *rand.Rand; tests pass a scripted sequence so every draw is forced.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns an entropy-seeded source for production use.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// LockedRand is a mutex-guarded RNG safe for use across request handlers and
// the batch job's position-bucket goroutines.
type LockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewLockedRand() *LockedRand {
	return &LockedRand{r: NewRand()}
}

func (l *LockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *LockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Jitter draws a multiplicative factor uniformly from [0.9, 1.1].
func Jitter(rng RNG) float64 {
	return 0.9 + rng.Float64()*0.2
}

// Die draws an integer uniformly from [1, 10].
func Die(rng RNG) int {
	return rng.Intn(10) + 1
}
