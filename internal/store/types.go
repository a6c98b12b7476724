package store

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

var (
	// ErrNotFound reports a missing menu item or order.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput reports a request the store refuses before touching storage.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable wraps any fault raised by the backing database.
	ErrUnavailable = errors.New("storage unavailable")
)

// Sampler picks a preparation offset within [min, max].
type Sampler interface {
	Sample(min, max time.Duration) time.Duration
}

// UniformSampler draws offsets uniformly from a seeded source.
type UniformSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformSampler returns a sampler seeded with seed. The same seed yields
// the same sequence of offsets.
func NewUniformSampler(seed int64) *UniformSampler {
	return &UniformSampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample returns an offset in the closed interval [min, max]. A degenerate or
// inverted range yields min.
func (u *UniformSampler) Sample(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return min + time.Duration(u.rng.Int63n(int64(max-min)+1))
}
