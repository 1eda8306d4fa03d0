package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Coordinate returns a random (lon, lat) style pair.
func (r *RNG) Coordinate() (x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()*360 - 180, r.rand.Float64()*180 - 90
}

// Ring returns n vertices of a star-shaped counter-clockwise ring around
// (cx, cy). Every vertex lies between 0.7 and 1.0 times radius from the center.
func (r *RNG) Ring(cx, cy, radius float64, n int) [][2]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ringLocked(cx, cy, radius, n)
}

func (r *RNG) ringLocked(cx, cy, radius float64, n int) [][2]float64 {
	ring := make([][2]float64, n)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / float64(n)
		d := radius * (0.7 + 0.3*r.rand.Float64())
		ring[i] = [2]float64{cx + d*math.Cos(a), cy + d*math.Sin(a)}
	}
	return ring
}

// Walk returns a random walk of n vertices starting at (x, y).
func (r *RNG) Walk(x, y float64, n int) [][2]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.walkLocked(x, y, n)
}

func (r *RNG) walkLocked(x, y float64, n int) [][2]float64 {
	path := make([][2]float64, n)
	for i := range path {
		path[i] = [2]float64{x, y}
		x += r.rand.Float64() - 0.5
		y += r.rand.Float64() - 0.5
	}
	return path
}
