// Package random centralises the random draws made during layout generation
// behind one injectable source, so a fixed seed reproduces a layout exactly.
package random

import (
	"math/rand"
	"time"
)

// Source is the random source consumed by the generator.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform value in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
}

// New returns a seeded source. A zero seed picks one from the clock;
// the seed actually used is returned so a run can be replayed.
func New(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Shuffle permutes s in place with a Fisher-Yates pass driven by src
func Shuffle(src Source, s []int) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Pick returns a uniformly chosen element of s. s must not be empty.
func Pick[T any](src Source, s []T) T {
	return s[src.Intn(len(s))]
}
