package game

import "math/rand/v2"

// Rand is the source of randomness used for shuffling.
// A *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Shuffle permutes s in place using Fisher-Yates, so every ordering is equally likely.
// If rng is nil the process-wide source is used.
func Shuffle[T any](rng Rand, s []T) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(s) - 1; i > 0; i-- {
		j := intN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
