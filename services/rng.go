package services

import (
	crand "crypto/rand"
	"encoding/binary"
	"log"
	"math/rand"
)

// Rand is the engine's entropy source. Combat, racing and breeding mutation
// all draw from it, so injecting a seeded source makes every outcome
// reproducible in tests. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewSeededRand returns a deterministic source for the given seed.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSystemRand seeds a source from the OS entropy pool. Used at boot; a
// verifiable randomness beacon would plug in here instead.
func NewSystemRand() Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		log.Printf("[RNG] crypto/rand unavailable, falling back to zero seed: %v", err)
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}

// intn draws from [0,n), tolerating n <= 0 so callers can pass trait-derived
// bounds without guarding.
func intn(r Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return r.Intn(n)
}
