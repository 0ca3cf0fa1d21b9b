// Package random provides seed generation and seeded generator helpers.
//
// It uses crypto/rand to generate high-entropy seeds and math/rand/v2
// ChaCha8 streams so a recorded seed reproduces a run exactly.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns seed unchanged, or a fresh crypto seed when seed is 0.
func ResolveSeed(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}

// NewStream creates a ChaCha8 stream keyed by seed. The stream is both a
// rand.Source and an io.Reader, so one stream can feed every consumer of a
// single generation run.
func NewStream(seed int64) *rand.ChaCha8 {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	binary.LittleEndian.PutUint64(key[8:16], uint64(seed)^0x9e3779b97f4a7c15)
	return rand.NewChaCha8(key)
}

// NewSeededRNG creates a generator over a fresh stream for seed.
func NewSeededRNG(seed int64) (*rand.Rand, *rand.ChaCha8) {
	stream := NewStream(seed)
	return rand.New(stream), stream
}

// DeriveSeed mixes a base seed with an index so batch items get distinct,
// reproducible seeds.
func DeriveSeed(base int64, index int) int64 {
	z := uint64(base) + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	derived := int64(z ^ (z >> 31))
	if derived == 0 {
		derived = 1
	}
	return derived
}
