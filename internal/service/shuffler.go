package service

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// RandSource yields uniform integers in [0, n). Injectable so tests can
// pin the shuffle order.
type RandSource interface {
	Intn(n int) int
}

// CryptoSource draws randomness from crypto/rand and degrades to
// math/rand when the system source is unreadable.
type CryptoSource struct{}

// Intn returns a uniform value in [0, n).
func (CryptoSource) Intn(n int) int {
	var buf [4]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Intn(n)
	}
	v := binary.BigEndian.Uint32(buf[:])
	return int((uint64(v) * uint64(n)) >> 32)
}

type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a deterministic source for tests.
func NewSeededSource(seed int64) RandSource {
	return &seededSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Shuffler produces random permutations of examiner candidate lists.
type Shuffler struct {
	src RandSource
}

// NewShuffler constructs a shuffler, defaulting to the crypto source.
func NewShuffler(src RandSource) *Shuffler {
	if src == nil {
		src = CryptoSource{}
	}
	return &Shuffler{src: src}
}

// Shuffle returns a Fisher-Yates permutation of ids without mutating
// the input.
func (s *Shuffler) Shuffle(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	for i := len(out) - 1; i > 0; i-- {
		j := s.src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
