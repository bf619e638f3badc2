package cuid2

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
)

// CounterRange is the modulus at which the process counter wraps.
const CounterRange = 476782367

// maxSeedAttempts bounds rejection sampling during counter seeding.
// Past the cap the seed falls back to a direct modulus, trading a
// negligible bias for a bounded worst case.
const maxSeedAttempts = 1000

// Counter is a process-lifetime source of values in [0, CounterRange).
// Next returns the current value and advances by one, wrapping at
// CounterRange. Safe for concurrent use.
type Counter struct {
	mu    sync.Mutex
	value uint64
}

// readEntropy fills b from the system's secure random source. Tests
// may override it to force deterministic or failing reads.
var readEntropy = func(b []byte) error {
	_, err := rand.Read(b)
	return err
}

// NewCounter creates a Counter seeded at a uniformly random position.
//
// The seed is drawn by rejection sampling against the widest multiple
// of CounterRange that fits in a uint64, so the wrapped value carries
// no modulo bias. Sampling is capped at maxSeedAttempts; if the cap is
// hit, or the accepted window would cover less than half the integer
// space, the seed degrades to a direct modulus.
func NewCounter() (*Counter, error) {
	seed, err := seedValue()
	if err != nil {
		return nil, fmt.Errorf("cuid2: counter seed: %w", err)
	}
	return &Counter{value: seed}, nil
}

func seedValue() (uint64, error) {
	// Largest multiple of CounterRange representable in a uint64.
	limit := math.MaxUint64 - math.MaxUint64%uint64(CounterRange)

	var buf [8]byte
	if limit >= math.MaxUint64/2 {
		for i := 0; i < maxSeedAttempts; i++ {
			if err := readEntropy(buf[:]); err != nil {
				return 0, err
			}
			v := binary.BigEndian.Uint64(buf[:])
			if v < limit {
				return v % CounterRange, nil
			}
		}
	}

	// Modulus fallback: either the rejection cap was exhausted or the
	// accepted window is too narrow to be worth rejecting over.
	if err := readEntropy(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]) % CounterRange, nil
}

// Next returns the current counter value and advances to
// (value+1) mod CounterRange.
func (c *Counter) Next() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.value
	c.value = (c.value + 1) % CounterRange
	return v
}
