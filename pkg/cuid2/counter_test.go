package cuid2

import (
	"errors"
	"sync"
	"testing"
)

func TestCounterAdvancesByOne(t *testing.T) {
	c := &Counter{value: 12345}
	for i := uint64(0); i < 100; i++ {
		if got := c.Next(); got != 12345+i {
			t.Fatalf("Next() = %d, want %d", got, 12345+i)
		}
	}
}

func TestCounterWrapsAtRange(t *testing.T) {
	c := &Counter{value: CounterRange - 1}
	if got := c.Next(); got != CounterRange-1 {
		t.Fatalf("Next() = %d, want %d", got, CounterRange-1)
	}
	if got := c.Next(); got != 0 {
		t.Fatalf("Next() after wrap = %d, want 0", got)
	}
}

func TestCounterSeedWithinRange(t *testing.T) {
	for i := 0; i < 20; i++ {
		c, err := NewCounter()
		if err != nil {
			t.Fatalf("NewCounter: %v", err)
		}
		if v := c.Next(); v >= CounterRange {
			t.Fatalf("seed %d outside [0, %d)", v, CounterRange)
		}
	}
}

func TestCounterSeedDeterministicUnderFixedEntropy(t *testing.T) {
	orig := readEntropy
	defer func() { readEntropy = orig }()
	readEntropy = func(b []byte) error {
		for i := range b {
			b[i] = 0x42
		}
		return nil
	}

	a, err := NewCounter()
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}
	b, err := NewCounter()
	if err != nil {
		t.Fatalf("NewCounter: %v", err)
	}
	if a.Next() != b.Next() {
		t.Fatalf("identical entropy should seed identical counters")
	}
}

func TestCounterSeedPropagatesEntropyFailure(t *testing.T) {
	orig := readEntropy
	defer func() { readEntropy = orig }()
	wantErr := errors.New("entropy source dry")
	readEntropy = func(b []byte) error { return wantErr }

	if _, err := NewCounter(); !errors.Is(err, wantErr) {
		t.Fatalf("NewCounter error = %v, want wrapped %v", err, wantErr)
	}
}

func TestCounterConcurrentReadersObserveDistinctValues(t *testing.T) {
	c := &Counter{}
	const n = 64
	const per = 100

	var wg sync.WaitGroup
	results := make([][]uint64, n)
	for g := 0; g < n; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			vals := make([]uint64, 0, per)
			for i := 0; i < per; i++ {
				vals = append(vals, c.Next())
			}
			results[g] = vals
		}(g)
	}
	wg.Wait()

	seen := make(map[uint64]struct{}, n*per)
	for _, vals := range results {
		for _, v := range vals {
			if _, dup := seen[v]; dup {
				t.Fatalf("duplicate counter value %d across goroutines", v)
			}
			seen[v] = struct{}{}
		}
	}
}
