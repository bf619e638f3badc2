package cuid2

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"
)

const (
	// MinLength and MaxLength bound the requested identifier length.
	MinLength = 4
	MaxLength = 32

	// DefaultLength is used by New.
	DefaultLength = 24
)

// ErrLength reports a requested length outside [MinLength, MaxLength].
var ErrLength = errors.New("length must be between 4 and 32")

// NowMs returns the current time in milliseconds since the Unix epoch.
var NowMs = func() int64 { return time.Now().UnixMilli() }

// ID is an immutable snapshot of everything an identifier is rendered
// from. Rendering is pure: String always returns the same value for
// the same ID.
type ID struct {
	prefix      byte
	timestamp   int64
	counter     uint64
	random      []byte
	fingerprint []byte
	length      int
}

var (
	counterOnce sync.Once
	counterInst *Counter
	counterErr  error
)

// processCounter returns the process-wide counter singleton.
func processCounter() (*Counter, error) {
	counterOnce.Do(func() {
		counterInst, counterErr = NewCounter()
	})
	return counterInst, counterErr
}

// New constructs an identifier of DefaultLength.
func New() (ID, error) { return NewWithLength(DefaultLength) }

// NewWithLength constructs an identifier of the requested length.
// Lengths outside [MinLength, MaxLength] fail with ErrLength; entropy
// or fingerprint failures are infrastructure errors and are not
// retryable.
func NewWithLength(length int) (ID, error) {
	if length < MinLength || length > MaxLength {
		return ID{}, fmt.Errorf("cuid2: %w, got %d", ErrLength, length)
	}

	ctr, err := processCounter()
	if err != nil {
		return ID{}, err
	}
	fp, err := processFingerprint()
	if err != nil {
		return ID{}, err
	}

	prefix, err := randomPrefix()
	if err != nil {
		return ID{}, fmt.Errorf("cuid2: prefix: %w", err)
	}
	random := make([]byte, length)
	if err := readEntropy(random); err != nil {
		return ID{}, fmt.Errorf("cuid2: entropy: %w", err)
	}

	return ID{
		prefix:      prefix,
		timestamp:   NowMs(),
		counter:     ctr.Next(),
		random:      random,
		fingerprint: fp.bytes(),
		length:      length,
	}, nil
}

// MustNew is New panicking on error, for callers that treat identifier
// construction failure as fatal (it is: every error here is a missing
// primitive or a dead entropy source).
func MustNew() ID {
	id, err := New()
	if err != nil {
		panic(err)
	}
	return id
}

// randomPrefix draws a uniform letter in a-z. A byte is accepted only
// below the largest multiple of 26 so the fold is bias-free; the loop
// terminates with overwhelming probability after a handful of reads.
func randomPrefix() (byte, error) {
	var b [1]byte
	for {
		if err := readEntropy(b[:]); err != nil {
			return 0, err
		}
		if b[0] < 26*(256/26) {
			return 'a' + b[0]%26, nil
		}
	}
}

// String renders the identifier: SHA-512 over the captured state, the
// digest re-encoded in base 36, truncated to length-1 characters
// behind the prefix.
func (id ID) String() string {
	h := sha512.New()
	io.WriteString(h, strconv.FormatInt(id.timestamp, 10))
	io.WriteString(h, strconv.FormatUint(id.counter, 10))
	io.WriteString(h, hex.EncodeToString(id.random))
	io.WriteString(h, hex.EncodeToString(id.fingerprint))
	digest := hex.EncodeToString(h.Sum(nil))

	// A 512-bit digest is ~99 base-36 digits, always longer than the
	// 31-character maximum tail.
	return string(id.prefix) + HexToBase36(digest)[:id.length-1]
}

// Len returns the requested output length.
func (id ID) Len() int { return id.length }

// IsValid reports whether candidate is a well-formed identifier: one
// lowercase letter followed by lowercase base-36 characters, total
// length within [MinLength, MaxLength]. This is a format check only;
// it proves nothing about provenance or uniqueness. It never panics.
func IsValid(candidate string) bool {
	if len(candidate) < MinLength || len(candidate) > MaxLength {
		return false
	}
	if candidate[0] < 'a' || candidate[0] > 'z' {
		return false
	}
	for i := 1; i < len(candidate); i++ {
		c := candidate[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// IsValidLen is IsValid with an exact-length requirement. An expected
// length outside [MinLength, MaxLength] is itself invalid.
func IsValidLen(candidate string, expected int) bool {
	if expected < MinLength || expected > MaxLength {
		return false
	}
	return len(candidate) == expected && IsValid(candidate)
}
