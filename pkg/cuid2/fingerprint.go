package cuid2

import (
	"crypto/sha512"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v4/host"
)

// fallbackAlphabet is used for locally generated host substitutes. It
// omits i, l, o and u to avoid visually ambiguous characters.
const fallbackAlphabet = "abcdefghjkmnpqrstvwxyz0123456789"

// fingerprint is the process-wide machine/process identity digest.
// Computed once, immutable afterwards, never persisted.
type fingerprint struct {
	digest [sha512.Size]byte
}

var (
	fpOnce sync.Once
	fpInst *fingerprint
	fpErr  error
)

// processFingerprint returns the singleton fingerprint, computing it
// on first access. Concurrent first-touch is serialized by fpOnce so
// every caller observes the same bytes.
func processFingerprint() (*fingerprint, error) {
	fpOnce.Do(func() {
		fpInst, fpErr = newFingerprint()
	})
	return fpInst, fpErr
}

func newFingerprint() (*fingerprint, error) {
	hostID, err := hostIdentity()
	if err != nil {
		return nil, fmt.Errorf("cuid2: fingerprint: %w", err)
	}

	h := sha512.New()
	io.WriteString(h, hostID)
	io.WriteString(h, strconv.Itoa(processID()))
	io.WriteString(h, environSnapshot())

	fp := &fingerprint{}
	h.Sum(fp.digest[:0])
	return fp, nil
}

// bytes exposes the raw digest. Callers must treat it as read-only;
// the renderer only ever hex-encodes it.
func (f *fingerprint) bytes() []byte { return f.digest[:] }

// Host identity accessors, overridable in tests.
var (
	hostIDFn   = host.HostID
	hostnameFn = os.Hostname
	processID  = os.Getpid
)

// hostIdentity returns the most stable machine identity available:
// the platform host ID, then the hostname, then a locally generated
// random substitute.
func hostIdentity() (string, error) {
	if id, err := hostIDFn(); err == nil && id != "" {
		return id, nil
	}
	if name, err := hostnameFn(); err == nil && name != "" {
		return name, nil
	}
	n := 32
	if strconv.IntSize < 64 {
		n = 15
	}
	return randomHostString(n)
}

// randomHostString draws n characters from fallbackAlphabet using the
// secure entropy source. Entropy failure here is unrecoverable for the
// fingerprint and propagates.
func randomHostString(n int) (string, error) {
	buf := make([]byte, n)
	if err := readEntropy(buf); err != nil {
		return "", err
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = fallbackAlphabet[int(b)%len(fallbackAlphabet)]
	}
	return string(out), nil
}

var (
	environOnce sync.Once
	environStr  string
)

// environSnapshot serializes the environment once and reuses the
// result for the process lifetime. Purely a cache; the fingerprint is
// computed once anyway.
func environSnapshot() string {
	environOnce.Do(func() {
		env := os.Environ()
		sort.Strings(env)
		environStr = strings.Join(env, "\n")
	})
	return environStr
}
