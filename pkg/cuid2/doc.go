// Package cuid2 generates collision-resistant, URL-safe identifiers.
//
// # Format
//
// An identifier is a single lowercase letter followed by length-1
// base-36 characters, for a requested length between 4 and 32
// (default 24). The tail is the truncated base-36 rendering of a
// SHA-512 digest over a millisecond timestamp, a process-lifetime
// counter value, per-identifier random bytes, and a per-process
// fingerprint.
//
// # Construction
//
// The counter and the fingerprint are process-wide singletons,
// initialized lazily on first use. The counter starts at a uniformly
// random position and wraps at a fixed modulus; the fingerprint hashes
// machine identity, the process id, and the environment once and is
// immutable afterwards.
//
// Usage
//
//	id, err := cuid2.New()
//	s := id.String()           // e.g. "p3kteaz0wu2ghrmv8tjcq6n1"
//	ok := cuid2.IsValid(s)     // format check only
//
// Rendering is pure: String on the same ID always returns the same
// string. Identifiers carry no secret and must not be used as
// authentication tokens.
package cuid2
