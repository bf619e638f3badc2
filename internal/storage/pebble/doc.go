// Package pebblestore wraps a Pebble database with a fsync policy and
// small key/value helpers used by the issuance journal.
package pebblestore
