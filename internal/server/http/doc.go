// Package httpserver exposes identifier minting, validation, and the
// issuance journal over a small JSON HTTP API.
package httpserver
