// Package config loads service configuration from an optional JSON
// file with CUID_* environment variable overlays.
package config
