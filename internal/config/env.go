package config

import (
	"os"
	"strconv"
)

// FromEnv overlays CUID_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("CUID_DEFAULT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultLength = n
		}
	}
	if v := os.Getenv("CUID_MAX_MINT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxMint = n
		}
	}
	if v := os.Getenv("CUID_JOURNAL_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.JournalEnabled = b
		}
	}
	if v := os.Getenv("CUID_RECENT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RecentLimit = n
		}
	}
}
