package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level service configuration.
type Config struct {
	// DefaultLength is the identifier length minted when a request
	// does not ask for one. Must lie within the engine's [4, 32].
	DefaultLength int `json:"defaultLength"`
	// MaxMint caps how many identifiers a single mint request may ask
	// for.
	MaxMint int `json:"maxMint"`
	// JournalEnabled controls whether minted identifiers are recorded
	// in the on-disk issuance journal.
	JournalEnabled bool `json:"journalEnabled"`
	// RecentLimit caps the number of journal entries a listing
	// request may return.
	RecentLimit int `json:"recentLimit"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		DefaultLength:  24,
		MaxMint:        1000,
		JournalEnabled: true,
		RecentLimit:    500,
	}
}

// Load reads configuration from a JSON file. If path is empty, it
// returns defaults. Environment overlays are applied separately via
// FromEnv.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
