package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DefaultLength != 24 {
		t.Fatalf("DefaultLength = %d, want 24", cfg.DefaultLength)
	}
	if cfg.MaxMint <= 0 || cfg.RecentLimit <= 0 {
		t.Fatalf("non-positive limits in defaults: %+v", cfg)
	}
	if !cfg.JournalEnabled {
		t.Fatalf("journal should default on")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"defaultLength": 16, "maxMint": 50, "journalEnabled": false}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultLength != 16 || cfg.MaxMint != 50 || cfg.JournalEnabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// Unset keys keep defaults.
	if cfg.RecentLimit != Default().RecentLimit {
		t.Fatalf("RecentLimit = %d, want default %d", cfg.RecentLimit, Default().RecentLimit)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load accepted malformed JSON")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CUID_DEFAULT_LENGTH", "12")
	t.Setenv("CUID_MAX_MINT", "5")
	t.Setenv("CUID_JOURNAL_ENABLED", "false")
	t.Setenv("CUID_RECENT_LIMIT", "25")

	cfg := Default()
	FromEnv(&cfg)
	if cfg.DefaultLength != 12 || cfg.MaxMint != 5 || cfg.JournalEnabled || cfg.RecentLimit != 25 {
		t.Fatalf("env overlay not applied: %+v", cfg)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("CUID_DEFAULT_LENGTH", "many")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.DefaultLength != 24 {
		t.Fatalf("garbage env value should be ignored, got %d", cfg.DefaultLength)
	}
}

func TestDefaultDataDirNonEmpty(t *testing.T) {
	if DefaultDataDir() == "" {
		t.Fatal("DefaultDataDir returned empty path")
	}
}
