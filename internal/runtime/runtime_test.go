package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/visus-io/cuid2/internal/config"
	pebblestore "github.com/visus-io/cuid2/internal/storage/pebble"
)

func TestOpenWithJournal(t *testing.T) {
	cfg := cfgpkg.Default()
	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever, Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	if rt.Journal() == nil {
		t.Fatal("journal enabled by config but nil")
	}
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
	if _, err := rt.Journal().Append("atest1", 1, 6); err != nil {
		t.Fatalf("append through runtime: %v", err)
	}
}

func TestOpenWithoutJournal(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.JournalEnabled = false
	rt, err := Open(Options{Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rt.Close()

	if rt.Journal() != nil {
		t.Fatal("journal disabled by config but non-nil")
	}
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health without store: %v", err)
	}
}
