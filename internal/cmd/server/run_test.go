package serverrun

import (
	"context"
	"testing"
	"time"

	cfgpkg "github.com/visus-io/cuid2/internal/config"
	pebblestore "github.com/visus-io/cuid2/internal/storage/pebble"
	logpkg "github.com/visus-io/cuid2/pkg/log"
)

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{
			DataDir:  t.TempDir(),
			HTTPAddr: "127.0.0.1:0",
			Fsync:    pebblestore.FsyncModeNever,
			Config:   cfgpkg.Default(),
			Logger:   logpkg.NewNop(),
		})
	}()

	// Give the server a moment to open storage and bind.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v on cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRunFailsOnBadAddr(t *testing.T) {
	err := Run(context.Background(), Options{
		DataDir:  t.TempDir(),
		HTTPAddr: "256.256.256.256:99999",
		Fsync:    pebblestore.FsyncModeNever,
		Config:   cfgpkg.Default(),
		Logger:   logpkg.NewNop(),
	})
	if err == nil {
		t.Fatal("Run accepted an unbindable address")
	}
}
