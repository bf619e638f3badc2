package runtime

import (
	"context"
	"time"

	cfgpkg "github.com/visus-io/cuid2/internal/config"
	"github.com/visus-io/cuid2/internal/journal"
	pebblestore "github.com/visus-io/cuid2/internal/storage/pebble"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Runtime wires storage, config, and the journal for a single-node
// instance. When the journal is disabled by config, no store is
// opened and Journal returns nil.
type Runtime struct {
	db     *pebblestore.DB
	jrnl   *journal.Journal
	config cfgpkg.Config
}

// Open initializes underlying storage (when enabled) and returns a
// Runtime.
func Open(opts Options) (*Runtime, error) {
	rt := &Runtime{config: opts.Config}
	if !opts.Config.JournalEnabled {
		return rt, nil
	}

	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}
	jrnl, err := journal.Open(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	rt.db = db
	rt.jrnl = jrnl
	return rt, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check. A runtime without a
// journal is healthy by construction.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Journal returns the issuance journal, or nil when disabled.
func (r *Runtime) Journal() *journal.Journal { return r.jrnl }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
