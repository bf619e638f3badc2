package serverrun

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cfgpkg "github.com/visus-io/cuid2/internal/config"
	"github.com/visus-io/cuid2/internal/runtime"
	httpserver "github.com/visus-io/cuid2/internal/server/http"
	pebblestore "github.com/visus-io/cuid2/internal/storage/pebble"
	logpkg "github.com/visus-io/cuid2/pkg/log"
)

// Options configures a server run.
type Options struct {
	DataDir       string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        logpkg.Logger
}

// Run starts the HTTP server and blocks until ctx is cancelled or a
// termination signal arrives.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers
	// without signal handling still shut down cleanly.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}

	rt, err := runtime.Open(runtime.Options{
		DataDir:       filepath.Join(opts.DataDir, "store"),
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	// Pebble logs through the stdlib logger.
	logpkg.RedirectStdLog(logger)

	logger.Info("starting cuid2 server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Int("default_length", opts.Config.DefaultLength),
		logpkg.Str("journal", map[bool]string{true: "on", false: "off"}[opts.Config.JournalEnabled]),
	)

	hsrv := httpserver.New(rt, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- hsrv.ListenAndServe(sctx, opts.HTTPAddr) }()

	select {
	case <-sctx.Done():
		hsrv.Close()
		<-errCh
		return nil
	case err := <-errCh:
		return err
	}
}
