package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/visus-io/cuid2/internal/journal"
	"github.com/visus-io/cuid2/internal/runtime"
	"github.com/visus-io/cuid2/pkg/cuid2"
	logpkg "github.com/visus-io/cuid2/pkg/log"
)

// Server serves the identifier API over HTTP.
type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

// New builds a Server around the runtime.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	if logger == nil {
		logger = logpkg.NewNop()
	}
	s := &Server{rt: rt, logger: logger.WithComponent("http")}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/ids/new", s.handleNew)
	mux.HandleFunc("/v1/ids/validate", s.handleValidate)
	mux.HandleFunc("/v1/ids/recent", s.handleRecent)
	s.srv = &http.Server{Handler: cors(mux)}
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close closes the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.CheckHealth(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_serving"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type newReq struct {
	Count  int  `json:"count"`
	Length *int `json:"length"`
}

type newResp struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	// An empty body means "one identifier, default length".
	var req newReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	cfg := s.rt.Config()
	count := req.Count
	if count <= 0 {
		count = 1
	}
	if count > cfg.MaxMint {
		writeError(w, http.StatusBadRequest, "count exceeds limit "+strconv.Itoa(cfg.MaxMint))
		return
	}
	length := cfg.DefaultLength
	if req.Length != nil {
		length = *req.Length
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := cuid2.NewWithLength(length)
		if err != nil {
			if errors.Is(err, cuid2.ErrLength) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.logger.Error("mint failed", logpkg.Err(err))
			writeError(w, http.StatusInternalServerError, "identifier construction failed")
			return
		}
		rendered := id.String()
		if jrnl := s.rt.Journal(); jrnl != nil {
			if _, err := jrnl.Append(rendered, time.Now().UnixMilli(), length); err != nil {
				s.logger.Error("journal append failed", logpkg.Err(err))
				writeError(w, http.StatusInternalServerError, "journal write failed")
				return
			}
		}
		ids = append(ids, rendered)
	}
	s.logger.Debug("minted", logpkg.Int("count", count), logpkg.Int("length", length))
	writeJSON(w, http.StatusOK, newResp{IDs: ids})
}

type validateReq struct {
	ID     string `json:"id"`
	Length *int   `json:"length"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req validateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	valid := false
	if req.Length != nil {
		valid = cuid2.IsValidLen(req.ID, *req.Length)
	} else {
		valid = cuid2.IsValid(req.ID)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

type recentResp struct {
	Entries []journal.Entry `json:"entries"`
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	jrnl := s.rt.Journal()
	if jrnl == nil {
		writeError(w, http.StatusServiceUnavailable, "journal disabled")
		return
	}

	cfg := s.rt.Config()
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	if limit > cfg.RecentLimit {
		limit = cfg.RecentLimit
	}

	filter, err := newCELFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter: "+err.Error())
		return
	}

	entries, err := jrnl.Recent(limit)
	if err != nil {
		s.logger.Error("journal read failed", logpkg.Err(err))
		writeError(w, http.StatusInternalServerError, "journal read failed")
		return
	}
	matched := make([]journal.Entry, 0, len(entries))
	for _, e := range entries {
		if filter.Eval(e) {
			matched = append(matched, e)
		}
	}
	writeJSON(w, http.StatusOK, recentResp{Entries: matched})
}
