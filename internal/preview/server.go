// Package preview serves a built site over HTTP for local inspection.
package preview

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Badpoolinator/strata-wiki/internal/config"
	"github.com/Badpoolinator/strata-wiki/internal/logfields"
)

// Server serves the output directory with the site's URL conventions:
// extensionless article paths resolve to their .html file, and misses
// inside a game fall back to that game's 404 page.
type Server struct {
	cfg     *config.Config
	metrics http.Handler
	srv     *http.Server
}

// New creates a preview server over the configured output directory.
// The metrics handler is optional; when nil no /metrics route is
// registered.
func New(cfg *config.Config, metrics http.Handler) *Server {
	s := &Server{cfg: cfg, metrics: metrics}
	s.srv = &http.Server{
		Addr:              cfg.Preview.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the route tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics)
	}
	mux.HandleFunc("/", s.servePage)
	return mux
}

// Start serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	slog.Info("Preview server listening", logfields.URL("http://"+ln.Addr().String()), logfields.Path(s.cfg.Output.Directory))

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// servePage resolves a request path to a file under the output
// directory, trying the path itself, the path with .html appended, and
// the path's index.html.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if strings.Contains(rel, "..") {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if rel == "" {
		rel = "index"
	}

	base := filepath.Join(s.cfg.Output.Directory, filepath.FromSlash(rel))
	for _, candidate := range []string{base, base + ".html", filepath.Join(base, "index.html")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			http.ServeFile(w, r, candidate)
			return
		}
	}

	s.serveNotFound(w, r, rel)
}

// serveNotFound answers a miss with the owning game's 404 page when
// one was built, falling back to a plain 404.
func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request, rel string) {
	game, _, _ := strings.Cut(rel, "/")
	if game != "" {
		page := filepath.Join(s.cfg.Output.Directory, game, "404.html")
		if raw, err := os.ReadFile(page); err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write(raw)
			return
		}
	}
	slog.Debug("Preview miss", logfields.URL(r.URL.Path))
	http.NotFound(w, r)
}
