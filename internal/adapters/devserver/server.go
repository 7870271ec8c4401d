package devserver

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/unrolled/secure"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Server serves the build directory over HTTP.
type Server struct {
	logger ports.Logger
	cfg    domain.ServerConfig
	dir    string
	hub    *Hub

	// OpenBrowser is called with the server URL when opening is requested.
	OpenBrowser func(url string) error
}

// NewServer returns a Server for dir using hub for live reload.
func NewServer(cfg domain.ServerConfig, dir string, hub *Hub, logger ports.Logger) *Server {
	return &Server{
		logger:      logger,
		cfg:         cfg,
		dir:         dir,
		hub:         hub,
		OpenBrowser: browser.OpenURL,
	}
}

// Handler returns the complete HTTP handler: live-reload routes, static files and
// security headers.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle(LiveReloadPath, s.hub)
	r.HandleFunc(LiveReloadScript, serveScript).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/").Handler(compress(http.HandlerFunc(s.serveStatic))).Methods(http.MethodGet, http.MethodHead)

	sec := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "same-origin",
		IsDevelopment:      true,
	})
	return sec.Handler(noStore(r))
}

// Serve listens on the configured address until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, open bool) error {
	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerListenFailed.Error()), "address", s.cfg.Address())
	}

	url := "http://" + ln.Addr().String() + "/"
	if s.cfg.Port != 0 {
		url = s.cfg.URL()
	}
	s.logger.Info("Serving " + s.dir + " at " + url)

	if open {
		if err := s.OpenBrowser(url); err != nil {
			s.logger.Warn("could not open browser: " + err.Error())
		}
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, domain.ErrServerListenFailed.Error())
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	full := filepath.Join(s.dir, filepath.FromSlash(name))

	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, name+"/", http.StatusMovedPermanently)
			return
		}
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
	}
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if filepath.Ext(full) != ".html" {
		http.ServeFile(w, r, full)
		return
	}

	// #nosec G304 -- full is confined to the build directory by path.Clean
	doc, err := os.ReadFile(full)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, info.Name(), info.ModTime(), bytes.NewReader(InjectLiveReload(doc)))
}

func serveScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = w.Write([]byte(liveReloadJS))
}

// noStore disables browser caching so every reload sees fresh output.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
