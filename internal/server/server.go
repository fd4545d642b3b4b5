// Package server exposes the editor over HTTP.
//
// Every browser gets its own editing scope, identified by a UUID held in a
// cookie. API clients that do not keep cookies may send the scope in the
// X-Bloom-Session header instead. Errors are returned as
//
//	{"error": {"code": "COMPONENT_NOT_FOUND", "message": "no component \"x\""}}
//
// with the status from [errors.HTTPStatus].
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/bloom/pkg/editor"
	"github.com/matzehuels/bloom/pkg/httputil"
)

// DefaultCookieName holds the session scope.
const DefaultCookieName = "bloom_session"

// SessionHeader may carry the scope instead of the cookie.
const SessionHeader = "X-Bloom-Session"

// Fetcher downloads remote documents for URL imports.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Options configures a [Server].
type Options struct {
	// AllowedOrigins enables CORS for these origins. Empty disables CORS.
	AllowedOrigins []string

	// CookieName defaults to [DefaultCookieName].
	CookieName string

	// CookieTTL is the cookie lifetime; zero makes it a browser-session cookie.
	CookieTTL time.Duration

	// Fetcher is used for ?url= imports. Nil uses httputil defaults.
	Fetcher Fetcher
}

// Server serves the editor API.
type Server struct {
	editor  *editor.Editor
	logger  *log.Logger
	opts    Options
	fetcher Fetcher
}

// New creates a server around ed.
func New(ed *editor.Editor, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	s := &Server{editor: ed, logger: logger, opts: opts, fetcher: opts.Fetcher}
	if s.fetcher == nil {
		s.fetcher = httputil.Fetcher{Client: httputil.DefaultClient, Attempts: 3, Delay: time.Second}
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", SessionHeader},
			ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.presets)
		r.Get("/samples", s.listSamples)
		r.Get("/samples/{name}", s.getSample)

		r.Group(func(r chi.Router) {
			r.Use(s.scoped)

			r.Route("/screen", func(r chi.Router) {
				r.Get("/", s.getScreen)
				r.Delete("/", s.clearScreen)
				r.Post("/import", s.importScreen)
				r.Get("/export", s.exportScreen)
				r.Get("/preview", s.previewScreen)
				r.Get("/outline.svg", s.outlineScreen)
				r.Get("/summary", s.summary)
			})

			r.Put("/selection", s.selectComponent)

			r.Route("/components/{id}", func(r chi.Router) {
				r.Use(validComponentID)
				r.Get("/", s.getComponent)
				r.Patch("/styles", s.patchStyles)
				r.Put("/opacity", s.putOpacity)
				r.Get("/resolved", s.resolvedStyle)
			})
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
