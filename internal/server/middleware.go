package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/session"
)

type scopeKey struct{}

// scoped resolves the request's editing scope from the header or cookie,
// issuing a new scope cookie when neither carries a valid one.
func (s *Server) scoped(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := r.Header.Get(SessionHeader)
		if scope != "" {
			if err := errors.ValidateSessionID(scope); err != nil {
				writeError(w, r, s.logger, err)
				return
			}
		} else {
			if c, err := r.Cookie(s.opts.CookieName); err == nil && errors.ValidateSessionID(c.Value) == nil {
				scope = c.Value
			} else {
				scope = session.NewID()
			}
			http.SetCookie(w, s.cookie(scope))
		}

		ctx := context.WithValue(r.Context(), scopeKey{}, scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) cookie(scope string) *http.Cookie {
	c := &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    scope,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.opts.CookieTTL > 0 {
		c.MaxAge = int(s.opts.CookieTTL / time.Second)
	}
	return c
}

func scopeFrom(r *http.Request) string {
	scope, _ := r.Context().Value(scopeKey{}).(string)
	return scope
}

func validComponentID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := errors.ValidateComponentID(chi.URLParam(r, "id")); err != nil {
			writeError(w, r, nil, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
