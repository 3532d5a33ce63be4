package middleware

import (
	"net/http"

	"github.com/templui/goaltrack/internal/config"
	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/flash"
)

// Config adds the sanitized configuration to the request context.
// Secrets such as JWTSecret and the DB connection never reach templates.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	sanitized := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), sanitized)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithURLPath adds the current URL's path to the context
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Flash makes store available to handlers and moves a pending flash message
// from its cookie into the context. Only GET requests consume it, so it
// survives the POST-redirect round trip.
func Flash(store *flash.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(flash.WithStore(r.Context(), store))
			if r.Method == http.MethodGet {
				if f := store.Pop(w, r); f != nil {
					r = r.WithContext(ctxkeys.WithFlash(r.Context(), f))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
