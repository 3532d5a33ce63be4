package middleware

import (
	"fmt"
	"net/http"

	"github.com/templui/goaltrack/internal/ctxkeys"
)

// SecurityHeaders sets CSP and related headers. Inline scripts and styles are
// only allowed with the request nonce, so it must run after NonceMiddleware.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce := GetNonce(r.Context())

		csp := "default-src 'self'; img-src 'self' data:; object-src 'none'; base-uri 'self'; form-action 'self'; frame-ancestors 'none'"
		if nonce != "" {
			csp += fmt.Sprintf("; script-src 'self' 'nonce-%s'; style-src 'self' 'nonce-%s'", nonce, nonce)
		}

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.CookieSecure {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
