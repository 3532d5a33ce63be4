package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/goaltrack/internal/config"
	"github.com/templui/goaltrack/internal/ctxkeys"
	"github.com/templui/goaltrack/internal/flash"
	"github.com/templui/goaltrack/internal/model"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func withUser(r *http.Request) *http.Request {
	return r.WithContext(ctxkeys.WithUser(r.Context(), &model.User{ID: "u1"}))
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(ok, mw("first"), mw("second"), mw("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(ok)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h(rec, withUser(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireGuest(t *testing.T) {
	h := RequireGuest(ok)

	rec := httptest.NewRecorder()
	h(rec, withUser(httptest.NewRequest(http.MethodGet, "/login", nil)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodGet, "/register", nil))
	req.Header.Set("HX-Request", "true")
	h(rec, req)
	assert.Equal(t, "/dashboard", rec.Header().Get("HX-Redirect"))

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFProtection(t *testing.T) {
	var seen string
	h := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.CSRFToken(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/add_goal", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value
	assert.Equal(t, token, seen)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/add_goal", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookies[0])
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	form := url.Values{"csrf_token": {token}, "title": {"x"}}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/add_goal", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookies[0])
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/add_goal", nil)
	req.Header.Set(csrfHeader, token)
	req.AddCookie(cookies[0])
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "limits are per IP")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))

	now = now.Add(10 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.requests)
}

func TestRateLimitAuth(t *testing.T) {
	h := RateLimitAuth(1, time.Minute)(ok)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitAuth_IgnoresForwardedHeaderByDefault(t *testing.T) {
	h := Config(&config.Config{})(RateLimitAuth(1, time.Minute)(ok))

	for i, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("X-Forwarded-For", ip)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if i == 0 {
			assert.Equal(t, http.StatusOK, rec.Code)
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code, "rotating the header must not reset the limit")
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Real-IP", "10.0.0.2")
	req.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.1", clientIP(req), "headers are ignored without config")

	untrusted := req.WithContext(ctxkeys.WithConfig(req.Context(), &config.Config{}))
	assert.Equal(t, "10.0.0.1", clientIP(untrusted))

	trusted := req.WithContext(ctxkeys.WithConfig(req.Context(), &config.Config{TrustProxy: true}))
	assert.Equal(t, "10.0.0.3", clientIP(trusted))

	trusted.Header.Del("X-Forwarded-For")
	assert.Equal(t, "10.0.0.2", clientIP(trusted))
}

func TestSecurityHeaders(t *testing.T) {
	var nonce string
	h := Chain(ok, NonceMiddleware, SecurityHeaders, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce = templ.GetNonce(r.Context())
			next.ServeHTTP(w, r)
		})
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, nonce)
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "'nonce-"+nonce+"'")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestFlashMiddleware(t *testing.T) {
	store := flash.NewStore("test-secret", false)

	var got *ctxkeys.Flash
	h := Flash(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.FlashMessage(r.Context())
		if r.URL.Path == "/logout" {
			flash.Success(w, r, "Welcome back!")
		}
	}))

	set := httptest.NewRecorder()
	h.ServeHTTP(set, httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.Len(t, set.Result().Cookies(), 1, "handlers reach the store through the context")
	cookie := set.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/update_profile", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, got, "only GET consumes the flash")

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, "Welcome back!", got.Message)
}

func TestConfigMiddleware(t *testing.T) {
	cfg := &config.Config{AppName: "Goaltrack", JWTSecret: "secret", DBConnection: "db"}

	var got *config.Config
	h := Config(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Config(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.Equal(t, "Goaltrack", got.AppName)
	assert.Empty(t, got.JWTSecret)
	assert.Empty(t, got.DBConnection)
}
