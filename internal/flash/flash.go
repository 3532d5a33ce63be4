// Package flash stores one-shot user messages in a signed cookie between a
// redirect and the next page render.
package flash

import (
	"context"
	"crypto/sha256"
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/templui/goaltrack/internal/ctxkeys"
)

const (
	sessionName = "flash"
	maxAge      = 300
)

func init() {
	// Session values are gob encoded; flashes are stored as []any.
	gob.Register([]any{})
}

// kinds in the order Pop checks them; the first queued message wins.
var kinds = []string{ctxkeys.FlashError, ctxkeys.FlashSuccess, ctxkeys.FlashInfo}

// Store reads and writes flash messages. Cookies are signed with a key
// derived from secret, so a client cannot forge messages.
type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret string, secure bool) *Store {
	key := sha256.Sum256([]byte("flash:" + secret))

	cookies := sessions.NewCookieStore(key[:])
	cookies.MaxAge(maxAge)
	cookies.Options.Path = "/"
	cookies.Options.HttpOnly = true
	cookies.Options.Secure = secure
	cookies.Options.SameSite = http.SameSiteLaxMode

	return &Store{cookies: cookies}
}

// Set queues a message for the next request.
func (s *Store) Set(w http.ResponseWriter, r *http.Request, kind, message string) {
	session, _ := s.cookies.Get(r, sessionName)
	// Pop may already have expired this request's session.
	session.Options.MaxAge = maxAge
	session.AddFlash(message, kind)

	err := session.Save(r, w)
	if err != nil {
		slog.Error("failed to save flash", "error", err)
	}
}

// Pop reads the queued message, if any, and clears the cookie.
// Missing or tampered cookies yield nil.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) *ctxkeys.Flash {
	if _, err := r.Cookie(sessionName); err != nil {
		return nil
	}

	session, err := s.cookies.Get(r, sessionName)

	var f *ctxkeys.Flash
	if err == nil {
		for _, kind := range kinds {
			for _, v := range session.Flashes(kind) {
				if msg, ok := v.(string); ok && msg != "" && f == nil {
					f = &ctxkeys.Flash{Kind: kind, Message: msg}
				}
			}
		}
	}

	session.Options.MaxAge = -1
	err = session.Save(r, w)
	if err != nil {
		slog.Error("failed to clear flash", "error", err)
	}

	return f
}

type storeKey struct{}

// WithStore makes s available to Success, Error and Info.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

func fromContext(ctx context.Context) *Store {
	s, _ := ctx.Value(storeKey{}).(*Store)
	return s
}

func Success(w http.ResponseWriter, r *http.Request, message string) {
	set(w, r, ctxkeys.FlashSuccess, message)
}

func Error(w http.ResponseWriter, r *http.Request, message string) {
	set(w, r, ctxkeys.FlashError, message)
}

func Info(w http.ResponseWriter, r *http.Request, message string) {
	set(w, r, ctxkeys.FlashInfo, message)
}

func set(w http.ResponseWriter, r *http.Request, kind, message string) {
	s := fromContext(r.Context())
	if s == nil {
		slog.Warn("flash store missing from context, message dropped", "path", r.URL.Path)
		return
	}
	s.Set(w, r, kind, message)
}
