// Package session holds the logged-in state for the web frontend: the
// backend bearer token plus a cached snapshot of the user, keyed by an
// opaque session id carried in an HTTP-only cookie. Lifecycle: Set on
// login, read on every protected page, Invalidate on logout or on any
// 401 from the backend.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
)

// CookieName is the session id cookie.
const CookieName = "tiffin_session"

// TTL matches the cookie lifetime.
const TTL = 5 * 24 * time.Hour

// ErrNotFound means the session id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Session is the stored login state. The user snapshot is a cached
// copy; pages that need fresh data re-fetch it from the backend.
type Session struct {
	Token string   `json:"token"`
	User  api.User `json:"user"`
}

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Set(ctx context.Context, id string, sess Session) error
	Delete(ctx context.Context, id string) error
}

// Manager ties a Store to the session cookie.
type Manager struct {
	store  Store
	secure bool
}

func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// Current loads the session for the request. Returns ErrNotFound when
// there is no cookie or the id is unknown.
func (m *Manager) Current(c echo.Context) (Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, ErrNotFound
	}
	return m.store.Get(c.Request().Context(), cookie.Value)
}

// Set stores a fresh session and issues its cookie.
func (m *Manager) Set(c echo.Context, sess Session) error {
	id := uuid.NewString()
	if err := m.store.Set(c.Request().Context(), id, sess); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Refresh overwrites the cached user snapshot for the current session.
func (m *Manager) Refresh(c echo.Context, user api.User) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return
	}
	sess, err := m.store.Get(c.Request().Context(), cookie.Value)
	if err != nil {
		return
	}
	sess.User = user
	_ = m.store.Set(c.Request().Context(), cookie.Value, sess)
}

// Invalidate drops the stored session and clears the cookie. Safe to
// call when no session exists.
func (m *Manager) Invalidate(c echo.Context) {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		_ = m.store.Delete(c.Request().Context(), cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
}
