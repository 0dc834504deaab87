package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

func callRequireAuth(t *testing.T, sessions *session.Manager, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := RequireAuth(sessions)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec
}

// A request without a session redirects with 303 so the browser
// follows with a GET even when the original request was a POST.
func TestRequireAuthRedirectsWithSeeOther(t *testing.T) {
	sessions := session.NewManager(session.NewMemoryStore(), false)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/subscription/toggle-pause", nil)
			rec := callRequireAuth(t, sessions, req)

			if rec.Code != http.StatusSeeOther {
				t.Errorf("status = %d; want %d", rec.Code, http.StatusSeeOther)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
				t.Errorf("location = %q; want /login", loc)
			}
		})
	}
}

func TestRequireAuthPassesValidSession(t *testing.T) {
	store := session.NewMemoryStore()
	sessions := session.NewManager(store, false)
	sess := session.Session{Token: "tok", User: api.User{ID: 1, Name: "Asha"}}
	if err := store.Set(context.Background(), "sid", sess); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid"})
	rec := callRequireAuth(t, sessions, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAdminRedirectsWithSeeOther(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/admin/users/1/delete", nil), rec)

	handler := RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", rec.Code, http.StatusSeeOther)
	}
}
