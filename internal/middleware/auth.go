package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/session"
)

const sessionKey = "session"

// WithSession attaches the session to the request context when one
// exists, without requiring it. Public pages use it so the navigation
// can reflect the login state.
func WithSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess, err := sessions.Current(c); err == nil {
				c.Set(sessionKey, sess)
			}
			return next(c)
		}
	}
}

// RequireAuth loads the session for the request and redirects to the
// login page when there is none.
func RequireAuth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentSession(c); ok {
				return next(c)
			}

			sess, err := sessions.Current(c)
			if err != nil {
				// Unknown or expired session: drop the cookie too. 303
				// so an expired-session POST lands on GET /login.
				sessions.Invalidate(c)
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// RequireAdmin gates admin routes on the cached user's admin flag.
// Must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if !bool(sess.User.IsAdmin) {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session RequireAuth stored on the
// request context.
func CurrentSession(c echo.Context) (session.Session, bool) {
	sess, ok := c.Get(sessionKey).(session.Session)
	return sess, ok
}
