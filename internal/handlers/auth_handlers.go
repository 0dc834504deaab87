package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	api      *api.Client
	sessions *session.Manager
}

func NewAuthHandler(apiClient *api.Client, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{api: apiClient, sessions: sessions}
}

// LoginPage renders the combined login/register page.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	// Already logged in users go straight to their landing page.
	if sess, err := h.sessions.Current(c); err == nil {
		return c.Redirect(http.StatusSeeOther, landingPath(sess))
	}

	data := pageData(c, "Login", "")
	data["ShowRegister"] = c.QueryParam("register") == "1"
	return c.Render(http.StatusOK, "login.html", data)
}

// HandleLogin exchanges credentials for a backend token and opens a
// session holding the token plus the user snapshot.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	result, err := h.api.Login(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return redirectWithError(c, "/login", "Login failed. Please check your credentials.")
		}
		return redirectWithError(c, "/login", apiErrorMessage(err, "Login failed. Please check your credentials."))
	}

	sess := session.Session{Token: result.AccessToken, User: result.User}
	if err := h.sessions.Set(c, sess); err != nil {
		return redirectWithError(c, "/login", "Could not start a session. Please try again.")
	}

	return c.Redirect(http.StatusSeeOther, landingPath(sess))
}

// HandleRegister creates an account and bounces back to the login
// form on success.
func (h *AuthHandler) HandleRegister(c echo.Context) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	if err := h.api.Register(c.Request().Context(), name, email, password); err != nil {
		msg := apiErrorMessage(err, "Registration failed. Please try again.")
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			if fieldMsg := apiErr.FieldError("email"); fieldMsg != "" {
				msg = fieldMsg
			}
		}
		return redirectWithError(c, "/login?register=1", msg)
	}

	return redirectWithMessage(c, "/login", "Registration successful! Please log in.")
}

// HandleLogout invalidates the session. The backend token is simply
// abandoned; it expires server-side.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	h.sessions.Invalidate(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}

func landingPath(sess session.Session) string {
	if bool(sess.User.IsAdmin) {
		return "/admin"
	}
	return "/dashboard"
}
