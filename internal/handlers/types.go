package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
)

// pageData seeds the common template fields. Handlers add their
// page-specific entries on top. Flash messages travel as query
// parameters across redirects.
func pageData(c echo.Context, title, activeNav string) map[string]any {
	return map[string]any{
		"Title":     title,
		"ActiveNav": activeNav,
		"Message":   c.QueryParam("msg"),
		"Error":     c.QueryParam("err"),
	}
}

// redirectWithMessage sends the browser to path with a flash message.
func redirectWithMessage(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+joinQuery(path, "msg="+url.QueryEscape(msg)))
}

// redirectWithError sends the browser to path with an inline error.
func redirectWithError(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+joinQuery(path, "err="+url.QueryEscape(msg)))
}

func joinQuery(path, query string) string {
	if strings.Contains(path, "?") {
		return "&" + query
	}
	return "?" + query
}

// apiErrorMessage extracts a human-readable message from a backend
// failure, falling back when the backend sent none.
func apiErrorMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// imageURL builds a browser-facing link for a backend storage path.
func imageURL(assetBaseURL, path string) string {
	if path == "" || assetBaseURL == "" {
		return ""
	}
	return strings.TrimRight(assetBaseURL, "/") + "/storage/" + strings.TrimLeft(path, "/")
}
