package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders friendly error pages for Echo. Non-HTTP errors
// collapse to a 500 with a generic message so backend details never
// reach the browser.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code

		if msg, ok := he.Message.(string); ok && msg != "" {
			errorMessage = msg
		}

		switch code {
		case http.StatusNotFound:
			errorTitle = "Page Not Found"
			if errorMessage == "" {
				errorMessage = "The page you're looking for doesn't exist."
			}
		case http.StatusForbidden:
			errorTitle = "Access Denied"
			if errorMessage == "" {
				errorMessage = "You don't have permission to access this resource."
			}
		case http.StatusUnauthorized:
			errorTitle = "Unauthorized"
			if errorMessage == "" {
				errorMessage = "Please log in to continue."
			}
		case http.StatusBadRequest:
			errorTitle = "Bad Request"
			if errorMessage == "" {
				errorMessage = "The request could not be processed."
			}
		default:
			if errorMessage == "" {
				errorMessage = "Something went wrong. Please try again later."
			}
		}
	} else {
		errorMessage = "Something went wrong. Please try again later."
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Int("status", code).Msg("request failed")

	data := map[string]any{
		"Title":        errorTitle,
		"ActiveNav":    "",
		"ErrorTitle":   errorTitle,
		"ErrorMessage": errorMessage,
	}

	if renderErr := c.Render(code, "error.html", data); renderErr != nil {
		log.Error().Err(renderErr).Msg("failed to render error page")
		_ = c.String(code, errorMessage)
	}
}
