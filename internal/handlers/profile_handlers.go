package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// ProfileHandler renders and updates the user's personal details.
type ProfileHandler struct {
	api          *api.Client
	sessions     *session.Manager
	assetBaseURL string
}

func NewProfileHandler(apiClient *api.Client, sessions *session.Manager, assetBaseURL string) *ProfileHandler {
	return &ProfileHandler{api: apiClient, sessions: sessions, assetBaseURL: assetBaseURL}
}

// ProfilePage shows the profile with the subscription summary.
func (h *ProfileHandler) ProfilePage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	user, err := h.api.CurrentUser(c.Request().Context(), sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to fetch profile data.")
	}
	h.sessions.Refresh(c, user)

	data := pageData(c, "My Profile", "profile")
	data["User"] = user
	data["PlanName"] = planDisplayName(user)
	data["ProfileImageURL"] = imageURL(h.assetBaseURL, user.ProfileImageURL)
	return c.Render(http.StatusOK, "profile.html", data)
}

// UpdateProfile saves personal details, with an optional new profile
// photo or a photo removal.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	input := api.ProfileInput{
		Name:               c.FormValue("name"),
		Email:              c.FormValue("email"),
		PhoneNumber:        c.FormValue("phone_number"),
		Address:            c.FormValue("address"),
		RemoveProfileImage: c.FormValue("remove_profile_image") == "true",
	}

	if fh, err := c.FormFile("profile_image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return redirectWithError(c, "/profile", "Could not read the uploaded image.")
		}
		defer src.Close()
		input.ProfileImage = &api.Upload{Field: "profile_image", Filename: fh.Filename, Content: src}
	}

	user, err := h.api.UpdateProfile(c.Request().Context(), sess.Token, input)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/profile", apiErrorMessage(err, "Failed to update profile."))
	}
	h.sessions.Refresh(c, user)

	return redirectWithMessage(c, "/profile", "Profile updated successfully!")
}
