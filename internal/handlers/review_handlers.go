package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// reviewCategories are the feedback buckets shown to the customer;
// they map onto the backend's coarse meal_rating values.
var reviewCategories = []string{
	"Quality or Taste Issues",
	"Insufficient Portion Size",
	"Menu",
	"Meal Timings",
}

var mealRatingByCategory = map[string]string{
	"Quality or Taste Issues":   "Bad",
	"Insufficient Portion Size": "Average",
	"Menu":                      "Good",
	"Meal Timings":              "Delicious",
}

// ReviewHandler renders the review form and submits reviews.
type ReviewHandler struct {
	api      *api.Client
	sessions *session.Manager
}

func NewReviewHandler(apiClient *api.Client, sessions *session.Manager) *ReviewHandler {
	return &ReviewHandler{api: apiClient, sessions: sessions}
}

// ReviewsPage renders the review form.
func (h *ReviewHandler) ReviewsPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	data := pageData(c, "Share Your Feedback", "reviews")
	data["User"] = sess.User
	data["Categories"] = reviewCategories
	return c.Render(http.StatusOK, "reviews.html", data)
}

// SubmitReview maps the chosen category to a rating and posts the
// review. Reviews are write-once; there is no edit flow.
func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	category := c.FormValue("category")
	rating, ok := mealRatingByCategory[category]
	if !ok {
		return redirectWithError(c, "/reviews", "Please select a category to submit your review.")
	}

	msg, err := h.api.SubmitReview(c.Request().Context(), sess.Token, rating, c.FormValue("custom_message"))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/reviews", apiErrorMessage(err, "Failed to submit review."))
	}
	if msg == "" {
		msg = "Thank you for your feedback!"
	}
	return redirectWithMessage(c, "/reviews", msg)
}
