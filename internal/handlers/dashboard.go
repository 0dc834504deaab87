package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/mealplan"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// DashboardHandler renders the customer dashboard.
type DashboardHandler struct {
	api          *api.Client
	sessions     *session.Manager
	assetBaseURL string
}

func NewDashboardHandler(apiClient *api.Client, sessions *session.Manager, assetBaseURL string) *DashboardHandler {
	return &DashboardHandler{api: apiClient, sessions: sessions, assetBaseURL: assetBaseURL}
}

// todayMeal is one row in the "What's Coming Today" card.
type todayMeal struct {
	MealType string
	Skipped  bool
	MealName string
	ImageURL string
}

// Dashboard shows the subscription summary and today's selections.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	user, err := h.api.CurrentUser(c.Request().Context(), sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to fetch your dashboard. Please try again.")
	}
	h.sessions.Refresh(c, user)

	today := time.Now().Format("2006-01-02")
	var todayMeals []todayMeal
	for _, s := range user.Selections {
		if s.DailyMenu == nil || s.DailyMenu.Date() != today {
			continue
		}
		meal := todayMeal{
			MealType: s.DailyMenu.MealType,
			Skipped:  bool(s.IsSkipped),
		}
		if s.SelectedOption != nil {
			meal.MealName = s.SelectedOption.Name
			meal.ImageURL = imageURL(h.assetBaseURL, s.SelectedOption.ImageURL)
		}
		todayMeals = append(todayMeals, meal)
	}

	hasActivePlan := user.Subscription != nil && user.Subscription.MealsRemaining > 0

	data := pageData(c, "My Dashboard", "dashboard")
	data["User"] = user
	data["HasActivePlan"] = hasActivePlan
	data["IsPaused"] = bool(user.IsSubscriptionPaused)
	data["PlanName"] = planDisplayName(user)
	data["TodayMeals"] = todayMeals
	if user.Subscription != nil {
		data["MealsRemaining"] = user.Subscription.MealsRemaining
	}

	return c.Render(http.StatusOK, "dashboard.html", data)
}

// TogglePause flips the subscription pause state via the backend.
func (h *DashboardHandler) TogglePause(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	msg, err := h.api.TogglePause(c.Request().Context(), sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/dashboard", apiErrorMessage(err, "Something went wrong."))
	}
	if msg == "" {
		msg = "Subscription updated."
	}
	return redirectWithMessage(c, "/dashboard", msg)
}

func planDisplayName(user api.User) string {
	if user.Subscription == nil || user.Subscription.MealsRemaining <= 0 {
		return "No Active Plan"
	}
	label := mealplan.PlanLabel(user.Subscription.PlanID)
	if user.MealsTimePreference != "" {
		label += " (" + user.MealsTimePreference + ")"
	}
	return label
}
