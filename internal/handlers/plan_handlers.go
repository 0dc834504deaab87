package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/mealplan"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// PlanHandler renders the subscription plans page. Plans are bought
// offline; activation happens through the admin panel.
type PlanHandler struct {
	api      *api.Client
	sessions *session.Manager
}

func NewPlanHandler(apiClient *api.Client, sessions *session.Manager) *PlanHandler {
	return &PlanHandler{api: apiClient, sessions: sessions}
}

// PlansPage shows the catalog plus the user's current usage.
func (h *PlanHandler) PlansPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	user, err := h.api.CurrentUser(c.Request().Context(), sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to load plans. Please try again.")
	}
	h.sessions.Refresh(c, user)

	data := pageData(c, "My Subscription", "plans")
	data["User"] = user
	data["Plans"] = mealplan.Plans
	data["IsPlanActive"] = false
	data["ActivePlanID"] = 0

	if user.Subscription != nil && user.Subscription.MealsRemaining > 0 {
		// Retired plan ids fall out of the catalog; the usage card is
		// skipped for them rather than shown with zeroes.
		if active, ok := mealplan.PlanByID(user.Subscription.PlanID); ok {
			remaining := user.Subscription.MealsRemaining
			data["IsPlanActive"] = true
			data["ActivePlan"] = active
			data["ActivePlanID"] = active.ID
			data["TotalMeals"] = active.TotalMeals
			data["RemainingMeals"] = remaining
			data["UsedMeals"] = active.TotalMeals - remaining
			data["UsedPercent"] = 0
			if active.TotalMeals > 0 {
				data["UsedPercent"] = (active.TotalMeals - remaining) * 100 / active.TotalMeals
			}
		}
	}

	return c.Render(http.StatusOK, "plans.html", data)
}
