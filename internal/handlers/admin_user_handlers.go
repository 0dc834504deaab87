package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/mealplan"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// AdminUserHandler manages customers and their subscriptions.
type AdminUserHandler struct {
	api      *api.Client
	sessions *session.Manager
}

func NewAdminUserHandler(apiClient *api.Client, sessions *session.Manager) *AdminUserHandler {
	return &AdminUserHandler{api: apiClient, sessions: sessions}
}

// userRow is one row of the users table.
type userRow struct {
	User           api.User
	PlanName       string
	MealsRemaining string
	HasActivePlan  bool
	Editing        bool
}

// Dashboard renders the admin landing page.
func (h *AdminUserHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_dashboard.html", pageData(c, "Admin Dashboard", "admin"))
}

// UsersPage lists users with subscription state filtering, pagination
// and an inline plan activation form.
func (h *AdminUserHandler) UsersPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	filter := api.UserFilter{Page: 1, PerPage: 20}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if pp, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && pp > 0 {
		filter.PerPage = pp
	}

	filterName := c.QueryParam("filter")
	switch filterName {
	case "active":
		active := true
		filter.Active = &active
	case "non-active":
		active := false
		filter.Active = &active
	default:
		filterName = "all"
	}

	page, err := h.api.ListUsers(c.Request().Context(), sess.Token, filter)
	if err != nil {
		return h.fail(c, err, "Failed to fetch users.")
	}

	editingID, _ := strconv.Atoi(c.QueryParam("edit"))

	rows := make([]userRow, 0, len(page.Data))
	for _, u := range page.Data {
		row := userRow{
			User:           u,
			PlanName:       planDisplayName(u),
			MealsRemaining: "N/A",
			HasActivePlan:  u.Subscription != nil && u.Subscription.MealsRemaining > 0,
			Editing:        u.ID == editingID,
		}
		if u.Subscription != nil {
			row.MealsRemaining = strconv.Itoa(u.Subscription.MealsRemaining)
		}
		rows = append(rows, row)
	}

	pages := make([]int, 0, page.LastPage)
	for i := 1; i <= page.LastPage; i++ {
		pages = append(pages, i)
	}

	data := pageData(c, "Manage Users", "admin-users")
	data["Rows"] = rows
	data["Filter"] = filterName
	data["PerPage"] = filter.PerPage
	data["CurrentPage"] = page.CurrentPage
	data["LastPage"] = page.LastPage
	data["Pages"] = pages
	data["Plans"] = mealplan.Plans
	data["MealTypes"] = mealplan.AllMealTypes
	return c.Render(http.StatusOK, "admin_users.html", data)
}

// UserDetails shows one user's profile, subscription and meal history.
func (h *AdminUserHandler) UserDetails(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.api.GetUser(c.Request().Context(), sess.Token, id)
	if err != nil {
		return h.fail(c, err, "Failed to fetch user details.")
	}

	data := pageData(c, "User Details", "admin-users")
	data["Detail"] = user
	data["PlanName"] = planDisplayName(user)
	return c.Render(http.StatusOK, "admin_user_details.html", data)
}

// ActivateSubscription assigns a plan to a user. The meal-type count
// must match the plan's meals per day; the backend validates again.
func (h *AdminUserHandler) ActivateSubscription(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	planID, err := strconv.Atoi(c.FormValue("plan_id"))
	if err != nil {
		return redirectWithError(c, "/admin/users", "Invalid plan selected.")
	}
	plan, ok := mealplan.PlanByID(planID)
	if !ok {
		return redirectWithError(c, "/admin/users", "Invalid plan selected.")
	}

	params, _ := c.FormParams()
	mealTypes := mealplan.ParseMealTypes(strings.Join(params["meal_types"], ","))
	if len(mealTypes) != plan.MealsPerDay {
		return redirectWithError(c, "/admin/users",
			"Please select exactly "+strconv.Itoa(plan.MealsPerDay)+" meal types for this plan.")
	}

	names := make([]string, len(mealTypes))
	for i, mt := range mealTypes {
		names[i] = string(mt)
	}

	msg, err := h.api.ActivateSubscription(c.Request().Context(), sess.Token, userID, planID, names)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/users", apiErrorMessage(err, "Failed to activate subscription."))
	}
	if msg == "" {
		msg = "Subscription updated successfully!"
	}
	return redirectWithMessage(c, "/admin/users", msg)
}

// DeleteUser removes a user permanently.
func (h *AdminUserHandler) DeleteUser(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.api.DeleteUser(c.Request().Context(), sess.Token, id); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/users", apiErrorMessage(err, "Failed to delete user."))
	}

	return redirectWithMessage(c, "/admin/users", "User deleted successfully!")
}

func (h *AdminUserHandler) fail(c echo.Context, err error, fallback string) error {
	if errors.Is(err, api.ErrUnauthorized) {
		h.sessions.Invalidate(c)
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return echo.NewHTTPError(http.StatusBadGateway, apiErrorMessage(err, fallback))
}
