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

// AdminReportHandler serves the daily kitchen/delivery report and the
// review inbox.
type AdminReportHandler struct {
	api      *api.Client
	sessions *session.Manager
	now      func() time.Time
}

func NewAdminReportHandler(apiClient *api.Client, sessions *session.Manager) *AdminReportHandler {
	return &AdminReportHandler{api: apiClient, sessions: sessions, now: time.Now}
}

// ReportsPage shows the aggregates for one date. Aggregation is
// server-side; the meal-type dropdown only narrows what is displayed.
func (h *AdminReportHandler) ReportsPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		date = h.now().Format("2006-01-02")
	}

	mealFilter := c.QueryParam("meal")
	switch mealplan.MealType(mealFilter) {
	case mealplan.Breakfast, mealplan.Lunch, mealplan.Dinner:
	default:
		mealFilter = "All"
	}

	report, err := h.api.GetReport(c.Request().Context(), sess.Token, date)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return echo.NewHTTPError(http.StatusBadGateway, apiErrorMessage(err, "Failed to fetch report."))
	}

	delivery, kitchen := filterReport(report, mealFilter)

	data := pageData(c, "Daily Reports", "admin-reports")
	data["Date"] = date
	data["ReportTitle"] = reportTitle(date, h.now())
	data["Meal"] = mealFilter
	data["MealTypes"] = mealplan.AllMealTypes
	data["Kitchen"] = kitchen
	data["Delivery"] = delivery
	return c.Render(http.StatusOK, "admin_reports.html", data)
}

// filterReport narrows both report halves to one meal type. Kitchen
// rows carry no meal type of their own, so they are kept when any
// remaining delivery row names their dish.
func filterReport(report api.Report, meal string) ([]api.DeliveryReportRow, []api.KitchenReportRow) {
	if meal == "" || meal == "All" {
		return report.DeliveryReport, report.KitchenReport
	}

	var delivery []api.DeliveryReportRow
	wanted := map[string]bool{}
	for _, row := range report.DeliveryReport {
		if row.MealType == meal {
			delivery = append(delivery, row)
			wanted[row.SelectedMeal] = true
		}
	}

	var kitchen []api.KitchenReportRow
	for _, row := range report.KitchenReport {
		if wanted[row.MealName] {
			kitchen = append(kitchen, row)
		}
	}
	return delivery, kitchen
}

// reportTitle names the report relative to today.
func reportTitle(date string, now time.Time) string {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	switch date {
	case today:
		return "Today's Report"
	case yesterday:
		return "Yesterday's Report"
	}
	if d, err := time.Parse("2006-01-02", date); err == nil {
		return d.Format("02-01-2006") + " Report"
	}
	return date + " Report"
}

// ReviewsPage lists every submitted review, newest first as returned
// by the backend.
func (h *AdminReportHandler) ReviewsPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	reviews, err := h.api.ListReviews(c.Request().Context(), sess.Token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return echo.NewHTTPError(http.StatusBadGateway, apiErrorMessage(err, "Failed to fetch reviews."))
	}

	data := pageData(c, "Customer Reviews", "admin-reviews")
	data["Reviews"] = reviews
	return c.Render(http.StatusOK, "admin_reviews.html", data)
}
