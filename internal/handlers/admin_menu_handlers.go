package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/mealplan"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// AdminMenuHandler manages the menu item catalog and the daily menu
// schedule.
type AdminMenuHandler struct {
	api          *api.Client
	sessions     *session.Manager
	assetBaseURL string
}

func NewAdminMenuHandler(apiClient *api.Client, sessions *session.Manager, assetBaseURL string) *AdminMenuHandler {
	return &AdminMenuHandler{api: apiClient, sessions: sessions, assetBaseURL: assetBaseURL}
}

// menuItemRow is one row of the menu items table.
type menuItemRow struct {
	Item     api.MenuItem
	ImageURL string
	Editing  bool
}

// MenuItemsPage lists the catalog with the create form, or the edit
// form for the item named by ?edit=.
func (h *AdminMenuHandler) MenuItemsPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	items, err := h.api.ListMenuItems(c.Request().Context(), sess.Token)
	if err != nil {
		return h.fail(c, err, "Failed to fetch menu items.")
	}

	editingID, _ := strconv.Atoi(c.QueryParam("edit"))

	rows := make([]menuItemRow, 0, len(items))
	var editing *api.MenuItem
	for _, item := range items {
		rows = append(rows, menuItemRow{
			Item:     item,
			ImageURL: imageURL(h.assetBaseURL, item.ImageURL),
			Editing:  item.ID == editingID,
		})
		if item.ID == editingID {
			it := item
			editing = &it
		}
	}

	data := pageData(c, "Manage Menu Items", "admin-menu-items")
	data["Rows"] = rows
	data["Editing"] = editing
	data["MealTypes"] = mealplan.AllMealTypes
	return c.Render(http.StatusOK, "admin_menu_items.html", data)
}

// CreateMenuItem adds a dish to the catalog, optionally with a photo.
func (h *AdminMenuHandler) CreateMenuItem(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	input, errMsg := h.menuItemInput(c)
	if errMsg != "" {
		return redirectWithError(c, "/admin/menu-items", errMsg)
	}

	if err := h.api.CreateMenuItem(c.Request().Context(), sess.Token, input); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/menu-items", apiErrorMessage(err, "Failed to create menu item."))
	}
	return redirectWithMessage(c, "/admin/menu-items", "Menu item created successfully!")
}

// UpdateMenuItem saves changes to a dish.
func (h *AdminMenuHandler) UpdateMenuItem(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid menu item ID")
	}

	input, errMsg := h.menuItemInput(c)
	if errMsg != "" {
		return redirectWithError(c, "/admin/menu-items", errMsg)
	}

	if err := h.api.UpdateMenuItem(c.Request().Context(), sess.Token, id, input); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/menu-items", apiErrorMessage(err, "Failed to update menu item."))
	}
	return redirectWithMessage(c, "/admin/menu-items", "Menu item updated successfully!")
}

// DeleteMenuItem removes a dish from the catalog.
func (h *AdminMenuHandler) DeleteMenuItem(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid menu item ID")
	}

	if err := h.api.DeleteMenuItem(c.Request().Context(), sess.Token, id); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/menu-items", apiErrorMessage(err, "Failed to delete menu item."))
	}
	return redirectWithMessage(c, "/admin/menu-items", "Menu item deleted successfully!")
}

func (h *AdminMenuHandler) menuItemInput(c echo.Context) (api.MenuItemInput, string) {
	input := api.MenuItemInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		MealType:    c.FormValue("meal_type"),
	}
	if input.Name == "" || input.MealType == "" {
		return input, "Name and meal type are required."
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return input, "Could not read the uploaded image."
		}
		defer src.Close()
		content, err := io.ReadAll(src)
		if err != nil {
			return input, "Could not read the uploaded image."
		}
		input.Image = &api.Upload{Field: "image", Filename: fh.Filename, Content: bytes.NewReader(content)}
	}
	return input, ""
}

// dailyMenuRow is one row of the schedule table.
type dailyMenuRow struct {
	Menu    api.DailyMenu
	Date    string
	Option1 string
	Option2 string
	Editing bool
}

// DailyMenusPage lists the schedule newest first, with the create form
// or the edit form for ?edit=.
func (h *AdminMenuHandler) DailyMenusPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	menus, err := h.api.ListAdminDailyMenus(c.Request().Context(), sess.Token)
	if err != nil {
		return h.fail(c, err, "Failed to fetch daily menus.")
	}
	items, err := h.api.ListMenuItems(c.Request().Context(), sess.Token)
	if err != nil {
		return h.fail(c, err, "Failed to fetch menu items.")
	}

	sort.Slice(menus, func(i, j int) bool { return menus[i].Date() > menus[j].Date() })

	editingID, _ := strconv.Atoi(c.QueryParam("edit"))

	rows := make([]dailyMenuRow, 0, len(menus))
	var editing *api.DailyMenu
	for _, m := range menus {
		row := dailyMenuRow{Menu: m, Date: m.Date(), Option1: "-", Option2: "-", Editing: m.ID == editingID}
		if m.Option1 != nil {
			row.Option1 = m.Option1.Name
		}
		if m.Option2 != nil {
			row.Option2 = m.Option2.Name
		}
		rows = append(rows, row)
		if m.ID == editingID {
			mm := m
			editing = &mm
		}
	}

	data := pageData(c, "Manage Daily Menus", "admin-daily-menus")
	data["Rows"] = rows
	data["Editing"] = editing
	data["EditingOption2"] = 0
	if editing != nil && editing.Option2ID != nil {
		data["EditingOption2"] = *editing.Option2ID
	}
	data["Items"] = items
	data["MealTypes"] = mealplan.AllMealTypes
	return c.Render(http.StatusOK, "admin_daily_menus.html", data)
}

// CreateDailyMenu publishes a menu slot for a date.
func (h *AdminMenuHandler) CreateDailyMenu(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	input, errMsg := dailyMenuInput(c)
	if errMsg != "" {
		return redirectWithError(c, "/admin/daily-menus", errMsg)
	}

	if err := h.api.CreateDailyMenu(c.Request().Context(), sess.Token, input); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/daily-menus", dailyMenuErrorMessage(err, "Failed to create daily menu."))
	}
	return redirectWithMessage(c, "/admin/daily-menus", "Daily menu created successfully!")
}

// UpdateDailyMenu saves changes to a slot.
func (h *AdminMenuHandler) UpdateDailyMenu(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid daily menu ID")
	}

	input, errMsg := dailyMenuInput(c)
	if errMsg != "" {
		return redirectWithError(c, "/admin/daily-menus", errMsg)
	}

	if err := h.api.UpdateDailyMenu(c.Request().Context(), sess.Token, id, input); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/daily-menus", dailyMenuErrorMessage(err, "Failed to update daily menu."))
	}
	return redirectWithMessage(c, "/admin/daily-menus", "Daily menu updated successfully!")
}

// DeleteDailyMenu unpublishes a slot.
func (h *AdminMenuHandler) DeleteDailyMenu(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid daily menu ID")
	}

	if err := h.api.DeleteDailyMenu(c.Request().Context(), sess.Token, id); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, "/admin/daily-menus", apiErrorMessage(err, "Failed to delete daily menu."))
	}
	return redirectWithMessage(c, "/admin/daily-menus", "Daily menu deleted successfully!")
}

func (h *AdminMenuHandler) fail(c echo.Context, err error, fallback string) error {
	if errors.Is(err, api.ErrUnauthorized) {
		h.sessions.Invalidate(c)
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return echo.NewHTTPError(http.StatusBadGateway, apiErrorMessage(err, fallback))
}

func dailyMenuInput(c echo.Context) (api.DailyMenuInput, string) {
	input := api.DailyMenuInput{
		MenuDate: c.FormValue("menu_date"),
		MealType: c.FormValue("meal_type"),
	}
	if input.MenuDate == "" || input.MealType == "" {
		return input, "Date and meal type are required."
	}

	opt1, err := strconv.Atoi(c.FormValue("option_1_id"))
	if err != nil || opt1 <= 0 {
		return input, "Please choose a first option."
	}
	input.Option1ID = opt1

	if raw := c.FormValue("option_2_id"); raw != "" {
		opt2, err := strconv.Atoi(raw)
		if err != nil || opt2 <= 0 {
			return input, "Invalid second option."
		}
		if opt2 == opt1 {
			return input, "The two options must be different dishes."
		}
		input.Option2ID = &opt2
	}
	return input, ""
}

// dailyMenuErrorMessage flattens the backend's field validation into
// one flash line, preferring the most actionable field.
func dailyMenuErrorMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	for _, field := range []string{"menu_date", "option_1_id", "option_2_id", "meal_type"} {
		if msg := apiErr.FieldError(field); msg != "" {
			return msg
		}
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
