package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/mealplan"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// MenuHandler renders the weekly menu page and saves meal selections.
// The selection gate in internal/mealplan decides what is editable;
// the backend re-validates the same rules on save.
type MenuHandler struct {
	api          *api.Client
	sessions     *session.Manager
	assetBaseURL string
	cutoffHour   int
	now          func() time.Time
}

func NewMenuHandler(apiClient *api.Client, sessions *session.Manager, assetBaseURL string, cutoffHour int) *MenuHandler {
	return &MenuHandler{
		api:          apiClient,
		sessions:     sessions,
		assetBaseURL: assetBaseURL,
		cutoffHour:   cutoffHour,
		now:          time.Now,
	}
}

// dayTab is one entry of the 7-day date strip.
type dayTab struct {
	ISO      string
	Label    string
	DayNum   int
	Month    string
	Selected bool
}

// optionCard is one selectable card (option 1, option 2 or skip).
type optionCard struct {
	Value       string
	Label       string
	Name        string
	Description string
	ImageURL    string
	Selected    bool
	Skip        bool
}

// MenuPage renders the menu for the chosen date and meal type.
func (h *MenuHandler) MenuPage(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)
	ctx := c.Request().Context()
	now := h.now()

	user, err := h.api.CurrentUser(ctx, sess.Token)
	if err != nil {
		return h.apiFail(c, err)
	}
	h.sessions.Refresh(c, user)

	selections, err := h.api.ListUserSelections(ctx, sess.Token)
	if err != nil {
		return h.apiFail(c, err)
	}

	menus, err := h.api.ListDailyMenus(ctx)
	if err != nil {
		return h.apiFail(c, err)
	}

	allowed := mealplan.ParseMealTypes(user.MealsTimePreference)

	selectedDate := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", selectedDate); err != nil {
		selectedDate = now.Format("2006-01-02")
	}

	selectedMeal := mealplan.MealType(c.QueryParam("meal"))
	if !mealplan.Contains(allowed, selectedMeal) {
		if len(allowed) > 0 {
			selectedMeal = allowed[0]
		} else {
			selectedMeal = mealplan.Breakfast
		}
	}

	menu := findMenu(menus, selectedDate, string(selectedMeal))
	var existing *api.Selection
	if menu != nil {
		existing = findSelection(selections, menu.ID)
	}

	gate := h.evaluateGate(user, selectedDate, menu, existing, now)

	hasActivePlan := user.Subscription != nil && user.Subscription.MealsRemaining > 0

	data := pageData(c, "Tiffin Menu", "menu")
	data["User"] = user
	data["HasActivePlan"] = hasActivePlan
	data["IsPaused"] = bool(user.IsSubscriptionPaused)
	data["Days"] = h.dayTabs(now, selectedDate)
	data["AllowedMealTypes"] = allowed
	data["SelectedMealType"] = selectedMeal
	data["SelectedDate"] = selectedDate
	data["Locked"] = gate.Locked
	data["PreferenceSaved"] = gate.PreferenceSaved
	if user.Subscription != nil {
		data["MealsRemaining"] = user.Subscription.MealsRemaining
	}
	if menu != nil {
		data["DailyMenuID"] = menu.ID
		data["Options"] = h.optionCards(menu, gate.Effective, string(selectedMeal))
	}

	return c.Render(http.StatusOK, "menu.html", data)
}

// SaveSelection upserts the choice for one daily menu slot.
func (h *MenuHandler) SaveSelection(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)
	ctx := c.Request().Context()
	now := h.now()

	selectedDate := c.FormValue("date")
	selectedMeal := c.FormValue("meal_type")
	backTo := "/menu?date=" + url.QueryEscape(selectedDate) + "&meal=" + url.QueryEscape(selectedMeal)

	user, err := h.api.CurrentUser(ctx, sess.Token)
	if err != nil {
		return h.apiFail(c, err)
	}

	if user.Subscription == nil || user.Subscription.MealsRemaining <= 0 {
		return redirectWithError(c, backTo, "Please purchase or activate your plan to make selections.")
	}
	if bool(user.IsSubscriptionPaused) {
		return redirectWithError(c, backTo, "Your subscription is currently paused.")
	}

	date, err := time.ParseInLocation("2006-01-02", selectedDate, now.Location())
	if err != nil {
		return redirectWithError(c, "/menu", "Invalid date.")
	}
	// Advisory client-side check; the backend enforces the same
	// deadline with its own clock.
	if mealplan.PastDeadline(date, now, h.cutoffHour) {
		return redirectWithError(c, backTo, "Selections for this date are locked.")
	}

	dailyMenuID, err := strconv.Atoi(c.FormValue("daily_menu_id"))
	if err != nil || dailyMenuID <= 0 {
		return redirectWithError(c, backTo, "No menu item available to save for this meal type.")
	}

	choice, ok := mealplan.ParseChoice(c.FormValue("choice"))
	if !ok {
		return redirectWithError(c, backTo, "Please select an option or skip the meal.")
	}

	input := api.SelectionInput{DailyMenuID: dailyMenuID, IsSkipped: choice.Skipped}
	if !choice.Skipped {
		optionID := choice.OptionID
		input.SelectedOptionID = &optionID
	}

	if _, err := h.api.UpsertSelection(ctx, sess.Token, input); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.sessions.Invalidate(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return redirectWithError(c, backTo, apiErrorMessage(err, "Failed to save your selection."))
	}

	return redirectWithMessage(c, backTo, "Selections saved successfully!")
}

func (h *MenuHandler) apiFail(c echo.Context, err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		h.sessions.Invalidate(c)
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return echo.NewHTTPError(http.StatusBadGateway, apiErrorMessage(err, "Failed to load the menu. Please try again."))
}

func (h *MenuHandler) evaluateGate(user api.User, selectedDate string, menu *api.DailyMenu, existing *api.Selection, now time.Time) mealplan.Gate {
	in := mealplan.GateInput{
		HasSubscription: user.Subscription != nil,
		Paused:          bool(user.IsSubscriptionPaused),
		Now:             now,
		CutoffHour:      h.cutoffHour,
	}
	if user.Subscription != nil {
		in.MealsRemaining = user.Subscription.MealsRemaining
	}
	in.Date, _ = time.ParseInLocation("2006-01-02", selectedDate, now.Location())
	if menu != nil {
		in.Menu = &mealplan.MenuOptions{Option1ID: menu.Option1ID, Option2ID: menu.Option2ID}
	}
	if existing != nil {
		in.Existing = &mealplan.Existing{
			SelectedOptionID: existing.SelectedOptionID,
			IsSkipped:        bool(existing.IsSkipped),
		}
	}
	return mealplan.Evaluate(in)
}

func (h *MenuHandler) dayTabs(now time.Time, selectedDate string) []dayTab {
	var tabs []dayTab
	for i, day := range mealplan.NextDays(now, 7) {
		iso := day.Format("2006-01-02")
		label := day.Format("Mon")
		if i == 0 {
			label = "Today"
		}
		tabs = append(tabs, dayTab{
			ISO:      iso,
			Label:    label,
			DayNum:   day.Day(),
			Month:    day.Format("Jan"),
			Selected: iso == selectedDate,
		})
	}
	return tabs
}

func (h *MenuHandler) optionCards(menu *api.DailyMenu, effective mealplan.Choice, mealType string) []optionCard {
	var cards []optionCard

	card := optionCard{
		Value:    strconv.Itoa(menu.Option1ID),
		Label:    "Option 1",
		Selected: !effective.Skipped && effective.OptionID == menu.Option1ID,
	}
	if menu.Option1 != nil {
		card.Name = menu.Option1.Name
		card.Description = menu.Option1.Description
		card.ImageURL = imageURL(h.assetBaseURL, menu.Option1.ImageURL)
	}
	cards = append(cards, card)

	if menu.Option2ID != nil && menu.Option2 != nil {
		cards = append(cards, optionCard{
			Value:       strconv.Itoa(*menu.Option2ID),
			Label:       "Option 2",
			Name:        menu.Option2.Name,
			Description: menu.Option2.Description,
			ImageURL:    imageURL(h.assetBaseURL, menu.Option2.ImageURL),
			Selected:    !effective.Skipped && effective.OptionID == *menu.Option2ID,
		})
	}

	cards = append(cards, optionCard{
		Value:       mealplan.SkipValue,
		Label:       "Skip",
		Name:        "Skip " + mealType,
		Description: "Help us cut down food wastage.",
		Selected:    effective.Skipped,
		Skip:        true,
	})

	return cards
}

func findMenu(menus []api.DailyMenu, date, mealType string) *api.DailyMenu {
	for i := range menus {
		if menus[i].Date() == date && menus[i].MealType == mealType {
			return &menus[i]
		}
	}
	return nil
}

func findSelection(selections []api.Selection, dailyMenuID int) *api.Selection {
	for i := range selections {
		if selections[i].DailyMenuID == dailyMenuID {
			return &selections[i]
		}
	}
	return nil
}
