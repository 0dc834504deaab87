package api

import (
	"bytes"
	"encoding/json"
)

// Flag is a boolean that also accepts the 0/1 integers the backend
// serializes for some boolean columns.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null":
		*f = false
		return nil
	case "0", `"0"`:
		*f = false
		return nil
	case "1", `"1"`:
		*f = true
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*f = Flag(b)
	return nil
}

func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// User is the authenticated account as returned by GET /user.
type User struct {
	ID                   int           `json:"id"`
	Name                 string        `json:"name"`
	Email                string        `json:"email"`
	PhoneNumber          string        `json:"phone_number"`
	Address              string        `json:"address"`
	IsAdmin              Flag          `json:"is_admin"`
	MealsTimePreference  string        `json:"meals_time_preference"`
	IsSubscriptionPaused Flag          `json:"is_subscription_paused"`
	ProfileImageURL      string        `json:"profile_image_url"`
	Subscription         *Subscription `json:"subscription,omitempty"`
	Selections           []Selection   `json:"selections,omitempty"`
}

// Subscription is active iff MealsRemaining > 0.
type Subscription struct {
	ID             int `json:"id"`
	UserID         int `json:"user_id"`
	PlanID         int `json:"plan_id"`
	MealsRemaining int `json:"meals_remaining"`
	MealsPerDay    int `json:"meals_per_day"`
}

// MenuItem is a dish the kitchen can put on a daily menu.
type MenuItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MealType    string `json:"meal_type"`
	ImageURL    string `json:"image_url"`
}

// DailyMenu is one (date, meal type) slot with one or two options.
type DailyMenu struct {
	ID        int       `json:"id"`
	MenuDate  string    `json:"menu_date"`
	MealType  string    `json:"meal_type"`
	Option1ID int       `json:"option_1_id"`
	Option2ID *int      `json:"option_2_id"`
	Option1   *MenuItem `json:"option1,omitempty"`
	Option2   *MenuItem `json:"option2,omitempty"`
}

// Date returns the calendar date portion (YYYY-MM-DD) of MenuDate,
// which the backend serializes with a time component.
func (m DailyMenu) Date() string {
	if len(m.MenuDate) >= 10 {
		return m.MenuDate[:10]
	}
	return m.MenuDate
}

// Selection is a user's saved choice for a daily menu. Either
// SelectedOptionID is set or IsSkipped is true, never both.
type Selection struct {
	ID               int        `json:"id"`
	UserID           int        `json:"user_id"`
	DailyMenuID      int        `json:"daily_menu_id"`
	SelectedOptionID *int       `json:"selected_option_id"`
	IsSkipped        Flag       `json:"is_skipped"`
	DailyMenu        *DailyMenu `json:"daily_menu,omitempty"`
	SelectedOption   *MenuItem  `json:"selectedOption,omitempty"`
}

// Review is a submitted customer review.
type Review struct {
	ID            int    `json:"id"`
	UserID        int    `json:"user_id"`
	MealRating    string `json:"meal_rating"`
	CustomMessage string `json:"custom_message"`
	CreatedAt     string `json:"created_at"`
	User          *User  `json:"user,omitempty"`
}

// Report aggregates one day's orders for the kitchen and for delivery.
type Report struct {
	KitchenReport  []KitchenReportRow  `json:"kitchen_report"`
	DeliveryReport []DeliveryReportRow `json:"delivery_report"`
}

type KitchenReportRow struct {
	MealName string `json:"meal_name"`
	Quantity int    `json:"quantity"`
}

type DeliveryReportRow struct {
	UserName     string `json:"user_name"`
	Address      string `json:"address"`
	MealType     string `json:"meal_type"`
	SelectedMeal string `json:"selected_meal"`
}

// UserPage is the backend's paginated users envelope.
type UserPage struct {
	Data        []User `json:"data"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int    `json:"total"`
}

// LoginResult is the payload returned by POST /login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// MessageResult is the generic {"message": ...} acknowledgement body.
type MessageResult struct {
	Message string `json:"message"`
}
