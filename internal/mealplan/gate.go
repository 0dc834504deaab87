package mealplan

import (
	"math"
	"strconv"
	"time"
)

// DefaultCutoffHour is the local hour after which tomorrow's
// selections lock. The backend enforces the same rule on save; this
// check only drives the UI.
const DefaultCutoffHour = 17

// SkipValue is the form value representing a skipped meal.
const SkipValue = "skip"

// Choice is the tri-state selection value: an option id, a skip, or
// nothing (no menu published for the slot).
type Choice struct {
	OptionID int
	Skipped  bool
}

// None reports whether no choice is possible or made.
func (c Choice) None() bool {
	return !c.Skipped && c.OptionID == 0
}

// FormValue renders the choice for a radio-style control.
func (c Choice) FormValue() string {
	if c.Skipped {
		return SkipValue
	}
	if c.OptionID == 0 {
		return ""
	}
	return strconv.Itoa(c.OptionID)
}

// ParseChoice reads a submitted form value back into a Choice.
func ParseChoice(value string) (Choice, bool) {
	if value == SkipValue {
		return Choice{Skipped: true}, true
	}
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return Choice{}, false
	}
	return Choice{OptionID: id}, true
}

// Existing is a previously saved selection for a (date, meal type)
// slot, as held by the backend.
type Existing struct {
	SelectedOptionID *int
	IsSkipped        bool
}

// MenuOptions are the published options for a slot. Option2ID is nil
// when only one option exists.
type MenuOptions struct {
	Option1ID int
	Option2ID *int
}

// GateInput is everything the gate needs to decide whether a slot's
// selection may change and what it currently is.
type GateInput struct {
	// MealsRemaining from the subscription; HasSubscription is false
	// when the user has none at all.
	HasSubscription bool
	MealsRemaining  int
	Paused          bool

	// Date is the calendar date being viewed; Now is the wall clock.
	Date time.Time
	Now  time.Time

	// CutoffHour defaults to DefaultCutoffHour when zero.
	CutoffHour int

	Existing *Existing
	Menu     *MenuOptions
}

// Gate is the computed view state for one slot.
type Gate struct {
	// Locked means every choice control renders disabled.
	Locked bool
	// Effective is the pre-selected value: the saved choice when one
	// exists, otherwise the first published option.
	Effective Choice
	// PreferenceSaved holds when Effective equals what is already
	// persisted, so a redundant save can be suppressed client-side.
	PreferenceSaved bool
}

// Evaluate computes the gate for one (user, date, meal type) slot.
func Evaluate(in GateInput) Gate {
	active := in.HasSubscription && in.MealsRemaining > 0

	g := Gate{
		Locked:    !active || in.Paused || PastDeadline(in.Date, in.Now, in.CutoffHour),
		Effective: effectiveChoice(in.Existing, in.Menu),
	}
	g.PreferenceSaved = preferenceSaved(g.Effective, in.Existing)
	return g
}

// PastDeadline reports whether changes for date are no longer
// accepted at time now. Today is always locked in; tomorrow locks at
// the cutoff hour; dates further out stay open. Past dates should not
// occur, and lock defensively.
func PastDeadline(date, now time.Time, cutoffHour int) bool {
	if cutoffHour <= 0 {
		cutoffHour = DefaultCutoffHour
	}

	switch d := daysFromToday(date, now); {
	case d < 0:
		return true
	case d == 0:
		return true
	case d == 1:
		cutoff := time.Date(now.Year(), now.Month(), now.Day(), cutoffHour, 0, 0, 0, now.Location())
		return !now.Before(cutoff)
	default:
		return false
	}
}

func daysFromToday(date, now time.Time) int {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	target := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	// Round so DST transitions (23h/25h days) still count as one day.
	return int(math.Round(target.Sub(today).Hours() / 24))
}

func effectiveChoice(existing *Existing, menu *MenuOptions) Choice {
	if existing != nil {
		if existing.IsSkipped {
			return Choice{Skipped: true}
		}
		if existing.SelectedOptionID != nil {
			return Choice{OptionID: *existing.SelectedOptionID}
		}
	}
	if menu != nil {
		return Choice{OptionID: menu.Option1ID}
	}
	return Choice{}
}

func preferenceSaved(effective Choice, existing *Existing) bool {
	if existing == nil || effective.None() {
		return false
	}
	if existing.IsSkipped {
		return effective.Skipped
	}
	return existing.SelectedOptionID != nil && !effective.Skipped &&
		*existing.SelectedOptionID == effective.OptionID
}

// NextDays returns n consecutive calendar dates starting today, for
// the menu page's date strip.
func NextDays(now time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}
