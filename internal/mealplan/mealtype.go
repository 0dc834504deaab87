// Package mealplan holds the meal-selection rules: which meal types a
// subscriber may choose among, whether a selection for a given date is
// still changeable, and which option is effectively selected. It is
// pure computation; all persistence lives behind the backend API.
package mealplan

import "strings"

// MealType is one of the three daily meal slots.
type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
)

// AllMealTypes lists the slots in serving order.
var AllMealTypes = []MealType{Breakfast, Lunch, Dinner}

// ParseMealTypes turns the backend's comma-separated preference string
// into an ordered set of valid meal types. Unknown labels and stray
// whitespace are dropped; result order follows serving order, not
// input order.
func ParseMealTypes(preference string) []MealType {
	allowed := map[MealType]bool{}
	for _, raw := range strings.Split(preference, ",") {
		switch MealType(strings.TrimSpace(raw)) {
		case Breakfast:
			allowed[Breakfast] = true
		case Lunch:
			allowed[Lunch] = true
		case Dinner:
			allowed[Dinner] = true
		}
	}

	var types []MealType
	for _, mt := range AllMealTypes {
		if allowed[mt] {
			types = append(types, mt)
		}
	}
	return types
}

// Contains reports whether mt is in the set.
func Contains(types []MealType, mt MealType) bool {
	for _, t := range types {
		if t == mt {
			return true
		}
	}
	return false
}

// Join renders a set back to the backend's comma-separated form.
func Join(types []MealType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}
