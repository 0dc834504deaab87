package mealplan

// Plan describes a subscription tier. The catalog is static on the
// frontend; the backend only stores the plan id per subscription.
type Plan struct {
	ID          int
	Name        string
	Description string
	Price       int
	MealsPerDay int
	TotalMeals  int
}

// Plans is the sellable catalog. Ids 1 and 2 were weekly plans that
// have been retired; the backend may still hold subscriptions on them.
var Plans = []Plan{
	{ID: 3, Name: "Monthly Plan", Description: "1 Meal", Price: 1999, MealsPerDay: 1, TotalMeals: 30},
	{ID: 4, Name: "Monthly Plan", Description: "2 Meals", Price: 3999, MealsPerDay: 2, TotalMeals: 60},
	{ID: 5, Name: "Monthly Plan", Description: "3 Meals", Price: 5999, MealsPerDay: 3, TotalMeals: 90},
}

// PlanByID looks up a plan in the catalog.
func PlanByID(id int) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// PlanLabel renders a display name like "Monthly Plan (2 Meals)", or
// "N/A" for retired or unknown plan ids.
func PlanLabel(id int) string {
	p, ok := PlanByID(id)
	if !ok {
		return "N/A"
	}
	return p.Name + " (" + p.Description + ")"
}
