package mealplan

import (
	"reflect"
	"testing"
)

func TestParseMealTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []MealType
	}{
		{
			name:  "single type",
			input: "Lunch",
			want:  []MealType{Lunch},
		},
		{
			name:  "two types",
			input: "Breakfast,Dinner",
			want:  []MealType{Breakfast, Dinner},
		},
		{
			name:  "whitespace around labels",
			input: " Breakfast , Lunch ",
			want:  []MealType{Breakfast, Lunch},
		},
		{
			name:  "canonical order regardless of input order",
			input: "Dinner,Breakfast",
			want:  []MealType{Breakfast, Dinner},
		},
		{
			name:  "unknown labels dropped",
			input: "Brunch,Lunch,supper",
			want:  []MealType{Lunch},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "duplicates collapse",
			input: "Lunch,Lunch,Lunch",
			want:  []MealType{Lunch},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMealTypes(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMealTypes(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinRoundTrip(t *testing.T) {
	in := "Breakfast,Lunch,Dinner"
	if got := Join(ParseMealTypes(in)); got != in {
		t.Errorf("Join(ParseMealTypes(%q)) = %q; want %q", in, got, in)
	}
}

func TestPlanByID(t *testing.T) {
	p, ok := PlanByID(4)
	if !ok {
		t.Fatal("PlanByID(4) not found")
	}
	if p.MealsPerDay != 2 || p.TotalMeals != 60 {
		t.Errorf("plan 4 = %+v; want 2 meals/day, 60 total", p)
	}

	if _, ok := PlanByID(99); ok {
		t.Error("PlanByID(99) found; want missing")
	}

	if got := PlanLabel(5); got != "Monthly Plan (3 Meals)" {
		t.Errorf("PlanLabel(5) = %q", got)
	}
	if got := PlanLabel(1); got != "N/A" {
		t.Errorf("PlanLabel(1) = %q; want N/A", got)
	}
}
