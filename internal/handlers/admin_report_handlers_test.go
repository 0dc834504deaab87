package handlers

import (
	"testing"
	"time"

	"github.com/yourhelp9/tiffin-service/internal/api"
)

func TestReportTitle(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "today", date: "2026-03-10", want: "Today's Report"},
		{name: "yesterday", date: "2026-03-09", want: "Yesterday's Report"},
		{name: "older date", date: "2026-03-01", want: "01-03-2026 Report"},
		{name: "future date", date: "2026-03-11", want: "11-03-2026 Report"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportTitle(tt.date, now); got != tt.want {
				t.Errorf("reportTitle(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestFilterReport(t *testing.T) {
	report := api.Report{
		KitchenReport: []api.KitchenReportRow{
			{MealName: "Poha", Quantity: 4},
			{MealName: "Dal Rice", Quantity: 9},
			{MealName: "Khichdi", Quantity: 2},
		},
		DeliveryReport: []api.DeliveryReportRow{
			{UserName: "Asha", MealType: "Breakfast", SelectedMeal: "Poha"},
			{UserName: "Ravi", MealType: "Lunch", SelectedMeal: "Dal Rice"},
			{UserName: "Meera", MealType: "Lunch", SelectedMeal: "Khichdi"},
		},
	}

	t.Run("all keeps everything", func(t *testing.T) {
		delivery, kitchen := filterReport(report, "All")
		if len(delivery) != 3 || len(kitchen) != 3 {
			t.Errorf("expected 3/3 rows, got %d/%d", len(delivery), len(kitchen))
		}
	})

	t.Run("lunch narrows both halves", func(t *testing.T) {
		delivery, kitchen := filterReport(report, "Lunch")
		if len(delivery) != 2 {
			t.Fatalf("expected 2 delivery rows, got %d", len(delivery))
		}
		if len(kitchen) != 2 {
			t.Fatalf("expected 2 kitchen rows, got %d", len(kitchen))
		}
		for _, row := range kitchen {
			if row.MealName == "Poha" {
				t.Errorf("breakfast dish leaked into lunch kitchen report")
			}
		}
	})

	t.Run("no matches yields empty halves", func(t *testing.T) {
		delivery, kitchen := filterReport(report, "Dinner")
		if len(delivery) != 0 || len(kitchen) != 0 {
			t.Errorf("expected empty report, got %d/%d rows", len(delivery), len(kitchen))
		}
	})
}
