package handlers

import (
	"testing"

	"github.com/yourhelp9/tiffin-service/internal/api"
)

func TestImageURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{
			name: "plain path",
			base: "http://127.0.0.1:8000",
			path: "menu_images/poha.jpg",
			want: "http://127.0.0.1:8000/storage/menu_images/poha.jpg",
		},
		{
			name: "trailing and leading slashes collapse",
			base: "http://127.0.0.1:8000/",
			path: "/menu_images/poha.jpg",
			want: "http://127.0.0.1:8000/storage/menu_images/poha.jpg",
		},
		{name: "empty path", base: "http://127.0.0.1:8000", path: "", want: ""},
		{name: "no asset base configured", base: "", path: "menu_images/poha.jpg", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := imageURL(tt.base, tt.path); got != tt.want {
				t.Errorf("imageURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	withMessage := &api.APIError{StatusCode: 422, Message: "The given data was invalid."}
	if got := apiErrorMessage(withMessage, "fallback"); got != "The given data was invalid." {
		t.Errorf("expected backend message, got %q", got)
	}

	empty := &api.APIError{StatusCode: 500}
	if got := apiErrorMessage(empty, "fallback"); got != "fallback" {
		t.Errorf("expected fallback for empty message, got %q", got)
	}

	if got := apiErrorMessage(api.ErrUnauthorized, "fallback"); got != "fallback" {
		t.Errorf("expected fallback for non-API error, got %q", got)
	}
}

func TestDailyMenuErrorMessage(t *testing.T) {
	err := &api.APIError{
		StatusCode: 422,
		Message:    "The given data was invalid.",
		Errors: map[string][]string{
			"option_2_id": {"Option 2 must be different from option 1."},
		},
	}
	if got := dailyMenuErrorMessage(err, "fallback"); got != "Option 2 must be different from option 1." {
		t.Errorf("expected field message, got %q", got)
	}

	noFields := &api.APIError{StatusCode: 409, Message: "Conflict."}
	if got := dailyMenuErrorMessage(noFields, "fallback"); got != "Conflict." {
		t.Errorf("expected backend message, got %q", got)
	}

	if got := dailyMenuErrorMessage(api.ErrUnauthorized, "fallback"); got != "fallback" {
		t.Errorf("expected fallback for non-API error, got %q", got)
	}
}

func TestPlanDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user api.User
		want string
	}{
		{
			name: "no subscription",
			user: api.User{},
			want: "No Active Plan",
		},
		{
			name: "exhausted subscription",
			user: api.User{Subscription: &api.Subscription{PlanID: 4, MealsRemaining: 0}},
			want: "No Active Plan",
		},
		{
			name: "active with preference",
			user: api.User{
				MealsTimePreference: "Breakfast,Dinner",
				Subscription:        &api.Subscription{PlanID: 4, MealsRemaining: 12},
			},
			want: "Monthly Plan (2 Meals) (Breakfast,Dinner)",
		},
		{
			name: "retired plan id",
			user: api.User{Subscription: &api.Subscription{PlanID: 1, MealsRemaining: 3}},
			want: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := planDisplayName(tt.user); got != tt.want {
				t.Errorf("planDisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
