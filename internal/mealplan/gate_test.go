package mealplan

import (
	"testing"
	"time"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("bad date %q: %v", value, err)
	}
	return d
}

func clock(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return d
}

func intPtr(v int) *int { return &v }

func TestPastDeadline(t *testing.T) {
	tests := []struct {
		name string
		date string
		now  string
		want bool
	}{
		{
			name: "today is always past deadline",
			date: "2026-03-10",
			now:  "2026-03-10 08:00",
			want: true,
		},
		{
			name: "today late evening",
			date: "2026-03-10",
			now:  "2026-03-10 23:30",
			want: true,
		},
		{
			name: "tomorrow before cutoff",
			date: "2026-03-11",
			now:  "2026-03-10 16:59",
			want: false,
		},
		{
			name: "tomorrow at cutoff",
			date: "2026-03-11",
			now:  "2026-03-10 17:00",
			want: true,
		},
		{
			name: "tomorrow after cutoff",
			date: "2026-03-11",
			now:  "2026-03-10 18:00",
			want: true,
		},
		{
			name: "two days out after cutoff",
			date: "2026-03-12",
			now:  "2026-03-10 21:00",
			want: false,
		},
		{
			name: "a week out",
			date: "2026-03-17",
			now:  "2026-03-10 09:00",
			want: false,
		},
		{
			name: "past date locks defensively",
			date: "2026-03-09",
			now:  "2026-03-10 09:00",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PastDeadline(date(t, tt.date), clock(t, tt.now), DefaultCutoffHour)
			if got != tt.want {
				t.Errorf("PastDeadline(%s, %s) = %v; want %v", tt.date, tt.now, got, tt.want)
			}
		})
	}
}

func TestPastDeadlineCustomCutoff(t *testing.T) {
	d := date(t, "2026-03-11")

	if PastDeadline(d, clock(t, "2026-03-10 19:30"), 20) {
		t.Error("tomorrow at 19:30 with a 20:00 cutoff should not be past deadline")
	}
	if !PastDeadline(d, clock(t, "2026-03-10 20:00"), 20) {
		t.Error("tomorrow at 20:00 with a 20:00 cutoff should be past deadline")
	}
	// Zero falls back to the default 17:00 cutoff.
	if !PastDeadline(d, clock(t, "2026-03-10 17:00"), 0) {
		t.Error("zero cutoff hour should fall back to the default")
	}
}

func TestEvaluateLocking(t *testing.T) {
	menu := &MenuOptions{Option1ID: 10, Option2ID: intPtr(11)}

	tests := []struct {
		name       string
		hasSub     bool
		remaining  int
		paused     bool
		date       string
		now        string
		wantLocked bool
	}{
		{
			name:       "active subscription three days out",
			hasSub:     true,
			remaining:  5,
			date:       "2026-03-13",
			now:        "2026-03-10 12:00",
			wantLocked: false,
		},
		{
			name:       "active subscription viewing today",
			hasSub:     true,
			remaining:  5,
			date:       "2026-03-10",
			now:        "2026-03-10 12:00",
			wantLocked: true,
		},
		{
			name:       "no subscription locks every date",
			hasSub:     false,
			date:       "2026-03-14",
			now:        "2026-03-10 12:00",
			wantLocked: true,
		},
		{
			name:       "zero meals remaining locks every date",
			hasSub:     true,
			remaining:  0,
			date:       "2026-03-14",
			now:        "2026-03-10 12:00",
			wantLocked: true,
		},
		{
			name:       "paused overrides an active subscription",
			hasSub:     true,
			remaining:  12,
			paused:     true,
			date:       "2026-03-14",
			now:        "2026-03-10 12:00",
			wantLocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Evaluate(GateInput{
				HasSubscription: tt.hasSub,
				MealsRemaining:  tt.remaining,
				Paused:          tt.paused,
				Date:            date(t, tt.date),
				Now:             clock(t, tt.now),
				Menu:            menu,
			})
			if g.Locked != tt.wantLocked {
				t.Errorf("Locked = %v; want %v", g.Locked, tt.wantLocked)
			}
		})
	}
}

func TestEvaluateEffectiveValue(t *testing.T) {
	menu := &MenuOptions{Option1ID: 10, Option2ID: intPtr(11)}

	t.Run("no prior selection defaults to option 1", func(t *testing.T) {
		g := Evaluate(GateInput{
			HasSubscription: true,
			MealsRemaining:  5,
			Date:            date(t, "2026-03-13"),
			Now:             clock(t, "2026-03-10 12:00"),
			Menu:            menu,
		})
		if g.Locked {
			t.Error("Locked = true; want false")
		}
		if g.Effective.FormValue() != "10" {
			t.Errorf("Effective = %q; want %q", g.Effective.FormValue(), "10")
		}
		if g.PreferenceSaved {
			t.Error("PreferenceSaved = true with no existing selection")
		}
	})

	t.Run("saved option round-trips", func(t *testing.T) {
		g := Evaluate(GateInput{
			HasSubscription: true,
			MealsRemaining:  5,
			Date:            date(t, "2026-03-13"),
			Now:             clock(t, "2026-03-10 12:00"),
			Existing:        &Existing{SelectedOptionID: intPtr(11)},
			Menu:            menu,
		})
		if g.Effective.FormValue() != "11" {
			t.Errorf("Effective = %q; want %q", g.Effective.FormValue(), "11")
		}
		if !g.PreferenceSaved {
			t.Error("PreferenceSaved = false; want true")
		}
	})

	t.Run("saved skip round-trips before cutoff", func(t *testing.T) {
		g := Evaluate(GateInput{
			HasSubscription: true,
			MealsRemaining:  5,
			Date:            date(t, "2026-03-11"),
			Now:             clock(t, "2026-03-10 16:00"),
			Existing:        &Existing{IsSkipped: true},
			Menu:            menu,
		})
		if g.Locked {
			t.Error("Locked = true at 16:00 for tomorrow; want false")
		}
		if g.Effective.FormValue() != SkipValue {
			t.Errorf("Effective = %q; want %q", g.Effective.FormValue(), SkipValue)
		}
		if !g.PreferenceSaved {
			t.Error("PreferenceSaved = false; want true")
		}
	})

	t.Run("saved skip still reported after cutoff", func(t *testing.T) {
		g := Evaluate(GateInput{
			HasSubscription: true,
			MealsRemaining:  5,
			Date:            date(t, "2026-03-11"),
			Now:             clock(t, "2026-03-10 18:00"),
			Existing:        &Existing{IsSkipped: true},
			Menu:            menu,
		})
		if !g.Locked {
			t.Error("Locked = false at 18:00 for tomorrow; want true")
		}
		if g.Effective.FormValue() != SkipValue {
			t.Errorf("Effective = %q; want %q", g.Effective.FormValue(), SkipValue)
		}
	})

	t.Run("no menu published yields no choice", func(t *testing.T) {
		g := Evaluate(GateInput{
			HasSubscription: true,
			MealsRemaining:  5,
			Date:            date(t, "2026-03-13"),
			Now:             clock(t, "2026-03-10 12:00"),
		})
		if !g.Effective.None() {
			t.Errorf("Effective = %q; want none", g.Effective.FormValue())
		}
		if g.PreferenceSaved {
			t.Error("PreferenceSaved = true with no menu")
		}
	})
}

func TestPreferenceSavedIdempotence(t *testing.T) {
	// After a save, re-rendering with the persisted selection as input
	// must keep reporting saved, so repeated identical saves stay
	// suppressed.
	menu := &MenuOptions{Option1ID: 10}
	in := GateInput{
		HasSubscription: true,
		MealsRemaining:  5,
		Date:            date(t, "2026-03-13"),
		Now:             clock(t, "2026-03-10 12:00"),
		Existing:        &Existing{SelectedOptionID: intPtr(10)},
		Menu:            menu,
	}

	first := Evaluate(in)
	second := Evaluate(in)
	if !first.PreferenceSaved || !second.PreferenceSaved {
		t.Errorf("PreferenceSaved = %v, %v; want true, true", first.PreferenceSaved, second.PreferenceSaved)
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input  string
		want   Choice
		wantOK bool
	}{
		{"skip", Choice{Skipped: true}, true},
		{"42", Choice{OptionID: 42}, true},
		{"", Choice{}, false},
		{"0", Choice{}, false},
		{"-3", Choice{}, false},
		{"lunch", Choice{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseChoice(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseChoice(%q) = %+v, %v; want %+v, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNextDays(t *testing.T) {
	now := clock(t, "2026-03-10 15:30")
	days := NextDays(now, 7)
	if len(days) != 7 {
		t.Fatalf("len(days) = %d; want 7", len(days))
	}
	if got := days[0].Format("2006-01-02"); got != "2026-03-10" {
		t.Errorf("days[0] = %s; want 2026-03-10", got)
	}
	if got := days[6].Format("2006-01-02"); got != "2026-03-16" {
		t.Errorf("days[6] = %s; want 2026-03-16", got)
	}
}
