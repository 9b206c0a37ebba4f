package recur

import (
	"testing"
	"time"

	"github.com/sproutdesk/sproutdesk/internal/model"
	"github.com/sproutdesk/sproutdesk/internal/state"
)

// Monday, June 16 2025.
var monday = time.Date(2025, 6, 16, 9, 1, 0, 0, time.UTC)

func newScheduler(rules ...model.RecurringRule) (*Scheduler, *state.Container) {
	st := model.Sanitize(model.AppState{RecurringRules: rules}, monday)
	container := state.New(st)
	s := New(container, 1920, 1080)
	s.SetRand(func() float64 { return 0.5 })
	return s, container
}

func TestEligible(t *testing.T) {
	daily := model.RecurringRule{ID: "r", Frequency: model.FrequencyDaily, Time: "09:00"}

	tests := []struct {
		name string
		rule model.RecurringRule
		at   time.Time
		want bool
	}{
		{
			name: "daily at trigger time",
			rule: daily,
			at:   monday,
			want: true,
		},
		{
			name: "daily before trigger time",
			rule: daily,
			at:   time.Date(2025, 6, 16, 8, 59, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "daily already generated today",
			rule: func() model.RecurringRule {
				r := daily
				r.LastGenerated = model.Millis(time.Date(2025, 6, 16, 9, 5, 0, 0, time.UTC))
				return r
			}(),
			at:   time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "daily generated yesterday",
			rule: func() model.RecurringRule {
				r := daily
				r.LastGenerated = model.Millis(time.Date(2025, 6, 15, 9, 5, 0, 0, time.UTC))
				return r
			}(),
			at:   monday,
			want: true,
		},
		{
			name: "weekly on a listed weekday",
			rule: model.RecurringRule{Frequency: model.FrequencyWeekly, Time: "09:00", DaysOfWeek: []int{1, 3}},
			at:   monday, // weekday 1
			want: true,
		},
		{
			name: "weekly on an unlisted weekday",
			rule: model.RecurringRule{Frequency: model.FrequencyWeekly, Time: "09:00", DaysOfWeek: []int{0, 6}},
			at:   monday,
			want: false,
		},
		{
			name: "monthly on the matching day",
			rule: model.RecurringRule{Frequency: model.FrequencyMonthly, Time: "09:00", DayOfMonth: 16},
			at:   monday,
			want: true,
		},
		{
			name: "monthly on another day",
			rule: model.RecurringRule{Frequency: model.FrequencyMonthly, Time: "09:00", DayOfMonth: 1},
			at:   monday,
			want: false,
		},
		{
			name: "monthly day 31 in a 30-day month never fires",
			rule: model.RecurringRule{Frequency: model.FrequencyMonthly, Time: "09:00", DayOfMonth: 31},
			at:   time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "invalid clock never fires",
			rule: model.RecurringRule{Frequency: model.FrequencyDaily, Time: "bogus"},
			at:   monday,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.rule, tt.at); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name string
		freq model.Frequency
		at   time.Time
		want time.Time
	}{
		{
			name: "daily due at end of day",
			freq: model.FrequencyDaily,
			at:   monday,
			want: time.Date(2025, 6, 16, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "weekly due on upcoming Sunday",
			freq: model.FrequencyWeekly,
			at:   monday,
			want: time.Date(2025, 6, 22, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "weekly on a Sunday due the same day",
			freq: model.FrequencyWeekly,
			at:   time.Date(2025, 6, 22, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 22, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "monthly due at end of month",
			freq: model.FrequencyMonthly,
			at:   monday,
			want: time.Date(2025, 6, 30, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "monthly in February",
			freq: model.FrequencyMonthly,
			at:   time.Date(2025, 2, 10, 9, 0, 0, 0, time.UTC),
			want: time.Date(2025, 2, 28, 23, 59, 59, 999000000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DueDate(tt.freq, tt.at); !got.Equal(tt.want) {
				t.Errorf("DueDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTickGeneratesOncePerDay(t *testing.T) {
	s, container := newScheduler(model.RecurringRule{
		ID: "r1", Title: "morning stretch", SubTasks: []string{"neck", "back"},
		Frequency: model.FrequencyDaily, Time: "09:00", Color: "#fff",
	})
	s.SetNow(func() time.Time { return monday })

	generated := s.Tick()

	if len(generated) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(generated))
	}
	todo := generated[0]
	if todo.Title != "morning stretch" || !todo.IsRecurring {
		t.Errorf("unexpected todo: %+v", todo)
	}
	if len(todo.SubTasks) != 2 || todo.SubTasks[0].Text != "neck" {
		t.Errorf("subtasks not materialized: %+v", todo.SubTasks)
	}
	if todo.ZIndex != model.FrontZIndex {
		t.Errorf("expected front z-index, got %d", todo.ZIndex)
	}

	snap := container.Snapshot()
	if snap.RecurringRules[0].LastGenerated != model.Millis(monday) {
		t.Error("lastGenerated not stamped")
	}

	// Later ticks the same day are no-ops.
	s.SetNow(func() time.Time { return monday.Add(6 * time.Hour) })
	if again := s.Tick(); len(again) != 0 {
		t.Errorf("same-day tick generated %d todos", len(again))
	}

	// The next day fires again.
	s.SetNow(func() time.Time { return monday.Add(24 * time.Hour) })
	if next := s.Tick(); len(next) != 1 {
		t.Errorf("next-day tick generated %d todos", len(next))
	}
}

func TestTickWeeklyMondayRule(t *testing.T) {
	s, _ := newScheduler(model.RecurringRule{
		ID: "r1", Title: "weekly review", Frequency: model.FrequencyWeekly,
		Time: "09:00", DaysOfWeek: []int{1},
	})
	s.SetNow(func() time.Time { return monday }) // Monday 09:01

	generated := s.Tick()

	if len(generated) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(generated))
	}
	// Due at the end of that week's Sunday.
	wantDue := time.Date(2025, 6, 22, 23, 59, 59, 999000000, time.UTC)
	if generated[0].DueDate != model.Millis(wantDue) {
		t.Errorf("due date = %d, want %d (%v)", generated[0].DueDate, model.Millis(wantDue), wantDue)
	}

	if again := s.Tick(); len(again) != 0 {
		t.Errorf("repeated tick generated %d more todos", len(again))
	}
}

func TestTickWithNothingEligibleLeavesContainerUntouched(t *testing.T) {
	s, container := newScheduler(model.RecurringRule{
		ID: "r1", Frequency: model.FrequencyDaily, Time: "23:00",
	})
	s.SetNow(func() time.Time { return monday })

	rev := container.Rev()
	if generated := s.Tick(); len(generated) != 0 {
		t.Fatalf("expected nothing, got %d", len(generated))
	}
	if container.Rev() != rev {
		t.Error("idle tick mutated the container")
	}
}

func TestAddRuleFiresImmediatelyWhenPastTriggerTime(t *testing.T) {
	s, container := newScheduler()
	s.SetNow(func() time.Time { return monday })

	todo, fired := s.AddRule(model.RecurringRule{
		ID: "r1", Title: "water plant", SubTasks: []string{"water plant"},
		Frequency: model.FrequencyDaily, Time: "08:00",
	})

	if !fired {
		t.Fatal("rule created after its trigger time should fire immediately")
	}
	if todo.Title != "water plant" || !todo.IsRecurring {
		t.Errorf("unexpected todo %+v", todo)
	}
	wantDue := time.Date(2025, 6, 16, 23, 59, 59, 999000000, time.UTC)
	if todo.DueDate != model.Millis(wantDue) {
		t.Errorf("due date = %d, want today end of day", todo.DueDate)
	}

	snap := container.Snapshot()
	if len(snap.Todos) != 1 || len(snap.RecurringRules) != 1 {
		t.Fatalf("expected 1 todo and 1 rule, got %d/%d", len(snap.Todos), len(snap.RecurringRules))
	}
	if snap.RecurringRules[0].LastGenerated != model.Millis(monday) {
		t.Error("stored rule should carry the generation stamp")
	}

	// The very next tick must not duplicate today's todo.
	if generated := s.Tick(); len(generated) != 0 {
		t.Errorf("tick after immediate generation produced %d todos", len(generated))
	}
}

func TestAddRuleBeforeTriggerTimeDoesNotFire(t *testing.T) {
	s, container := newScheduler()
	s.SetNow(func() time.Time { return monday })

	_, fired := s.AddRule(model.RecurringRule{
		ID: "r1", Frequency: model.FrequencyDaily, Time: "22:00",
	})

	if fired {
		t.Fatal("rule before its trigger time must not fire")
	}
	snap := container.Snapshot()
	if len(snap.Todos) != 0 || len(snap.RecurringRules) != 1 {
		t.Errorf("expected 0 todos and 1 rule, got %d/%d", len(snap.Todos), len(snap.RecurringRules))
	}
	if snap.RecurringRules[0].LastGenerated != 0 {
		t.Error("unfired rule should have no generation stamp")
	}
}

func TestMaterializePlacesInsideViewport(t *testing.T) {
	s, _ := newScheduler()

	rule := model.RecurringRule{ID: "r", Title: "x", Frequency: model.FrequencyDaily, Time: "09:00"}
	todo := s.Materialize(rule, monday)

	if todo.X < 0 || todo.X > 1920-model.NoteWidth {
		t.Errorf("x out of viewport: %v", todo.X)
	}
	if todo.Y < 0 || todo.Y > 1080-model.NoteHeight {
		t.Errorf("y out of viewport: %v", todo.Y)
	}
	if todo.MX == nil || todo.MY == nil {
		t.Error("mobile position missing")
	}
}
