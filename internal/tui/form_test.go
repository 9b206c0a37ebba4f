package tui

import (
	"testing"
	"time"

	"github.com/sproutdesk/sproutdesk/internal/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func baseState() model.AppState {
	return model.Sanitize(model.AppState{}, testNow)
}

func TestNoteFormBuild(t *testing.T) {
	f := newNoteForm()
	f.title.SetValue("  repot the fern  ")
	f.steps[0].SetValue("buy soil")
	f.addStep()
	f.steps[1].SetValue("   ") // blank steps are dropped

	st := baseState()
	todo, ok := f.build(st, 1920, 1080, testNow)

	if !ok {
		t.Fatal("expected a valid todo")
	}
	if todo.Title != "repot the fern" {
		t.Errorf("title not trimmed: %q", todo.Title)
	}
	if len(todo.SubTasks) != 1 || todo.SubTasks[0].Text != "buy soil" {
		t.Errorf("unexpected subtasks: %+v", todo.SubTasks)
	}
	if todo.ID == "" || todo.SubTasks[0].ID == "" {
		t.Error("ids not assigned")
	}
	if todo.X < 0 || todo.X > 1920-model.NoteWidth {
		t.Errorf("x out of viewport: %v", todo.X)
	}
	if todo.MX == nil || todo.MY == nil {
		t.Error("mobile position missing")
	}
	if todo.Color == "" {
		t.Error("no color picked")
	}
}

func TestNoteFormBuildRequiresTitle(t *testing.T) {
	f := newNoteForm()
	f.title.SetValue("   ")

	if _, ok := f.build(baseState(), 1920, 1080, testNow); ok {
		t.Error("blank title should be rejected")
	}
}

func TestRuleFormBuild(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(f *ruleForm)
		wantOK bool
		check  func(t *testing.T, r model.RecurringRule)
	}{
		{
			name: "daily with default clock",
			setup: func(f *ruleForm) {
				f.title.SetValue("stretch")
				f.steps.SetValue("neck, back , ")
			},
			wantOK: true,
			check: func(t *testing.T, r model.RecurringRule) {
				if r.Frequency != model.FrequencyDaily || r.Time != "09:00" {
					t.Errorf("unexpected rule: %+v", r)
				}
				if len(r.SubTasks) != 2 || r.SubTasks[1] != "back" {
					t.Errorf("steps not split: %v", r.SubTasks)
				}
			},
		},
		{
			name: "weekly with day list",
			setup: func(f *ruleForm) {
				f.title.SetValue("weekly review")
				f.frequency = model.FrequencyWeekly
				f.clock.SetValue("18:30")
				f.days.SetValue("1, 5, 9, x") // out-of-range and junk dropped
			},
			wantOK: true,
			check: func(t *testing.T, r model.RecurringRule) {
				if len(r.DaysOfWeek) != 2 || r.DaysOfWeek[0] != 1 || r.DaysOfWeek[1] != 5 {
					t.Errorf("unexpected days: %v", r.DaysOfWeek)
				}
			},
		},
		{
			name: "weekly without any valid day",
			setup: func(f *ruleForm) {
				f.title.SetValue("x")
				f.frequency = model.FrequencyWeekly
				f.days.SetValue("9, -1")
			},
			wantOK: false,
		},
		{
			name: "monthly with day",
			setup: func(f *ruleForm) {
				f.title.SetValue("pay rent")
				f.frequency = model.FrequencyMonthly
				f.dayOfMonth.SetValue("28")
			},
			wantOK: true,
			check: func(t *testing.T, r model.RecurringRule) {
				if r.DayOfMonth != 28 {
					t.Errorf("unexpected day of month: %d", r.DayOfMonth)
				}
			},
		},
		{
			name: "monthly day out of range",
			setup: func(f *ruleForm) {
				f.title.SetValue("x")
				f.frequency = model.FrequencyMonthly
				f.dayOfMonth.SetValue("32")
			},
			wantOK: false,
		},
		{
			name: "invalid clock",
			setup: func(f *ruleForm) {
				f.title.SetValue("x")
				f.clock.SetValue("25:00")
			},
			wantOK: false,
		},
		{
			name:   "missing title",
			setup:  func(f *ruleForm) {},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRuleForm()
			tt.setup(f)

			rule, ok := f.build(baseState())

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && tt.check != nil {
				tt.check(t, rule)
			}
		})
	}
}

func TestRuleFormCycleFrequency(t *testing.T) {
	f := newRuleForm()

	want := []model.Frequency{model.FrequencyWeekly, model.FrequencyMonthly, model.FrequencyDaily}
	for _, freq := range want {
		f.cycleFrequency()
		if f.frequency != freq {
			t.Fatalf("expected %q, got %q", freq, f.frequency)
		}
	}
}
