// Package recur materializes todos from recurring rules.
package recur

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/sproutdesk/sproutdesk/internal/model"
	"github.com/sproutdesk/sproutdesk/internal/state"
)

// DefaultTick is the recommended evaluation interval.
const DefaultTick = time.Minute

// Scheduler evaluates rules against wall-clock time and appends generated
// todos to the shared state, stamping lastGenerated in the same mutation so
// concurrent readers never observe one without the other.
type Scheduler struct {
	container *state.Container
	width     int
	height    int
	now       func() time.Time
	randFn    func() float64
}

// New creates a scheduler generating into the given viewport dimensions.
func New(container *state.Container, width, height int) *Scheduler {
	return &Scheduler{
		container: container,
		width:     width,
		height:    height,
		now:       time.Now,
		randFn:    rand.Float64,
	}
}

// SetNow overrides the clock (useful for testing).
func (s *Scheduler) SetNow(now func() time.Time) {
	s.now = now
}

// SetRand overrides the position randomizer (useful for testing).
func (s *Scheduler) SetRand(fn func() float64) {
	s.randFn = fn
}

// Eligible decides whether the rule should fire at t. It is a pure function
// of (rule, t):
//
//  1. Day guard: at most one generation per calendar day, regardless of
//     frequency.
//  2. Time guard: only at or after the rule's HH:MM.
//  3. Frequency predicate: weekly needs today's weekday (0=Sunday) in
//     daysOfWeek; monthly needs today's day-of-month to match. A monthly
//     rule whose dayOfMonth exceeds the current month's length simply does
//     not fire that month.
func Eligible(rule model.RecurringRule, t time.Time) bool {
	if rule.LastGenerated > 0 {
		last := time.UnixMilli(rule.LastGenerated).In(t.Location())
		if sameDay(last, t) {
			return false
		}
	}

	hour, minute, ok := model.ParseClock(rule.Time)
	if !ok {
		return false
	}
	if t.Hour() < hour || (t.Hour() == hour && t.Minute() < minute) {
		return false
	}

	switch rule.Frequency {
	case model.FrequencyDaily:
		return true
	case model.FrequencyWeekly:
		wd := int(t.Weekday())
		for _, d := range rule.DaysOfWeek {
			if d == wd {
				return true
			}
		}
		return false
	case model.FrequencyMonthly:
		return t.Day() == rule.DayOfMonth
	default:
		return false
	}
}

// DueDate computes the generated todo's due timestamp: the end of the
// current day, week (ending Sunday) or month, at 23:59:59.999 local time.
func DueDate(freq model.Frequency, t time.Time) time.Time {
	switch freq {
	case model.FrequencyWeekly:
		// Days until the upcoming Sunday; zero when t already is one.
		offset := (7 - int(t.Weekday())) % 7
		return endOfDay(t.AddDate(0, 0, offset))
	case model.FrequencyMonthly:
		firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
		return endOfDay(firstOfNext.AddDate(0, 0, -1))
	default:
		return endOfDay(t)
	}
}

// Materialize builds a fresh todo from the rule's templates. Desktop
// placement is randomized inside a padded rectangle; mobile placement is a
// fixed spot near the top; z-order is pinned to the front sentinel.
func (s *Scheduler) Materialize(rule model.RecurringRule, t time.Time) model.Todo {
	subTasks := make([]model.SubTask, 0, len(rule.SubTasks))
	for _, text := range rule.SubTasks {
		subTasks = append(subTasks, model.SubTask{
			ID:   uuid.NewString(),
			Text: text,
		})
	}

	const padding = 100
	x := s.randFn()*float64(s.width-300-padding) + padding/2
	y := s.randFn()*float64(s.height-300-padding) + padding/2
	mx := 20.0
	my := 80.0

	return model.Todo{
		ID:          uuid.NewString(),
		Title:       rule.Title,
		SubTasks:    subTasks,
		CreatedAt:   model.Millis(t),
		X:           x,
		Y:           y,
		MX:          &mx,
		MY:          &my,
		ZIndex:      model.FrontZIndex,
		Color:       rule.Color,
		IsRecurring: true,
		DueDate:     model.Millis(DueDate(rule.Frequency, t)),
	}
}

// Tick evaluates every rule once and generates the eligible ones. The todo
// append and the lastGenerated stamp happen inside a single container
// update, which also marks the local change the sync debounce keys on.
// A tick with no eligible rule leaves the container untouched, so idle
// ticks never arm the pull cooldown. It returns the generated todos.
func (s *Scheduler) Tick() []model.Todo {
	t := s.now()

	any := false
	s.container.View(func(st model.AppState) {
		for _, rule := range st.RecurringRules {
			if Eligible(rule, t) {
				any = true
				return
			}
		}
	})
	if !any {
		return nil
	}

	var generated []model.Todo
	s.container.UpdateAt(t, func(st *model.AppState) {
		for i := range st.RecurringRules {
			rule := &st.RecurringRules[i]
			if !Eligible(*rule, t) {
				continue
			}
			todo := s.Materialize(*rule, t)
			st.Todos = append(st.Todos, todo)
			rule.LastGenerated = model.Millis(t)
			generated = append(generated, todo)
		}
	})
	return generated
}

// AddRule saves a brand-new rule and immediately evaluates it against the
// current moment (lastGenerated treated as zero), so a rule created after
// its trigger time still produces today's todo without waiting for a tick.
// The rule is stored with lastGenerated already stamped when it fired.
func (s *Scheduler) AddRule(rule model.RecurringRule) (model.Todo, bool) {
	t := s.now()
	rule.LastGenerated = 0
	var (
		todo  model.Todo
		fired bool
	)
	s.container.UpdateAt(t, func(st *model.AppState) {
		if Eligible(rule, t) {
			todo = s.Materialize(rule, t)
			st.Todos = append(st.Todos, todo)
			rule.LastGenerated = model.Millis(t)
			fired = true
		}
		st.RecurringRules = append(st.RecurringRules, rule)
	})
	return todo, fired
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999*int(time.Millisecond), t.Location())
}
