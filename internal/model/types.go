// Package model defines the application state shared with the remote store.
package model

import (
	"encoding/json"
	"time"
)

// Gameplay constants. These are part of the snapshot contract: other clients
// of the same profile compute the same countdown and stage boundaries.
const (
	// InitialSurvivalDays is the countdown granted to a fresh profile.
	InitialSurvivalDays = 3

	// PointsPerTodo is the reward for converting one completed todo.
	PointsPerTodo = 1

	// SurvivalDaysPerPoint is how far each reward point pushes the deadline.
	SurvivalDaysPerPoint = 5

	// AdoptCost is the point price of adopting a new plant.
	AdoptCost = 300
)

// Note bounding box used by every client sharing the coordinate space.
const (
	NoteWidth  = 256
	NoteHeight = 200
)

// FrontZIndex pins a freshly generated note above everything else.
const FrontZIndex = 9999

// SubTask is a single step inside a todo.
type SubTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Todo is a positioned sticky note. (X, Y) and (MX, MY) are independent
// coordinate pairs for the desktop and mobile display modes; both are kept
// so switching modes does not lose placement. MX/MY are pointers because
// "never placed on mobile" is a meaningful state.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	SubTasks    []SubTask `json:"subTasks"`
	CreatedAt   int64     `json:"createdAt"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	MX          *float64  `json:"mx,omitempty"`
	MY          *float64  `json:"my,omitempty"`
	ZIndex      int       `json:"zIndex"`
	Color       string    `json:"color"`
	IsConverted bool      `json:"isConverted"`
	IsRecurring bool      `json:"isRecurring,omitempty"`
	DueDate     int64     `json:"dueDate,omitempty"`
}

// Completable reports whether the todo is eligible for conversion:
// at least one subtask, all of them completed.
func (t Todo) Completable() bool {
	if len(t.SubTasks) == 0 {
		return false
	}
	for _, st := range t.SubTasks {
		if !st.Completed {
			return false
		}
	}
	return true
}

// Frequency is a recurrence cadence.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is one of the known cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// RecurringRule is a template plus a schedule that materializes concrete
// todos. LastGenerated (epoch ms) is the sole idempotency guard: at most one
// todo per calendar day regardless of frequency.
type RecurringRule struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	SubTasks      []string  `json:"subTasks"`
	Frequency     Frequency `json:"frequency"`
	Time          string    `json:"time"` // "HH:MM"
	DaysOfWeek    []int     `json:"daysOfWeek,omitempty"`
	DayOfMonth    int       `json:"dayOfMonth,omitempty"`
	Color         string    `json:"color"`
	LastGenerated int64     `json:"lastGenerated"`
}

// ScreenEffect is a purely decorative overlay; it round-trips through the
// snapshot for the benefit of graphical clients.
type ScreenEffect string

const (
	EffectNone      ScreenEffect = "none"
	EffectLightSnow ScreenEffect = "light-snow"
	EffectHeavySnow ScreenEffect = "heavy-snow"
	EffectLightRain ScreenEffect = "light-rain"
	EffectHeavyRain ScreenEffect = "heavy-rain"
	EffectSakura    ScreenEffect = "sakura"
)

// Valid reports whether e is a known effect.
func (e ScreenEffect) Valid() bool {
	switch e {
	case EffectNone, EffectLightSnow, EffectHeavySnow, EffectLightRain, EffectHeavyRain, EffectSakura:
		return true
	}
	return false
}

// Settings holds visual configuration. It is carried in AppState only so it
// syncs over the same channel as everything else.
type Settings struct {
	GlassEffectEnabled bool         `json:"glassEffectEnabled"`
	GlassOpacity       float64      `json:"glassOpacity"`
	CustomBackground   string       `json:"customBackground,omitempty"`
	ScreenEffect       ScreenEffect `json:"screenEffect"`
	NoteColors         []string     `json:"noteColors"`
}

// AppState is the root synchronized document, one instance per profile.
// It is pushed and pulled wholesale, never diffed.
type AppState struct {
	Todos          []Todo          `json:"todos"`
	RecurringRules []RecurringRule `json:"recurringRules"`
	Points         int             `json:"points"`
	ActivePlantID  string          `json:"activePlantId"`
	DeathTime      int64           `json:"deathTime"`
	IsPlantDead    bool            `json:"isPlantDead"`
	AdoptedPlants  []string        `json:"adoptedPlants"`
	Settings       Settings        `json:"settings"`
}

// Clone returns a deep copy of the subtask list.
func cloneSubTasks(in []SubTask) []SubTask {
	out := make([]SubTask, len(in))
	copy(out, in)
	return out
}

// Clone returns a deep copy of the todo.
func (t Todo) Clone() Todo {
	out := t
	out.SubTasks = cloneSubTasks(t.SubTasks)
	if t.MX != nil {
		mx := *t.MX
		out.MX = &mx
	}
	if t.MY != nil {
		my := *t.MY
		out.MY = &my
	}
	return out
}

// Clone returns a deep copy of the rule.
func (r RecurringRule) Clone() RecurringRule {
	out := r
	out.SubTasks = append([]string(nil), r.SubTasks...)
	out.DaysOfWeek = append([]int(nil), r.DaysOfWeek...)
	return out
}

// Clone returns a deep copy of the whole state.
func (s AppState) Clone() AppState {
	out := s
	out.Todos = make([]Todo, len(s.Todos))
	for i, t := range s.Todos {
		out.Todos[i] = t.Clone()
	}
	out.RecurringRules = make([]RecurringRule, len(s.RecurringRules))
	for i, r := range s.RecurringRules {
		out.RecurringRules[i] = r.Clone()
	}
	out.AdoptedPlants = append([]string(nil), s.AdoptedPlants...)
	out.Settings.NoteColors = append([]string(nil), s.Settings.NoteColors...)
	return out
}

// Encode serializes the state in its canonical wire form. The sync engine
// compares these bytes to decide whether a push is needed, so every encode
// of the same value must produce the same bytes; json.Marshal of a struct
// guarantees that.
func Encode(s AppState) ([]byte, error) {
	return json.Marshal(s)
}

// Millis converts a wall-clock time to the epoch-millisecond form used on
// the wire.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
