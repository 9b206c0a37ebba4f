package model

import (
	"encoding/json"
	"time"
)

// Decode is the trust boundary for externally sourced state (remote
// snapshot, local persisted copy). It never fails: unknown shapes, missing
// fields and mistyped fields all degrade to defaults, field by field. The
// result is always a fully populated AppState.
func Decode(data []byte, now time.Time) AppState {
	var raw map[string]json.RawMessage
	// On failure raw stays nil and every lookup below misses.
	_ = json.Unmarshal(data, &raw)

	var st AppState
	decodeField(raw["todos"], &st.Todos)
	decodeField(raw["recurringRules"], &st.RecurringRules)
	decodeField(raw["points"], &st.Points)
	decodeField(raw["activePlantId"], &st.ActivePlantID)
	decodeField(raw["deathTime"], &st.DeathTime)
	decodeField(raw["isPlantDead"], &st.IsPlantDead)
	decodeField(raw["adoptedPlants"], &st.AdoptedPlants)
	if len(raw["settings"]) == 0 {
		st.Settings = DefaultSettings()
	} else {
		decodeField(raw["settings"], &st.Settings)
	}
	return Sanitize(st, now)
}

// decodeField unmarshals one field, leaving the target at its zero value on
// any mismatch.
func decodeField(raw json.RawMessage, dst any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// Sanitize normalizes a decoded state into a fully populated one. It is
// total and idempotent: Sanitize(Sanitize(x), now) == Sanitize(x, now).
// Every component past this boundary may assume the invariants it enforces.
func Sanitize(st AppState, now time.Time) AppState {
	if st.Todos == nil {
		st.Todos = []Todo{}
	}
	for i := range st.Todos {
		if st.Todos[i].SubTasks == nil {
			st.Todos[i].SubTasks = []SubTask{}
		}
	}
	if st.RecurringRules == nil {
		st.RecurringRules = []RecurringRule{}
	}
	for i := range st.RecurringRules {
		r := &st.RecurringRules[i]
		if r.SubTasks == nil {
			r.SubTasks = []string{}
		}
		if !r.Frequency.Valid() {
			r.Frequency = FrequencyDaily
		}
		if _, _, ok := ParseClock(r.Time); !ok {
			r.Time = "09:00"
		}
	}
	if st.Points < 0 {
		st.Points = 0
	}
	if _, ok := PlantByID(st.ActivePlantID); !ok {
		st.ActivePlantID = DefaultPlantID
	}
	if st.DeathTime <= 0 {
		st.DeathTime = Millis(now.Add(InitialSurvivalDays * 24 * time.Hour))
	}
	if len(st.AdoptedPlants) == 0 {
		st.AdoptedPlants = []string{DefaultPlantID}
	}
	st.Settings = sanitizeSettings(st.Settings)
	return st
}

// DefaultSettings is the visual configuration of a fresh profile.
func DefaultSettings() Settings {
	return Settings{
		GlassEffectEnabled: true,
		GlassOpacity:       0.6,
		ScreenEffect:       EffectNone,
		NoteColors:         append([]string(nil), DefaultNoteColors...),
	}
}

func sanitizeSettings(s Settings) Settings {
	if s.GlassOpacity <= 0 || s.GlassOpacity > 1 {
		s.GlassOpacity = 0.6
	}
	if !s.ScreenEffect.Valid() {
		s.ScreenEffect = EffectNone
	}
	if len(s.NoteColors) == 0 {
		s.NoteColors = append([]string(nil), DefaultNoteColors...)
	}
	return s
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
