// Package garden applies task-completion effects to the survival game.
package garden

import (
	"errors"
	"time"

	"github.com/sproutdesk/sproutdesk/internal/model"
	"github.com/sproutdesk/sproutdesk/internal/state"
)

// ExpireGrace is how long a converted note stays in the active list so the
// UI can animate its disappearance before Expire removes it.
const ExpireGrace = 1500 * time.Millisecond

// DefaultSurvivalTick is the recommended interval for CheckSurvival.
const DefaultSurvivalTick = 10 * time.Second

var (
	// ErrNotCompletable is returned when a todo with open subtasks is converted.
	ErrNotCompletable = errors.New("garden: todo is not completable")

	// ErrInsufficientPoints is returned when adoption costs more than the balance.
	ErrInsufficientPoints = errors.New("garden: not enough points to adopt")

	// ErrUnknownPlant is returned for a plant id outside the catalog.
	ErrUnknownPlant = errors.New("garden: unknown plant")
)

// Engine mutates the shared state in response to conversions, survival
// checks and plant adoption.
type Engine struct {
	container *state.Container
}

// New creates an engine over the shared container.
func New(container *state.Container) *Engine {
	return &Engine{container: container}
}

// Convert marks the todo consumed, awards points and extends the survival
// countdown. It is idempotent per id: a missing or already-converted todo is
// a no-op. Reviving a dead plant restarts the countdown from now rather
// than compounding on the stale deadline. The converted todo is returned
// for the history append; ok is false when nothing happened.
func (e *Engine) Convert(id string, now time.Time) (converted model.Todo, ok bool) {
	e.container.UpdateAt(now, func(st *model.AppState) {
		for i := range st.Todos {
			t := &st.Todos[i]
			if t.ID != id || t.IsConverted {
				continue
			}
			t.IsConverted = true

			st.Points += model.PointsPerTodo
			extra := int64(model.PointsPerTodo*model.SurvivalDaysPerPoint) * 24 * int64(time.Hour/time.Millisecond)
			base := st.DeathTime
			if st.IsPlantDead {
				base = model.Millis(now)
			}
			st.DeathTime = base + extra
			st.IsPlantDead = false

			converted = t.Clone()
			ok = true
			return
		}
	})
	return converted, ok
}

// Expire removes a converted todo from the active list once its UI grace
// delay has elapsed. Idempotent: an unknown id or a not-yet-converted todo
// is left alone.
func (e *Engine) Expire(id string) (removed bool) {
	e.container.Update(func(st *model.AppState) {
		for i, t := range st.Todos {
			if t.ID == id && t.IsConverted {
				st.Todos = append(st.Todos[:i], st.Todos[i+1:]...)
				removed = true
				return
			}
		}
	})
	return removed
}

// CheckSurvival flips the plant to dead once the countdown has passed and
// resets points. The transition is one-way; only a Convert revives.
// Returns true when the plant died on this check.
func (e *Engine) CheckSurvival(now time.Time) (died bool) {
	expired := false
	e.container.View(func(st model.AppState) {
		expired = model.Millis(now) > st.DeathTime && !st.IsPlantDead
	})
	if !expired {
		return false
	}
	e.container.UpdateAt(now, func(st *model.AppState) {
		if model.Millis(now) > st.DeathTime && !st.IsPlantDead {
			st.IsPlantDead = true
			st.Points = 0
			died = true
		}
	})
	return died
}

// Adopt activates the plant, buying it first when it is not yet owned.
func (e *Engine) Adopt(plantID string, now time.Time) error {
	if _, ok := model.PlantByID(plantID); !ok {
		return ErrUnknownPlant
	}
	var err error
	e.container.UpdateAt(now, func(st *model.AppState) {
		for _, owned := range st.AdoptedPlants {
			if owned == plantID {
				st.ActivePlantID = plantID
				return
			}
		}
		if st.Points < model.AdoptCost {
			err = ErrInsufficientPoints
			return
		}
		st.Points -= model.AdoptCost
		st.AdoptedPlants = append(st.AdoptedPlants, plantID)
		st.ActivePlantID = plantID
	})
	return err
}
