package garden

import (
	"errors"
	"testing"
	"time"

	"github.com/sproutdesk/sproutdesk/internal/model"
	"github.com/sproutdesk/sproutdesk/internal/state"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newEngine(st model.AppState) (*Engine, *state.Container) {
	container := state.New(model.Sanitize(st, testNow))
	return New(container), container
}

func TestConvertAwardsPointsAndExtendsDeadline(t *testing.T) {
	deadline := model.Millis(testNow.Add(24 * time.Hour))
	engine, container := newEngine(model.AppState{
		Todos: []model.Todo{
			{ID: "t1", Title: "water the plant", SubTasks: []model.SubTask{{ID: "s1", Completed: true}}},
		},
		Points:    2,
		DeathTime: deadline,
	})

	converted, ok := engine.Convert("t1", testNow)

	if !ok {
		t.Fatal("expected conversion")
	}
	if converted.Title != "water the plant" || !converted.IsConverted {
		t.Errorf("unexpected converted todo: %+v", converted)
	}

	snap := container.Snapshot()
	if snap.Points != 2+model.PointsPerTodo {
		t.Errorf("expected %d points, got %d", 2+model.PointsPerTodo, snap.Points)
	}
	wantExtra := int64(model.PointsPerTodo*model.SurvivalDaysPerPoint) * 24 * int64(time.Hour/time.Millisecond)
	if snap.DeathTime != deadline+wantExtra {
		t.Errorf("expected deadline %d, got %d", deadline+wantExtra, snap.DeathTime)
	}
}

func TestConvertIdempotent(t *testing.T) {
	engine, container := newEngine(model.AppState{
		Todos: []model.Todo{{ID: "t1", SubTasks: []model.SubTask{{Completed: true}}}},
	})

	if _, ok := engine.Convert("t1", testNow); !ok {
		t.Fatal("first conversion should succeed")
	}
	before := container.Snapshot()

	if _, ok := engine.Convert("t1", testNow); ok {
		t.Error("second conversion should be a no-op")
	}
	after := container.Snapshot()
	if after.Points != before.Points || after.DeathTime != before.DeathTime {
		t.Error("repeated conversion mutated points or deadline")
	}
}

func TestConvertUnknownID(t *testing.T) {
	engine, _ := newEngine(model.AppState{})
	if _, ok := engine.Convert("missing", testNow); ok {
		t.Error("conversion of unknown id should be a no-op")
	}
}

func TestConvertRevivesFromNow(t *testing.T) {
	// The plant died long ago; revival must count from now, not from the
	// stale deadline.
	staleDeadline := model.Millis(testNow.Add(-30 * 24 * time.Hour))
	engine, container := newEngine(model.AppState{
		Todos:       []model.Todo{{ID: "t1", SubTasks: []model.SubTask{{Completed: true}}}},
		DeathTime:   staleDeadline,
		IsPlantDead: true,
	})

	if _, ok := engine.Convert("t1", testNow); !ok {
		t.Fatal("expected conversion")
	}

	snap := container.Snapshot()
	if snap.IsPlantDead {
		t.Error("plant should be revived")
	}
	wantExtra := int64(model.PointsPerTodo*model.SurvivalDaysPerPoint) * 24 * int64(time.Hour/time.Millisecond)
	want := model.Millis(testNow) + wantExtra
	if snap.DeathTime != want {
		t.Errorf("expected deadline %d (now + reward), got %d", want, snap.DeathTime)
	}
}

func TestExpire(t *testing.T) {
	engine, container := newEngine(model.AppState{
		Todos: []model.Todo{
			{ID: "done", IsConverted: true},
			{ID: "open"},
		},
	})

	if !engine.Expire("done") {
		t.Error("expected converted todo to be removed")
	}
	if engine.Expire("done") {
		t.Error("second expire should be a no-op")
	}
	if engine.Expire("open") {
		t.Error("unconverted todo must not be removed")
	}

	snap := container.Snapshot()
	if len(snap.Todos) != 1 || snap.Todos[0].ID != "open" {
		t.Errorf("unexpected remaining todos: %+v", snap.Todos)
	}
}

func TestCheckSurvival(t *testing.T) {
	deadline := model.Millis(testNow.Add(-time.Minute))
	engine, container := newEngine(model.AppState{
		Points:    12,
		DeathTime: deadline,
	})

	if !engine.CheckSurvival(testNow) {
		t.Fatal("expected the plant to die")
	}
	snap := container.Snapshot()
	if !snap.IsPlantDead || snap.Points != 0 {
		t.Errorf("expected dead plant with 0 points, got dead=%v points=%d", snap.IsPlantDead, snap.Points)
	}

	// Death is one-way: a second check reports nothing new.
	if engine.CheckSurvival(testNow) {
		t.Error("second check should not report a fresh death")
	}
}

func TestCheckSurvivalBeforeDeadline(t *testing.T) {
	engine, container := newEngine(model.AppState{
		DeathTime: model.Millis(testNow.Add(time.Hour)),
	})

	rev := container.Rev()
	if engine.CheckSurvival(testNow) {
		t.Error("plant died before its deadline")
	}
	if container.Rev() != rev {
		t.Error("an idle survival check must not mutate the container")
	}
}

func TestAdopt(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		plantID string
		wantErr error
	}{
		{name: "enough points", points: model.AdoptCost, plantID: "cactus", wantErr: nil},
		{name: "not enough points", points: model.AdoptCost - 1, plantID: "cactus", wantErr: ErrInsufficientPoints},
		{name: "unknown plant", points: 1000, plantID: "triffid", wantErr: ErrUnknownPlant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, container := newEngine(model.AppState{Points: tt.points})

			err := engine.Adopt(tt.plantID, testNow)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			snap := container.Snapshot()
			if snap.ActivePlantID != tt.plantID {
				t.Errorf("expected active plant %q, got %q", tt.plantID, snap.ActivePlantID)
			}
			if snap.Points != tt.points-model.AdoptCost {
				t.Errorf("expected %d points left, got %d", tt.points-model.AdoptCost, snap.Points)
			}
		})
	}
}

func TestAdoptOwnedPlantIsFree(t *testing.T) {
	engine, container := newEngine(model.AppState{
		Points:        5,
		AdoptedPlants: []string{model.DefaultPlantID, "cactus"},
		ActivePlantID: model.DefaultPlantID,
	})

	if err := engine.Adopt("cactus", testNow); err != nil {
		t.Fatalf("activating an owned plant should be free: %v", err)
	}
	snap := container.Snapshot()
	if snap.ActivePlantID != "cactus" || snap.Points != 5 {
		t.Errorf("unexpected state: plant=%q points=%d", snap.ActivePlantID, snap.Points)
	}
}
