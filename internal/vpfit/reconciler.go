// Package vpfit repairs note positions that fell outside the viewport.
package vpfit

import "github.com/sproutdesk/sproutdesk/internal/model"

// Mode selects which coordinate pair is authoritative.
type Mode int

const (
	ModeDesktop Mode = iota
	ModeMobile
)

// Bounds for the two coordinate spaces. The mobile vertical range is
// narrower so repositioned notes clear the bottom toolbar and the plant.
const (
	desktopMinY = 20
	mobileMinY  = 50

	desktopBaseX, desktopBaseY = 40, 100
	desktopStepX, desktopStepY = 20, 50

	mobileBaseX, mobileBaseY = 20, 80
	mobileStepX, mobileStepY = 10, 55

	// mobileBottomInset keeps repositioned notes above the plant display.
	mobileBottomInset = 180
)

// Run checks every todo's desktop and mobile pairs against their bounds and
// repositions the invalid ones (or, when manual, every one) with a staggered
// cascade: the k-th moved note lands at base + k*step, clamped in-bounds, so
// no two repositioned notes share a point while staying visually tiled.
// The stagger counter advances once per note actually moved.
//
// Run must re-run whenever the display mode flips, since the set of valid
// coordinates changes with it. It mutates st in place and returns how many
// todos moved; the caller marks a local change iff moved > 0 or manual.
func Run(st *model.AppState, mode Mode, manual bool, width, height int) (moved int) {
	maxX := float64(width - model.NoteWidth)
	maxY := float64(height - model.NoteHeight)

	stagger := 0
	for i := range st.Todos {
		t := &st.Todos[i]
		itemChanged := false

		pcInvalid := t.X < 0 || t.X > maxX || t.Y < desktopMinY || t.Y > maxY
		if pcInvalid || manual {
			t.X = clamp(desktopBaseX+float64(stagger*desktopStepX), desktopBaseX, maxX-20)
			t.Y = clamp(desktopBaseY+float64(stagger*desktopStepY), desktopBaseY, maxY-20)
			itemChanged = true
		}

		hasMobile := t.MX != nil && t.MY != nil
		mobileInvalid := hasMobile && (*t.MX < 0 || *t.MX > maxX || *t.MY < mobileMinY || *t.MY > maxY)

		if mobileInvalid || (mode == ModeMobile && !hasMobile) || manual {
			mx := clamp(mobileBaseX+float64(stagger*mobileStepX), mobileBaseX, maxX-20)
			my := clamp(mobileBaseY+float64(stagger*mobileStepY), mobileBaseY, maxY-mobileBottomInset)
			t.MX = &mx
			t.MY = &my
			itemChanged = true
		}

		if itemChanged {
			moved++
			stagger++
		}
	}
	return moved
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
