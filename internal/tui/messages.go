package tui

import (
	"time"

	"github.com/sproutdesk/sproutdesk/internal/api"
)

// pollTickMsg fires on the pull polling interval.
type pollTickMsg time.Time

// debounceFiredMsg fires when a push debounce window elapses. rev is the
// container revision captured when the window was armed: the push only
// happens if no further mutation restarted the window since.
type debounceFiredMsg struct {
	rev uint64
}

// schedulerTickMsg fires on the recurring-rule evaluation interval.
type schedulerTickMsg time.Time

// survivalTickMsg fires on the plant survival check interval.
type survivalTickMsg time.Time

// expireMsg fires when a converted note's UI grace delay has elapsed.
type expireMsg struct {
	id string
}

// syncDoneMsg reports the outcome of a push or pull command.
type syncDoneMsg struct {
	err error
}

// historyMsg carries the fetched conversion history.
type historyMsg struct {
	records []api.HistoryRecord
	err     error
}

// persistedMsg reports the outcome of rewriting the local state file.
type persistedMsg struct {
	err error
}

// statusClearMsg clears a transient status line message.
type statusClearMsg struct{}
