package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/sproutdesk/sproutdesk/internal/api"
	"github.com/sproutdesk/sproutdesk/internal/garden"
	"github.com/sproutdesk/sproutdesk/internal/model"
)

// pollTickCmd schedules the next pull poll.
func (a *App) pollTickCmd() tea.Cmd {
	return tea.Tick(a.cfg.Sync.PollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// schedulerTickCmd schedules the next recurring-rule evaluation.
func (a *App) schedulerTickCmd() tea.Cmd {
	return tea.Tick(a.cfg.Sync.SchedulerTick, func(t time.Time) tea.Msg {
		return schedulerTickMsg(t)
	})
}

// survivalTickCmd schedules the next plant survival check.
func (a *App) survivalTickCmd() tea.Cmd {
	return tea.Tick(a.cfg.Sync.SurvivalTick, func(t time.Time) tea.Msg {
		return survivalTickMsg(t)
	})
}

// debounceCmd arms the push debounce window for the current revision.
// Every mutation arms a fresh window; stale windows are recognized by
// their captured revision and dropped.
func (a *App) debounceCmd() tea.Cmd {
	rev := a.container.Rev()
	return tea.Tick(a.cfg.Sync.PushDebounce, func(time.Time) tea.Msg {
		return debounceFiredMsg{rev: rev}
	})
}

// pushCmd runs a debounced push off the update loop.
func (a *App) pushCmd() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{err: a.sync.Push()}
	}
}

// pullCmd runs a poll pull off the update loop.
func (a *App) pullCmd() tea.Cmd {
	return func() tea.Msg {
		return syncDoneMsg{err: a.sync.Pull()}
	}
}

// persistCmd rewrites the local state copy with the current snapshot.
func (a *App) persistCmd() tea.Cmd {
	snap := a.container.Snapshot()
	return func() tea.Msg {
		return persistedMsg{err: a.local.Save(snap)}
	}
}

// fetchHistoryCmd loads the conversion history from the store.
func (a *App) fetchHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := a.client.GetHistory()
		return historyMsg{records: records, err: err}
	}
}

// appendHistoryCmd records a conversion in the append-only log. Failures
// are absorbed: history is best-effort and never blocks the game loop.
func (a *App) appendHistoryCmd(todo model.Todo, convertedAt time.Time) tea.Cmd {
	rec := api.HistoryRecord{Todo: todo, ConvertedAt: model.Millis(convertedAt)}
	return func() tea.Msg {
		_, _ = a.client.AppendHistory(rec)
		return nil
	}
}

// expireCmd schedules the removal of a converted note after its UI grace.
func expireCmd(id string) tea.Cmd {
	return tea.Tick(garden.ExpireGrace, func(time.Time) tea.Msg {
		return expireMsg{id: id}
	})
}

// notifyCmd sends a desktop notification.
func notifyCmd(title, body string) tea.Cmd {
	return func() tea.Msg {
		_ = beeep.Notify(title, body, "")
		return nil
	}
}

// clearStatusCmd clears the transient status message after a short delay.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}
