package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sproutdesk/sproutdesk/internal/model"
	"github.com/sproutdesk/sproutdesk/internal/syncer"
	"github.com/sproutdesk/sproutdesk/internal/vpfit"
)

// View renders the current screen.
func (a *App) View() string {
	var body string
	switch {
	case a.formKind == formNote:
		body = a.viewNoteForm()
	case a.formKind == formRule:
		body = a.viewRuleForm()
	default:
		switch a.currentView {
		case ViewBoard:
			body = a.viewBoard()
		case ViewRules:
			body = a.viewRules()
		case ViewHistory:
			body = a.viewHistory()
		case ViewStore:
			body = a.viewStore()
		case ViewHelp:
			body = a.viewHelp()
		}
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		a.viewHeader(),
		body,
		a.viewStatusBar(),
	))
}

// viewHeader renders the tab line and the plant summary.
func (a *App) viewHeader() string {
	snap := a.container.Snapshot()

	tabs := []struct {
		view  View
		label string
	}{
		{ViewBoard, "[1] Board"},
		{ViewRules, "[2] Rules"},
		{ViewHistory, "[3] History"},
		{ViewStore, "[4] Greenhouse"},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.view == a.currentView {
			parts = append(parts, titleStyle.Render(t.label))
		} else {
			parts = append(parts, subtitleStyle.Render(t.label))
		}
	}

	plant, _ := model.PlantByID(snap.ActivePlantID)
	stage := model.StageFor(snap.Points)
	var life string
	if snap.IsPlantDead {
		life = deadStyle.Render("wilted")
	} else {
		remaining := time.Until(time.UnixMilli(snap.DeathTime))
		life = aliveStyle.Render(formatCountdown(remaining))
	}
	summary := fmt.Sprintf("%s (%s) · %d pts · %s", plant.Name, stage, snap.Points, life)

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(parts, "  "),
		statusBarStyle.Render(summary),
		"",
	)
}

// viewBoard renders the sticky notes as a card list in z-order.
func (a *App) viewBoard() string {
	todos := a.boardTodos()
	if len(todos) == 0 {
		return subtitleStyle.Render("No notes yet. Press 'a' to plant one.")
	}
	if a.noteCursor >= len(todos) {
		a.noteCursor = len(todos) - 1
	}

	now := time.Now()
	cards := make([]string, 0, len(todos))
	for i, t := range todos {
		cards = append(cards, a.renderNote(t, i == a.noteCursor, now))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// renderNote renders one sticky note card.
func (a *App) renderNote(t model.Todo, selected bool, now time.Time) string {
	width := a.width - 8
	if width < 24 {
		width = 24
	}
	if width > 64 {
		width = 64
	}

	title := runewidth.Truncate(t.Title, width, "…")
	var badges []string
	if t.IsRecurring {
		badges = append(badges, recurringBadge.Render("↻"))
	}
	if t.DueDate > 0 && now.After(time.UnixMilli(t.DueDate)) && !t.IsConverted {
		badges = append(badges, overdueStyle.Render("overdue"))
	}
	if t.IsConverted {
		badges = append(badges, aliveStyle.Render("converted"))
	}
	head := title
	if len(badges) > 0 {
		head += " " + strings.Join(badges, " ")
	}

	lines := []string{head}
	for j, st := range t.SubTasks {
		box := "[ ]"
		text := runewidth.Truncate(st.Text, width-6, "…")
		if st.Completed {
			box = "[x]"
			text = subTaskDone.Render(text)
		}
		cursor := "  "
		if selected && j == a.stepCursor {
			cursor = titleStyle.Render("› ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", cursor, box, text))
	}

	card := strings.Join(lines, "\n")
	if selected {
		return noteSelectedStyle.Render(card)
	}
	return noteStyle.Render(card)
}

// viewRules renders the recurring rule list.
func (a *App) viewRules() string {
	rules := a.container.Snapshot().RecurringRules
	if len(rules) == 0 {
		return subtitleStyle.Render("No recurring rules. Press 'A' to add one.")
	}
	if a.ruleCursor >= len(rules) {
		a.ruleCursor = len(rules) - 1
	}

	lines := make([]string, 0, len(rules))
	for i, r := range rules {
		cursor := "  "
		if i == a.ruleCursor {
			cursor = titleStyle.Render("› ")
		}
		line := fmt.Sprintf("%s%s  %s @ %s%s", cursor,
			runewidth.Truncate(r.Title, 40, "…"), r.Frequency, r.Time, describeCadence(r))
		if r.LastGenerated > 0 {
			line += statusBarStyle.Render("  last " + time.UnixMilli(r.LastGenerated).Format("Jan 2"))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// describeCadence spells out the weekly/monthly extras.
func describeCadence(r model.RecurringRule) string {
	switch r.Frequency {
	case model.FrequencyWeekly:
		names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		days := make([]string, 0, len(r.DaysOfWeek))
		for _, d := range r.DaysOfWeek {
			if d >= 0 && d < len(names) {
				days = append(days, names[d])
			}
		}
		return " on " + strings.Join(days, ",")
	case model.FrequencyMonthly:
		return fmt.Sprintf(" on day %d", r.DayOfMonth)
	}
	return ""
}

// viewHistory renders the conversion log, newest first.
func (a *App) viewHistory() string {
	var header string
	if a.histSearching || a.histFilter.Value() != "" {
		header = a.histFilter.View() + "\n"
	}

	records := a.filteredHistory()
	if len(records) == 0 {
		if a.histFilter.Value() != "" {
			return header + subtitleStyle.Render("No matches.")
		}
		return subtitleStyle.Render("No conversions yet. Press 'r' to refresh.")
	}
	if a.histCursor >= len(records) {
		a.histCursor = len(records) - 1
	}

	lines := make([]string, 0, len(records))
	for i, rec := range records {
		cursor := "  "
		if i == a.histCursor {
			cursor = titleStyle.Render("› ")
		}
		when := time.UnixMilli(rec.ConvertedAt).Format("2006-01-02 15:04")
		lines = append(lines, fmt.Sprintf("%s%s  %s", cursor, when,
			runewidth.Truncate(rec.Title, 50, "…")))
	}
	return header + strings.Join(lines, "\n")
}

// viewStore renders the greenhouse catalog.
func (a *App) viewStore() string {
	snap := a.container.Snapshot()
	owned := make(map[string]bool, len(snap.AdoptedPlants))
	for _, id := range snap.AdoptedPlants {
		owned[id] = true
	}

	lines := make([]string, 0, len(model.Plants))
	for i, p := range model.Plants {
		cursor := "  "
		if i == a.shopCursor {
			cursor = titleStyle.Render("› ")
		}
		var tag string
		switch {
		case p.ID == snap.ActivePlantID:
			tag = aliveStyle.Render("growing")
		case owned[p.ID]:
			tag = subtitleStyle.Render("owned")
		default:
			tag = statusBarStyle.Render(fmt.Sprintf("%d pts", model.AdoptCost))
		}
		lines = append(lines, fmt.Sprintf("%s%-18s %s", cursor, p.Name, tag))
		if i == a.shopCursor {
			lines = append(lines, helpStyle.Render("    "+p.Description))
		}
	}
	return strings.Join(lines, "\n")
}

// viewHelp lists the key bindings.
func (a *App) viewHelp() string {
	km := a.keymap
	rows := [][2]string{
		{km.Up.Key + "/" + km.Down.Key, "move"},
		{"h/l", "select step"},
		{km.ToggleStep.Key, km.ToggleStep.Help},
		{km.Convert.Key, "convert finished note"},
		{km.AddNote.Key, km.AddNote.Help},
		{km.AddRule.Key, km.AddRule.Help},
		{km.DeleteNote.Key, km.DeleteNote.Help},
		{km.Yank.Key, km.Yank.Help},
		{km.Organize.Key, "tidy note positions"},
		{km.ModeFlip.Key, km.ModeFlip.Help},
		{"/", "search history"},
		{"r", "refresh history"},
		{"1-4", "switch view"},
		{km.Quit.Key, km.Quit.Help},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		key := r[0]
		if key == " " {
			key = "space"
		}
		lines = append(lines, fmt.Sprintf("  %-8s %s", key, r[1]))
	}
	return titleStyle.Render("Keys") + "\n" + strings.Join(lines, "\n")
}

// viewNoteForm renders the new-note form.
func (a *App) viewNoteForm() string {
	f := a.noteForm
	lines := []string{
		titleStyle.Render("New note"),
		f.title.View(),
	}
	for i := range f.steps {
		lines = append(lines, f.steps[i].View())
	}
	lines = append(lines, helpStyle.Render("enter save · tab next · ctrl+a add step · esc cancel"))
	return strings.Join(lines, "\n")
}

// viewRuleForm renders the new-rule form.
func (a *App) viewRuleForm() string {
	f := a.ruleForm
	lines := []string{
		titleStyle.Render("New recurring rule — " + string(f.frequency)),
		f.title.View(),
		f.steps.View(),
		f.clock.View(),
	}
	switch f.frequency {
	case model.FrequencyWeekly:
		lines = append(lines, f.days.View())
	case model.FrequencyMonthly:
		lines = append(lines, f.dayOfMonth.View())
	}
	lines = append(lines, helpStyle.Render("enter save · tab next · ctrl+f cadence · esc cancel"))
	return strings.Join(lines, "\n")
}

// viewStatusBar renders sync status, mode and transient messages.
func (a *App) viewStatusBar() string {
	var sync string
	switch a.sync.Status() {
	case syncer.StatusSyncing:
		sync = a.spinner.View() + " syncing"
	case syncer.StatusSynced:
		sync = aliveStyle.Render("✓ synced")
	case syncer.StatusError:
		sync = overdueStyle.Render("✗ sync failed")
	default:
		sync = "idle"
	}

	mode := "desktop"
	if a.mode == vpfit.ModeMobile {
		mode = "mobile"
	}

	parts := []string{sync, mode}
	if a.statusMsg != "" {
		parts = append(parts, a.statusMsg)
	}
	if a.err != nil {
		parts = append(parts, overdueStyle.Render(a.err.Error()))
	}
	parts = append(parts, helpStyle.Render("? help"))

	return "\n" + statusBarStyle.Render(strings.Join(parts, " · "))
}

// formatCountdown renders a duration as "2d 5h" or "3h 12m".
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
