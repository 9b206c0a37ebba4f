package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sproutdesk/sproutdesk/internal/api"
	"github.com/sproutdesk/sproutdesk/internal/config"
	"github.com/sproutdesk/sproutdesk/internal/garden"
	"github.com/sproutdesk/sproutdesk/internal/model"
	"github.com/sproutdesk/sproutdesk/internal/recur"
	"github.com/sproutdesk/sproutdesk/internal/state"
	"github.com/sproutdesk/sproutdesk/internal/store"
	"github.com/sproutdesk/sproutdesk/internal/syncer"
	"github.com/sproutdesk/sproutdesk/internal/vpfit"
)

// View represents the current view/screen.
type View int

const (
	ViewBoard View = iota
	ViewRules
	ViewHistory
	ViewStore
	ViewHelp
)

// App is the main Bubble Tea model for the application.
type App struct {
	// Dependencies
	cfg       *config.Config
	client    *api.Client
	container *state.Container
	local     *store.Store
	sync      *syncer.Engine
	sched     *recur.Scheduler
	garden    *garden.Engine

	// View state
	currentView  View
	previousView View
	mode         vpfit.Mode

	// Cursors
	noteCursor int
	stepCursor int
	ruleCursor int
	histCursor int
	shopCursor int

	// Data caches for rendering
	history       []api.HistoryRecord
	histFilter    textinput.Model
	histSearching bool

	// UI state
	width     int
	height    int
	statusMsg string
	err       error

	// Components
	spinner spinner.Model
	keymap  Keymap

	// Form state (for add note / add rule)
	formKind formKind
	noteForm *noteForm
	ruleForm *ruleForm
}

// NewApp wires the engines around the shared container.
func NewApp(cfg *config.Config, client *api.Client, container *state.Container, local *store.Store) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	km := DefaultKeymap()
	if !cfg.UI.VimMode {
		km = ArrowKeymap()
	}

	filter := textinput.New()
	filter.Placeholder = "Search history..."
	filter.CharLimit = 80

	return &App{
		cfg:        cfg,
		client:     client,
		container:  container,
		local:      local,
		sync:       syncer.New(client, container, local, cfg.Sync.PullCooldown),
		sched:      recur.New(container, cfg.UI.ViewportWidth, cfg.UI.ViewportHeight),
		garden:     garden.New(container),
		spinner:    sp,
		keymap:     km,
		histFilter: filter,
	}
}

// Init starts the timer chains: an immediate pull, then the polling,
// scheduler and survival loops. Every chain re-arms itself from its own
// message, so all of them die with the program.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.pullCmd(),
		a.pollTickCmd(),
		a.schedulerTickCmd(),
		a.survivalTickCmd(),
		a.spinner.Tick,
	)
}

// Update is the single serialized mutation point: every timer, key and
// network completion lands here one at a time.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case pollTickMsg:
		return a, tea.Batch(a.pullCmd(), a.pollTickCmd())

	case debounceFiredMsg:
		// Only the window armed by the latest mutation pushes. A stale
		// window re-arms rather than dying: a silent rev bump (z-order
		// focus) carries no debounce of its own, so dropping the window
		// here would leave the preceding real edit unpushed until the
		// next poll pulled it back. A spurious extra fire is harmless,
		// the push skips when the bytes are already synced.
		if msg.rev == a.container.Rev() {
			return a, a.pushCmd()
		}
		return a, a.debounceCmd()

	case schedulerTickMsg:
		cmds := []tea.Cmd{a.schedulerTickCmd()}
		if generated := a.sched.Tick(); len(generated) > 0 {
			for _, todo := range generated {
				cmds = append(cmds, notifyCmd("Sproutdesk", "New task: "+todo.Title))
			}
			cmds = append(cmds, a.persistCmd(), a.debounceCmd())
		}
		return a, tea.Batch(cmds...)

	case survivalTickMsg:
		cmds := []tea.Cmd{a.survivalTickCmd()}
		if a.garden.CheckSurvival(time.Now()) {
			cmds = append(cmds,
				notifyCmd("Sproutdesk", "Your plant wilted. Complete a task to revive it."),
				a.persistCmd(), a.debounceCmd())
		}
		return a, tea.Batch(cmds...)

	case expireMsg:
		if a.garden.Expire(msg.id) {
			a.clampCursors()
			return a, tea.Batch(a.persistCmd(), a.debounceCmd())
		}
		return a, nil

	case syncDoneMsg:
		a.err = msg.err
		return a, nil

	case historyMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.history = msg.records
		sort.Slice(a.history, func(i, j int) bool {
			return a.history[i].ConvertedAt > a.history[j].ConvertedAt
		})
		return a, nil

	case persistedMsg:
		if msg.err != nil {
			a.err = msg.err
		}
		return a, nil

	case statusClearMsg:
		a.statusMsg = ""
		return a, nil

	case tea.KeyMsg:
		if a.formKind != formNone {
			return a.updateForm(msg)
		}
		if a.histSearching {
			return a.updateHistorySearch(msg)
		}
		return a.updateKeys(msg)
	}

	return a, nil
}

// updateKeys handles global and view-local key presses.
func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := a.keymap
	switch msg.String() {
	case "ctrl+c", km.Quit.Key:
		return a, tea.Quit

	case km.Help.Key:
		if a.currentView == ViewHelp {
			a.currentView = a.previousView
		} else {
			a.previousView = a.currentView
			a.currentView = ViewHelp
		}
		return a, nil

	case km.Board.Key:
		a.currentView = ViewBoard
		return a, nil
	case km.Rules.Key:
		a.currentView = ViewRules
		return a, nil
	case km.History.Key:
		a.currentView = ViewHistory
		return a, a.fetchHistoryCmd()
	case km.Store.Key:
		a.currentView = ViewStore
		return a, nil

	case km.AddNote.Key:
		a.formKind = formNote
		a.noteForm = newNoteForm()
		return a, nil
	case km.AddRule.Key:
		a.formKind = formRule
		a.ruleForm = newRuleForm()
		return a, nil

	case km.Organize.Key:
		return a, a.organize(true)

	case km.ModeFlip.Key:
		if a.mode == vpfit.ModeDesktop {
			a.mode = vpfit.ModeMobile
		} else {
			a.mode = vpfit.ModeDesktop
		}
		// The valid coordinate set changed with the mode.
		return a, a.organize(false)
	}

	switch a.currentView {
	case ViewBoard:
		return a.updateBoardKeys(msg)
	case ViewRules:
		return a.updateRuleKeys(msg)
	case ViewHistory:
		return a.updateHistoryKeys(msg)
	case ViewStore:
		return a.updateStoreKeys(msg)
	}
	return a, nil
}

// updateBoardKeys drives note selection, step toggling and conversion.
func (a *App) updateBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := a.keymap
	todos := a.boardTodos()

	switch msg.String() {
	case km.Down.Key:
		if a.noteCursor < len(todos)-1 {
			a.noteCursor++
			a.stepCursor = 0
			a.focusSelected(todos)
		}
	case km.Up.Key:
		if a.noteCursor > 0 {
			a.noteCursor--
			a.stepCursor = 0
			a.focusSelected(todos)
		}
	case km.Top.Key:
		a.noteCursor = 0
		a.stepCursor = 0
	case km.Bottom.Key:
		if len(todos) > 0 {
			a.noteCursor = len(todos) - 1
		}
		a.stepCursor = 0

	case "l", "right":
		if t, ok := a.selectedTodo(todos); ok && a.stepCursor < len(t.SubTasks)-1 {
			a.stepCursor++
		}
	case "h", "left":
		if a.stepCursor > 0 {
			a.stepCursor--
		}

	case km.ToggleStep.Key:
		if t, ok := a.selectedTodo(todos); ok && len(t.SubTasks) > 0 {
			id, step := t.ID, a.stepCursor
			a.container.Update(func(st *model.AppState) {
				for i := range st.Todos {
					if st.Todos[i].ID == id && step < len(st.Todos[i].SubTasks) {
						st.Todos[i].SubTasks[step].Completed = !st.Todos[i].SubTasks[step].Completed
					}
				}
			})
			return a, tea.Batch(a.persistCmd(), a.debounceCmd())
		}

	case km.Convert.Key:
		if t, ok := a.selectedTodo(todos); ok {
			if !t.Completable() {
				a.statusMsg = "finish every step first"
				return a, clearStatusCmd()
			}
			now := time.Now()
			converted, ok := a.garden.Convert(t.ID, now)
			if !ok {
				return a, nil
			}
			a.statusMsg = "converted, +1 nutrient"
			return a, tea.Batch(
				a.appendHistoryCmd(converted, now),
				expireCmd(converted.ID),
				a.persistCmd(),
				a.debounceCmd(),
				clearStatusCmd(),
			)
		}

	case km.DeleteNote.Key:
		if t, ok := a.selectedTodo(todos); ok {
			id := t.ID
			a.container.Update(func(st *model.AppState) {
				for i := range st.Todos {
					if st.Todos[i].ID == id {
						st.Todos = append(st.Todos[:i], st.Todos[i+1:]...)
						return
					}
				}
			})
			a.clampCursors()
			return a, tea.Batch(a.persistCmd(), a.debounceCmd())
		}

	case km.Yank.Key:
		if t, ok := a.selectedTodo(todos); ok {
			if err := clipboard.WriteAll(t.Title); err == nil {
				a.statusMsg = "yanked title"
				return a, clearStatusCmd()
			}
		}
	}
	return a, nil
}

// updateRuleKeys drives the recurring-rule list.
func (a *App) updateRuleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := a.keymap
	rules := a.container.Snapshot().RecurringRules

	switch msg.String() {
	case km.Down.Key:
		if a.ruleCursor < len(rules)-1 {
			a.ruleCursor++
		}
	case km.Up.Key:
		if a.ruleCursor > 0 {
			a.ruleCursor--
		}
	case km.DeleteNote.Key:
		if a.ruleCursor < len(rules) {
			id := rules[a.ruleCursor].ID
			a.container.Update(func(st *model.AppState) {
				for i := range st.RecurringRules {
					if st.RecurringRules[i].ID == id {
						st.RecurringRules = append(st.RecurringRules[:i], st.RecurringRules[i+1:]...)
						return
					}
				}
			})
			a.clampCursors()
			return a, tea.Batch(a.persistCmd(), a.debounceCmd())
		}
	}
	return a, nil
}

// updateHistoryKeys scrolls and filters the conversion history.
func (a *App) updateHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := a.keymap
	records := a.filteredHistory()
	switch msg.String() {
	case km.Down.Key:
		if a.histCursor < len(records)-1 {
			a.histCursor++
		}
	case km.Up.Key:
		if a.histCursor > 0 {
			a.histCursor--
		}
	case "/":
		a.histSearching = true
		a.histFilter.Focus()
	case "esc":
		a.histFilter.SetValue("")
		a.histCursor = 0
	case "r":
		return a, a.fetchHistoryCmd()
	}
	return a, nil
}

// updateHistorySearch routes keys into the history filter input.
func (a *App) updateHistorySearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.histSearching = false
		a.histFilter.Blur()
		a.histFilter.SetValue("")
		a.histCursor = 0
		return a, nil
	case "enter":
		a.histSearching = false
		a.histFilter.Blur()
		a.histCursor = 0
		return a, nil
	}
	var cmd tea.Cmd
	a.histFilter, cmd = a.histFilter.Update(msg)
	a.histCursor = 0
	return a, cmd
}

// filteredHistory applies the case-insensitive title filter.
func (a *App) filteredHistory() []api.HistoryRecord {
	query := strings.ToLower(strings.TrimSpace(a.histFilter.Value()))
	if query == "" {
		return a.history
	}
	var out []api.HistoryRecord
	for _, rec := range a.history {
		if strings.Contains(strings.ToLower(rec.Title), query) {
			out = append(out, rec)
		}
	}
	return out
}

// updateStoreKeys drives the greenhouse (plant adoption) view.
func (a *App) updateStoreKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := a.keymap
	switch msg.String() {
	case km.Down.Key:
		if a.shopCursor < len(model.Plants)-1 {
			a.shopCursor++
		}
	case km.Up.Key:
		if a.shopCursor > 0 {
			a.shopCursor--
		}
	case km.Select.Key:
		plant := model.Plants[a.shopCursor]
		if err := a.garden.Adopt(plant.ID, time.Now()); err != nil {
			a.statusMsg = err.Error()
			return a, clearStatusCmd()
		}
		a.statusMsg = "now growing: " + plant.Name
		return a, tea.Batch(a.persistCmd(), a.debounceCmd(), clearStatusCmd())
	}
	return a, nil
}

// updateForm routes keys into the open creation form.
func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.formKind = formNone
		a.noteForm = nil
		a.ruleForm = nil
		return a, nil

	case "tab", "down":
		if a.formKind == formNote {
			a.noteForm.next()
		} else {
			a.ruleForm.next()
		}
		return a, nil
	case "shift+tab", "up":
		if a.formKind == formNote {
			a.noteForm.prev()
		} else {
			a.ruleForm.prev()
		}
		return a, nil

	case "ctrl+a":
		if a.formKind == formNote {
			a.noteForm.addStep()
		}
		return a, nil

	case "ctrl+f":
		if a.formKind == formRule {
			a.ruleForm.cycleFrequency()
		}
		return a, nil

	case "enter":
		return a.submitForm()
	}

	var cmd tea.Cmd
	if a.formKind == formNote {
		cmd = a.noteForm.update(msg)
	} else {
		cmd = a.ruleForm.update(msg)
	}
	return a, cmd
}

// submitForm commits the open form into the shared state.
func (a *App) submitForm() (tea.Model, tea.Cmd) {
	now := time.Now()
	snap := a.container.Snapshot()

	switch a.formKind {
	case formNote:
		todo, ok := a.noteForm.build(snap, a.cfg.UI.ViewportWidth, a.cfg.UI.ViewportHeight, now)
		if !ok {
			a.statusMsg = "a note needs a title"
			return a, clearStatusCmd()
		}
		a.container.UpdateAt(now, func(st *model.AppState) {
			st.Todos = append(st.Todos, todo)
		})
		a.formKind = formNone
		a.noteForm = nil
		return a, tea.Batch(a.persistCmd(), a.debounceCmd())

	case formRule:
		rule, ok := a.ruleForm.build(snap)
		if !ok {
			a.statusMsg = "rule needs a title, a valid time and a cadence"
			return a, clearStatusCmd()
		}
		todo, fired := a.sched.AddRule(rule)
		a.formKind = formNone
		a.ruleForm = nil
		cmds := []tea.Cmd{a.persistCmd(), a.debounceCmd()}
		if fired {
			a.statusMsg = "rule saved, first task generated"
			cmds = append(cmds, notifyCmd("Sproutdesk", "New task: "+todo.Title), clearStatusCmd())
		} else {
			a.statusMsg = "rule saved"
			cmds = append(cmds, clearStatusCmd())
		}
		return a, tea.Batch(cmds...)
	}
	return a, nil
}

// organize runs the viewport reconciler. Manual runs always count as a
// local change and push once settled; automatic runs only when something
// actually moved.
func (a *App) organize(manual bool) tea.Cmd {
	mode := a.mode
	w, h := a.cfg.UI.ViewportWidth, a.cfg.UI.ViewportHeight
	changed := a.container.UpdateIf(func(st *model.AppState) bool {
		moved := vpfit.Run(st, mode, manual, w, h)
		return moved > 0 || manual
	})
	if !changed {
		return nil
	}
	if manual {
		a.statusMsg = "desk organized"
		return tea.Batch(a.persistCmd(), a.debounceCmd(), clearStatusCmd())
	}
	return tea.Batch(a.persistCmd(), a.debounceCmd())
}

// boardTodos returns the notes in render order: z-order ascending, so the
// most recently focused note sits at the bottom of the list, closest to
// the cursor's natural resting place.
func (a *App) boardTodos() []model.Todo {
	snap := a.container.Snapshot()
	todos := snap.Todos
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].ZIndex < todos[j].ZIndex
	})
	return todos
}

// selectedTodo resolves the cursor against the given ordering.
func (a *App) selectedTodo(todos []model.Todo) (model.Todo, bool) {
	if a.noteCursor < 0 || a.noteCursor >= len(todos) {
		return model.Todo{}, false
	}
	return todos[a.noteCursor], true
}

// focusSelected raises the selected note's z-order, mirroring a click on a
// graphical client. Presentation-only: it does not count as a local edit.
func (a *App) focusSelected(todos []model.Todo) {
	t, ok := a.selectedTodo(todos)
	if !ok {
		return
	}
	id := t.ID
	a.container.Silent(func(st *model.AppState) {
		maxZ := 10
		for _, other := range st.Todos {
			if other.ZIndex > maxZ {
				maxZ = other.ZIndex
			}
		}
		for i := range st.Todos {
			if st.Todos[i].ID == id {
				st.Todos[i].ZIndex = maxZ + 1
			}
		}
	})
}

// clampCursors keeps every cursor inside its shrunken list.
func (a *App) clampCursors() {
	snap := a.container.Snapshot()
	if a.noteCursor >= len(snap.Todos) {
		a.noteCursor = max(0, len(snap.Todos)-1)
	}
	if a.ruleCursor >= len(snap.RecurringRules) {
		a.ruleCursor = max(0, len(snap.RecurringRules)-1)
	}
	a.stepCursor = 0
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
