package tui

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sproutdesk/sproutdesk/internal/model"
)

// formKind selects which creation form is open.
type formKind int

const (
	formNone formKind = iota
	formNote
	formRule
)

// noteForm collects a title plus step texts for a new sticky note.
type noteForm struct {
	title textinput.Model
	steps []textinput.Model
	focus int // 0 = title, 1..n = steps
}

func newNoteForm() *noteForm {
	title := textinput.New()
	title.Placeholder = "Title..."
	title.CharLimit = 120
	title.Focus()

	step := textinput.New()
	step.Placeholder = "Step 1"
	step.CharLimit = 200

	return &noteForm{
		title: title,
		steps: []textinput.Model{step},
	}
}

// addStep appends another step input and moves focus onto it.
func (f *noteForm) addStep() {
	step := textinput.New()
	step.Placeholder = "Step " + strconv.Itoa(len(f.steps)+1)
	step.CharLimit = 200
	f.steps = append(f.steps, step)
	f.setFocus(len(f.steps))
}

func (f *noteForm) setFocus(i int) {
	f.focus = i
	f.title.Blur()
	for j := range f.steps {
		f.steps[j].Blur()
	}
	if i == 0 {
		f.title.Focus()
	} else if i-1 < len(f.steps) {
		f.steps[i-1].Focus()
	}
}

func (f *noteForm) next() { f.setFocus((f.focus + 1) % (len(f.steps) + 1)) }
func (f *noteForm) prev() { f.setFocus((f.focus + len(f.steps)) % (len(f.steps) + 1)) }

func (f *noteForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.steps[f.focus-1], cmd = f.steps[f.focus-1].Update(msg)
	}
	return cmd
}

// build turns the form into a Todo, or ok=false when the title is empty.
// Placement mirrors manual creation: random desktop spot inside a padded
// rectangle, mobile spot stacked below the existing notes.
func (f *noteForm) build(st model.AppState, width, height int, now time.Time) (model.Todo, bool) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		return model.Todo{}, false
	}

	subTasks := []model.SubTask{}
	for _, in := range f.steps {
		text := strings.TrimSpace(in.Value())
		if text == "" {
			continue
		}
		subTasks = append(subTasks, model.SubTask{ID: uuid.NewString(), Text: text})
	}

	const padding = 100
	x := rand.Float64()*float64(width-300-padding) + padding/2
	y := rand.Float64()*float64(height-300-padding) + padding/2
	mx := 20.0
	my := 80.0 + float64(len(st.Todos))*45

	colors := st.Settings.NoteColors
	color := colors[rand.Intn(len(colors))]

	return model.Todo{
		ID:        uuid.NewString(),
		Title:     title,
		SubTasks:  subTasks,
		CreatedAt: model.Millis(now),
		X:         x,
		Y:         y,
		MX:        &mx,
		MY:        &my,
		ZIndex:    len(st.Todos) + 10,
		Color:     color,
	}, true
}

// ruleForm collects a recurring rule. Steps are comma-separated; weekly
// days are entered as digits 0-6 (0 = Sunday).
type ruleForm struct {
	title      textinput.Model
	steps      textinput.Model
	clock      textinput.Model
	days       textinput.Model
	dayOfMonth textinput.Model
	frequency  model.Frequency
	focus      int
}

func newRuleForm() *ruleForm {
	title := textinput.New()
	title.Placeholder = "Title..."
	title.CharLimit = 120
	title.Focus()

	steps := textinput.New()
	steps.Placeholder = "Steps, comma separated"
	steps.CharLimit = 400

	clock := textinput.New()
	clock.Placeholder = "09:00"
	clock.CharLimit = 5

	days := textinput.New()
	days.Placeholder = "Weekdays, e.g. 1,3,5 (0=Sun)"
	days.CharLimit = 20

	dom := textinput.New()
	dom.Placeholder = "Day of month, 1-31"
	dom.CharLimit = 2

	return &ruleForm{
		title:      title,
		steps:      steps,
		clock:      clock,
		days:       days,
		dayOfMonth: dom,
		frequency:  model.FrequencyDaily,
	}
}

// fields returns the active inputs in focus order; the frequency selector
// sits between the clock and the cadence-specific input.
func (f *ruleForm) fields() []*textinput.Model {
	fields := []*textinput.Model{&f.title, &f.steps, &f.clock}
	switch f.frequency {
	case model.FrequencyWeekly:
		fields = append(fields, &f.days)
	case model.FrequencyMonthly:
		fields = append(fields, &f.dayOfMonth)
	}
	return fields
}

func (f *ruleForm) setFocus(i int) {
	fields := f.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	f.focus = i
	for j, in := range fields {
		if j == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *ruleForm) next() { f.setFocus(f.focus + 1) }
func (f *ruleForm) prev() { f.setFocus(f.focus - 1) }

// cycleFrequency rotates daily -> weekly -> monthly.
func (f *ruleForm) cycleFrequency() {
	switch f.frequency {
	case model.FrequencyDaily:
		f.frequency = model.FrequencyWeekly
	case model.FrequencyWeekly:
		f.frequency = model.FrequencyMonthly
	default:
		f.frequency = model.FrequencyDaily
	}
	f.setFocus(f.focus)
}

func (f *ruleForm) update(msg tea.Msg) tea.Cmd {
	fields := f.fields()
	if f.focus >= len(fields) {
		f.setFocus(0)
		fields = f.fields()
	}
	var cmd tea.Cmd
	*fields[f.focus], cmd = fields[f.focus].Update(msg)
	return cmd
}

// build turns the form into a RecurringRule, or ok=false when invalid.
func (f *ruleForm) build(st model.AppState) (model.RecurringRule, bool) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		return model.RecurringRule{}, false
	}

	clock := strings.TrimSpace(f.clock.Value())
	if clock == "" {
		clock = "09:00"
	}
	if _, _, ok := model.ParseClock(clock); !ok {
		return model.RecurringRule{}, false
	}

	subTasks := []string{}
	for _, part := range strings.Split(f.steps.Value(), ",") {
		if text := strings.TrimSpace(part); text != "" {
			subTasks = append(subTasks, text)
		}
	}

	rule := model.RecurringRule{
		ID:        uuid.NewString(),
		Title:     title,
		SubTasks:  subTasks,
		Frequency: f.frequency,
		Time:      clock,
		Color:     st.Settings.NoteColors[rand.Intn(len(st.Settings.NoteColors))],
	}

	switch f.frequency {
	case model.FrequencyWeekly:
		for _, part := range strings.Split(f.days.Value(), ",") {
			d, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || d < 0 || d > 6 {
				continue
			}
			rule.DaysOfWeek = append(rule.DaysOfWeek, d)
		}
		if len(rule.DaysOfWeek) == 0 {
			return model.RecurringRule{}, false
		}
	case model.FrequencyMonthly:
		d, err := strconv.Atoi(strings.TrimSpace(f.dayOfMonth.Value()))
		if err != nil || d < 1 || d > 31 {
			return model.RecurringRule{}, false
		}
		rule.DayOfMonth = d
	}

	return rule, true
}
