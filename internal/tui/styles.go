package tui

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// subtle is a muted color for secondary text
	subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// highlight is the accent color for selected items
	highlight = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}

	errorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	successColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Base styles
var (
	// appStyle is the base style for the entire application
	appStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// titleStyle is the style for section titles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	// subtitleStyle is for secondary headings
	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(subtle)

	// statusBarStyle is the bottom bar with sync status and countdown
	statusBarStyle = lipgloss.NewStyle().
			Foreground(subtle)

	// helpStyle is for the key hint line
	helpStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Faint(true)
)

// Note styles
var (
	// noteStyle is the base sticky-note card
	noteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)

	// noteSelectedStyle is the focused sticky-note card
	noteSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(highlight).
				Padding(0, 1).
				Bold(true)

	// subTaskDone is for finished steps
	subTaskDone = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	// overdueStyle marks notes past their due date
	overdueStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// recurringBadge marks auto-generated notes
	recurringBadge = lipgloss.NewStyle().
			Foreground(warningColor)

	// deadStyle renders the wilted plant line
	deadStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// aliveStyle renders the healthy countdown
	aliveStyle = lipgloss.NewStyle().
			Foreground(successColor)
)
