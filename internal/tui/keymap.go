// Package tui provides the terminal user interface for sproutdesk.
package tui

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// Keymap contains all key bindings for the application.
type Keymap struct {
	// Navigation
	Up     Key
	Down   Key
	Top    Key
	Bottom Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Help   Key

	// Views
	Board   Key
	Rules   Key
	History Key
	Store   Key

	// Note actions
	AddNote    Key
	AddRule    Key
	DeleteNote Key
	ToggleStep Key
	Convert    Key
	Yank       Key
	Organize   Key
	ModeFlip   Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up:     Key{Key: "k", Help: "up"},
		Down:   Key{Key: "j", Help: "down"},
		Top:    Key{Key: "g", Help: "top"},
		Bottom: Key{Key: "G", Help: "bottom"},

		Select: Key{Key: "enter", Help: "select"},
		Back:   Key{Key: "esc", Help: "back"},
		Quit:   Key{Key: "q", Help: "quit"},
		Help:   Key{Key: "?", Help: "help"},

		Board:   Key{Key: "1", Help: "board"},
		Rules:   Key{Key: "2", Help: "rules"},
		History: Key{Key: "3", Help: "history"},
		Store:   Key{Key: "4", Help: "greenhouse"},

		AddNote:    Key{Key: "a", Help: "new note"},
		AddRule:    Key{Key: "A", Help: "new rule"},
		DeleteNote: Key{Key: "d", Help: "delete"},
		ToggleStep: Key{Key: " ", Help: "toggle step"},
		Convert:    Key{Key: "c", Help: "convert"},
		Yank:       Key{Key: "y", Help: "yank title"},
		Organize:   Key{Key: "o", Help: "organize"},
		ModeFlip:   Key{Key: "m", Help: "desktop/mobile"},
	}
}

// ArrowKeymap returns plain arrow-key bindings for non-Vim users.
func ArrowKeymap() Keymap {
	km := DefaultKeymap()
	km.Up = Key{Key: "up", Help: "up"}
	km.Down = Key{Key: "down", Help: "down"}
	km.Top = Key{Key: "home", Help: "top"}
	km.Bottom = Key{Key: "end", Help: "bottom"}
	return km
}
