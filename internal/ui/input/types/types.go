package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
)

// Screen identifies what the main area shows
type Screen int

const (
	ScreenHome Screen = iota
	ScreenResults
	ScreenProduct
	ScreenCategories
	ScreenFavorites
)

func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenResults:
		return "results"
	case ScreenProduct:
		return "product"
	case ScreenCategories:
		return "categories"
	case ScreenFavorites:
		return "favorites"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Screen() Screen
	CurrentIndex() int
	TotalItems() int
	HasSuggestions() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
