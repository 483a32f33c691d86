package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// MoveSuggestionAction moves the highlight in the suggestion list
type MoveSuggestionAction struct {
	Delta int
}

func (a MoveSuggestionAction) Type() string { return "move_suggestion" }

// Screen actions
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

// SelectTabAction picks a root category
type SelectTabAction struct {
	Index int
}

func (a SelectTabAction) Type() string { return "select_tab" }

type ShowScreenAction struct {
	Screen Screen
}

func (a ShowScreenAction) Type() string { return "show_screen" }

// Product actions
type RateAction struct {
	Stars int
}

func (a RateAction) Type() string { return "rate" }

type ToggleLikeAction struct{}

func (a ToggleLikeAction) Type() string { return "toggle_like" }

type PriceHistoryAction struct{}

func (a PriceHistoryAction) Type() string { return "price_history" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

// Other actions
type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }
