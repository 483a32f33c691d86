package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hunterprice/internal/ui/input/types"
)

// SearchMode is the product search box. Arrow keys walk the suggestion
// list while typing goes to the box.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Buscar: ", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "up", "ctrl+p", "shift+tab":
		if ctx.HasSuggestions() {
			return []types.Action{types.MoveSuggestionAction{Delta: -1}}, true
		}
		return nil, true
	case "down", "ctrl+n", "tab":
		if ctx.HasSuggestions() {
			return []types.Action{types.MoveSuggestionAction{Delta: 1}}, true
		}
		return nil, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
