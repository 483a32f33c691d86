package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"hunterprice/internal/ui/input/types"
)

// keyMap holds the bindings shown in the footer. Key handling itself lives
// in the input modes.
type keyMap struct {
	Search   key.Binding
	Pick     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Move     key.Binding
	Open     key.Binding
	Back     key.Binding
	Rate     key.Binding
	Like     key.Binding
	History  key.Binding
	Reload   key.Binding
	Tabs     key.Binding
	Category key.Binding
	Favs     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search:   key.NewBinding(key.WithKeys("/", "s"), key.WithHelp("/", "buscar")),
		Pick:     key.NewBinding(key.WithKeys("up", "down", "tab"), key.WithHelp("↑/↓", "sugerencias")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buscar")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
		Move:     key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "mover")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "abrir")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
		Rate:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "calificar")),
		Like:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorito")),
		History:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "historial")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		Tabs:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "subcategoría")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "categorías")),
		Favs:     key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favoritos")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "salir")),
	}
}

// bindings returns the footer bindings for a screen and mode
func (k keyMap) bindings(screen types.Screen, searching bool) []key.Binding {
	if searching {
		return []key.Binding{k.Pick, k.Submit, k.Cancel}
	}
	switch screen {
	case types.ScreenResults:
		return []key.Binding{k.Move, k.Open, k.Search, k.Back, k.Help, k.Quit}
	case types.ScreenProduct:
		return []key.Binding{k.Rate, k.Like, k.History, k.Reload, k.Back, k.Help}
	case types.ScreenCategories:
		return []key.Binding{k.Tabs, k.Move, k.Open, k.History, k.Back, k.Help}
	case types.ScreenFavorites:
		return []key.Binding{k.Move, k.Open, k.Reload, k.Back, k.Help, k.Quit}
	default:
		return []key.Binding{k.Search, k.Category, k.Favs, k.Help, k.Quit}
	}
}
