package views

import (
	"strings"

	"hunterprice/internal/textmatch"
	"hunterprice/internal/ui/input/types"
)

func (r *Renderer) renderSearch(state ViewState, width int) string {
	var b strings.Builder

	boxStyle := r.styles.SearchBox
	input := r.styles.Dim.Render("Presiona / para buscar productos")
	if state.Searching {
		boxStyle = r.styles.SearchBoxFocused
		input = state.SearchInput
	}
	b.WriteString(boxStyle.Width(min(width-2, 60)).Render("Buscar: " + input))
	b.WriteString("\n")

	if state.Searching {
		switch {
		case len(state.Suggestions) > 0:
			for i, s := range state.Suggestions {
				name := truncate(s.DisplayName, width-4)
				name = textmatch.Highlight(name, state.SearchText, func(m string) string { return r.styles.Highlight.Render(m) })
				if i == state.SuggestionIndex {
					b.WriteString(r.styles.SuggestionSelected.Render("▸ ") + name)
				} else {
					b.WriteString("  " + r.styles.Suggestion.Render(name))
				}
				b.WriteString("\n")
			}
		case state.SuggestionsLoading:
			b.WriteString(r.styles.Dim.Render("  " + state.Spinner + " buscando sugerencias..."))
			b.WriteString("\n")
		}
		return b.String()
	}

	if state.Screen != types.ScreenHome {
		return b.String()
	}

	b.WriteString("\n")
	if len(state.Recent) > 0 {
		b.WriteString(r.styles.Subtitle.Render("Búsquedas recientes"))
		b.WriteString("\n")
		for _, q := range state.Recent {
			b.WriteString("  " + r.styles.Dim.Render(truncate(q, width-2)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Dim.Render("c categorías · F favoritos · ? ayuda · q salir"))
	return b.String()
}
