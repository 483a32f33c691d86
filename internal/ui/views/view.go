package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hunterprice/internal/domain"
	"hunterprice/internal/ui/input/types"
)

// Fixed line budget of the layout
const (
	headerLines    = 2 // title and a gap
	footerLines    = 2 // status and key help
	subheaderLines = 2
	// RowHeight is the number of lines of one product row
	RowHeight = 2
)

// BodyHeight is the number of lines between header and footer
func BodyHeight(height int) int {
	return max(height-headerLines-footerLines, 1)
}

// ListHeight is the number of lines available to a product list
func ListHeight(height int) int {
	return max(BodyHeight(height)-subheaderLines, RowHeight)
}

// StatusKind selects the status line style
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// ListState is a window over a product list
type ListState struct {
	Items    []domain.ProductSummary
	Selected int
	Start    int
	End      int
	Loading  bool
	Err      string
	Query    string // highlighted in names
}

// ResultsState is the search results screen
type ResultsState struct {
	ListState
	Fetching   bool // a further page is in flight
	HasNext    bool
	SeedFailed bool
	Empty      bool
}

// ProductState is the product screen
type ProductState struct {
	Loading         bool
	Err             string
	Detail          domain.ProductDetail
	Ratings         domain.RatingSummary
	Recommendations []domain.ProductSummary
	Liked           bool
	Selected        int
	// Nearest is the closest branch per store id
	Nearest map[string]domain.StoreLocation
}

// CategoriesState is the categories screen
type CategoriesState struct {
	Roots         []domain.Category
	Root          int
	Subcategories []domain.Category
	Sub           int
	List          ListState
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Screen types.Screen

	UserName string
	Busy     bool
	Spinner  string

	Searching          bool
	SearchInput        string
	SearchText         string
	Suggestions        []domain.Suggestion
	SuggestionIndex    int
	SuggestionsLoading bool
	Recent             []string

	Results    ResultsState
	Product    ProductState
	Categories CategoriesState
	Favorites  ListState
	LoggedIn   bool

	StatusMessage string
	StatusKind    StatusKind
	HelpLine      string
	HelpOverlay   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the styles used by the renderer
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	inner := max(width-4, 20) // Account for main container padding
	bodyHeight := BodyHeight(state.Height)

	var content strings.Builder
	content.WriteString(r.renderTitle(state, inner))
	content.WriteString("\n\n")

	var body string
	switch {
	case state.HelpOverlay != "":
		body = state.HelpOverlay
	case state.Searching || state.Screen == types.ScreenHome:
		body = r.renderSearch(state, inner)
	case state.Screen == types.ScreenResults:
		body = r.renderResults(state.Results, inner, bodyHeight)
	case state.Screen == types.ScreenProduct:
		body = r.renderProduct(state.Product, state.LoggedIn, inner)
	case state.Screen == types.ScreenCategories:
		body = r.renderCategories(state.Categories, inner, bodyHeight)
	case state.Screen == types.ScreenFavorites:
		title := "Más vistos"
		if state.LoggedIn {
			title = "Tus favoritos"
		}
		body = r.renderTitledList(title, state.Favorites, inner, bodyHeight)
	}
	content.WriteString(fitHeight(body, bodyHeight))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpLine))

	mainStyle := r.styles.Main.MaxHeight(max(state.Height, 1))
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("HunterPrice")

	var right []string
	if state.Busy {
		right = append(right, r.styles.StatusLoading.Render(state.Spinner+" cargando"))
	}
	if state.UserName != "" {
		right = append(right, r.styles.Dim.Render("Sesión: "+state.UserName))
	} else {
		right = append(right, r.styles.Dim.Render("Invitado"))
	}
	rightContent := strings.Join(right, "  ")

	paddingWidth := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage == "" {
		return ""
	}
	style := r.styles.Status
	switch state.StatusKind {
	case StatusSuccess:
		style = r.styles.StatusSuccess
	case StatusWarning:
		style = r.styles.StatusWarning
	case StatusError:
		style = r.styles.StatusError
	}
	return style.Render(state.StatusMessage)
}

// fitHeight pads or cuts s to exactly height lines
func fitHeight(s string, height int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
