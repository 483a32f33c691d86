package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title              lipgloss.Style
	Subtitle           lipgloss.Style
	Dim                lipgloss.Style
	Status             lipgloss.Style
	Help               lipgloss.Style
	Main               lipgloss.Style
	Scroll             lipgloss.Style
	Highlight          lipgloss.Style
	SelectionBg        lipgloss.Style
	SearchBox          lipgloss.Style
	SearchBoxFocused   lipgloss.Style
	Suggestion         lipgloss.Style
	SuggestionSelected lipgloss.Style
	Brand              lipgloss.Style
	Price              lipgloss.Style
	BestPrice          lipgloss.Style
	Skeleton           lipgloss.Style
	Empty              lipgloss.Style
	Tab                lipgloss.Style
	TabActive          lipgloss.Style
	Star               lipgloss.Style
	Bar                lipgloss.Style
	Liked              lipgloss.Style
	StatusError        lipgloss.Style
	StatusWarning      lipgloss.Style
	StatusLoading      lipgloss.Style
	StatusSuccess      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:     lipgloss.NewStyle().Faint(true),
		Main:     lipgloss.NewStyle().Padding(0, 2),
		Scroll:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		// Matched part of a suggestion
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchBoxFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Suggestion:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SuggestionSelected: lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("231")),
		Brand:              lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Price:              lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		BestPrice:          lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Skeleton:           lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		Empty:              lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Tab:                lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		TabActive:          lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("99")).Padding(0, 1),
		Star:               lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Bar:                lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Liked:              lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		StatusError:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
