package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Búsqueda", []helpEntry{
		{"/, s", "Buscar productos"},
		{"↑/↓, Tab", "Elegir sugerencia"},
		{"Enter", "Buscar el texto o la sugerencia elegida"},
		{"Esc", "Cancelar la búsqueda"},
	}},
	{"Navegación", []helpEntry{
		{"↑/↓, j/k", "Mover el cursor"},
		{"PgUp/PgDn", "Página arriba/abajo"},
		{"gg/G", "Ir al inicio/final"},
		{"Rueda", "Desplazar la lista"},
		{"Enter", "Abrir producto"},
		{"Esc", "Volver"},
	}},
	{"Producto", []helpEntry{
		{"1-5", "Calificar"},
		{"f", "Agregar o quitar de favoritos"},
		{"h", "Historial de precios"},
		{"r", "Recargar"},
	}},
	{"Categorías", []helpEntry{
		{"c", "Ver categorías"},
		{"1-3", "Elegir categoría"},
		{"←/→, Tab", "Cambiar subcategoría"},
		{"h", "Historial promedio de precios"},
	}},
	{"Otros", []helpEntry{
		{"F", "Favoritos o más vistos"},
		{"?", "Mostrar esta ayuda"},
		{"q", "Salir"},
	}},
}

// RenderHelpContent renders the key reference
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("Ayuda de HunterPrice"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			pad := strings.Repeat(" ", max(12-lipgloss.Width(e.keys), 1))
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
	}
	return help.String()
}

// PagerOps shows long text in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// Show shows content using ov pager
func (h *PagerOps) Show(content string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
