package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hunterprice/internal/domain"
	"hunterprice/internal/textmatch"
)

// NoResultsMessage is shown when a search finds nothing
const NoResultsMessage = "No se encontró ningún resultado en base a tu búsqueda."

func (r *Renderer) renderResults(state ResultsState, width, height int) string {
	var b strings.Builder

	title := fmt.Sprintf("Resultados para “%s”", state.Query)
	b.WriteString(r.styles.Subtitle.Render(truncate(title, width)))
	b.WriteString("\n")

	var info string
	switch {
	case state.Loading:
		info = "Buscando..."
	case state.SeedFailed:
		info = ""
	case state.HasNext:
		info = plural(len(state.Items), "producto", "productos") + " · desplázate para ver más"
	default:
		info = plural(len(state.Items), "producto", "productos")
	}
	b.WriteString(r.styles.Dim.Render(info))
	b.WriteString("\n")

	listHeight := max(height-subheaderLines, RowHeight)
	switch {
	case state.SeedFailed:
		b.WriteString(r.styles.StatusError.Render("No se pudieron cargar los resultados."))
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("Presiona r para reintentar."))
	case state.Loading:
		b.WriteString(r.renderSkeleton(listHeight/RowHeight, width))
	case state.Empty:
		b.WriteString(r.styles.Empty.Render(NoResultsMessage))
	default:
		b.WriteString(r.renderRows(state.ListState, width))
		if state.Fetching {
			shown := state.End - state.Start
			free := listHeight/RowHeight - shown
			if free > 0 {
				b.WriteString("\n")
				b.WriteString(r.renderSkeleton(free, width))
			}
		}
	}
	return b.String()
}

func (r *Renderer) renderTitledList(title string, state ListState, width, height int) string {
	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(title))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render(listInfo(state)))
	b.WriteString("\n")
	b.WriteString(r.renderListBody(state, width, max(height-subheaderLines, RowHeight)))
	return b.String()
}

func (r *Renderer) renderCategories(state CategoriesState, width, height int) string {
	var b strings.Builder

	roots := make([]string, 0, len(state.Roots))
	for i, c := range state.Roots {
		label := fmt.Sprintf("%d %s", i+1, c.Name)
		if i == state.Root {
			roots = append(roots, r.styles.TabActive.Render(label))
		} else {
			roots = append(roots, r.styles.Tab.Render(label))
		}
	}
	b.WriteString(strings.Join(roots, " "))
	b.WriteString("\n")

	labels := make([]string, len(state.Subcategories))
	for i, c := range state.Subcategories {
		labels[i] = "[" + c.Name + "]"
	}
	start, end := fitTabs(labels, state.Sub, width)
	subs := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == state.Sub {
			subs = append(subs, r.styles.Highlight.Render(labels[i]))
		} else {
			subs = append(subs, r.styles.Dim.Render(labels[i]))
		}
	}
	b.WriteString(strings.Join(subs, " "))
	b.WriteString("\n")

	b.WriteString(r.renderListBody(state.List, width, max(height-subheaderLines, RowHeight)))
	return b.String()
}

func (r *Renderer) renderListBody(state ListState, width, height int) string {
	switch {
	case state.Loading:
		return r.renderSkeleton(height/RowHeight, width)
	case state.Err != "":
		return r.styles.StatusError.Render(state.Err) + "\n" + r.styles.Dim.Render("Presiona r para reintentar.")
	case len(state.Items) == 0:
		return r.styles.Empty.Render("No hay productos para mostrar.")
	}
	return r.renderRows(state, width)
}

func listInfo(state ListState) string {
	if state.Loading {
		return "Cargando..."
	}
	return plural(len(state.Items), "producto", "productos")
}

// renderRows renders the visible window of a product list, RowHeight lines
// per product
func (r *Renderer) renderRows(state ListState, width int) string {
	var lines []string
	for i := state.Start; i < state.End && i < len(state.Items); i++ {
		lines = append(lines, r.renderRow(state.Items[i], i == state.Selected, state.Query, width)...)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderRow(p domain.ProductSummary, selected bool, query string, width int) []string {
	name := truncate(p.DisplayName, width-2)
	name = textmatch.Highlight(name, query, func(s string) string { return r.styles.Highlight.Render(s) })

	brand := p.Brand
	if brand == "" {
		brand = "Sin marca"
	}
	brand = r.styles.Brand.Render(truncate(brand, width-2))

	if selected {
		return []string{r.styles.SelectionBg.Render("▸ ") + name, "  " + brand}
	}
	return []string{"  " + name, "  " + brand}
}

// renderSkeleton draws placeholder rows while a page loads
func (r *Renderer) renderSkeleton(rows, width int) string {
	rows = max(rows, 1)
	long := strings.Repeat("░", min(max(width-4, 8), 36))
	short := strings.Repeat("░", min(max(width/4, 4), 14))
	lines := make([]string, 0, rows*RowHeight)
	for i := 0; i < rows; i++ {
		lines = append(lines, "  "+r.styles.Skeleton.Render(long), "  "+r.styles.Skeleton.Render(short))
	}
	return strings.Join(lines, "\n")
}

// fitTabs returns the range of labels around selected that fits in width
func fitTabs(labels []string, selected, width int) (int, int) {
	if len(labels) == 0 {
		return 0, 0
	}
	selected = min(max(selected, 0), len(labels)-1)
	start, end := selected, selected+1
	used := lipgloss.Width(labels[selected])
	for {
		grew := false
		if end < len(labels) && used+1+lipgloss.Width(labels[end]) <= width {
			used += 1 + lipgloss.Width(labels[end])
			end++
			grew = true
		}
		if start > 0 && used+1+lipgloss.Width(labels[start-1]) <= width {
			start--
			used += 1 + lipgloss.Width(labels[start])
			grew = true
		}
		if !grew {
			return start, end
		}
	}
}
