package views

import (
	"fmt"
	"strings"

	"hunterprice/internal/pricehistory"
)

const ratingBarWidth = 20

func (r *Renderer) renderProduct(state ProductState, loggedIn bool, width int) string {
	if state.Loading {
		return r.styles.Dim.Render("Cargando producto...") + "\n" + r.renderSkeleton(3, width)
	}
	if state.Err != "" {
		return r.styles.StatusError.Render(state.Err) + "\n" + r.styles.Dim.Render("Presiona r para reintentar.")
	}

	d := state.Detail
	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(truncate(d.Name, width)))
	b.WriteString("\n")

	var meta []string
	if d.Brand != "" {
		meta = append(meta, d.Brand)
	}
	if d.Category != "" {
		meta = append(meta, d.Category)
	}
	b.WriteString(r.styles.Brand.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")
	b.WriteString(r.renderRatingLine(state, loggedIn))
	b.WriteString("\n\n")

	b.WriteString(r.styles.Subtitle.Render("Tiendas"))
	b.WriteString("\n")
	if len(d.Offers) == 0 {
		b.WriteString(r.styles.Empty.Render("  Sin precios disponibles"))
		b.WriteString("\n")
	}
	best, hasBest := d.LowestOffer()
	nameWidth := 0
	for _, o := range d.Offers {
		nameWidth = max(nameWidth, len([]rune(o.StoreName)))
	}
	for _, o := range d.Offers {
		price := fmt.Sprintf("%12s", pricehistory.FormatMoney(o.Price))
		if hasBest && o.StoreID == best.StoreID {
			price = r.styles.BestPrice.Render(price)
		} else {
			price = r.styles.Price.Render(price)
		}
		name := o.StoreName + strings.Repeat(" ", nameWidth-len([]rune(o.StoreName)))
		line := "  " + name + "  " + price
		used := nameWidth + 16
		if loc, ok := state.Nearest[o.StoreID]; ok {
			dist := fmt.Sprintf("%6s", formatDistance(loc.DistanceKm))
			line += "  " + r.styles.Brand.Render(dist)
			used += 8
		}
		if o.Link != "" {
			line += "  " + r.styles.Dim.Render(truncate(o.Link, max(width-used-2, 8)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if state.Ratings.Total > 0 {
		b.WriteString(r.styles.Subtitle.Render("Calificaciones"))
		b.WriteString("\n")
		for _, bucket := range state.Ratings.Buckets {
			pct := state.Ratings.Percentage(bucket)
			n := min(max(int(pct/100*ratingBarWidth), 0), ratingBarWidth)
			fmt.Fprintf(&b, "  %d %s %s%s %3.0f%%\n",
				bucket.Stars,
				r.styles.Star.Render("★"),
				r.styles.Bar.Render(strings.Repeat("█", n)),
				strings.Repeat(" ", ratingBarWidth-n),
				pct)
		}
		b.WriteString("\n")
	}

	if len(state.Recommendations) > 0 {
		b.WriteString(r.styles.Subtitle.Render("Recomendados"))
		b.WriteString("\n")
		for i, p := range state.Recommendations {
			name := truncate(p.DisplayName, width-2)
			if i == state.Selected {
				b.WriteString(r.styles.SelectionBg.Render("▸ ") + name)
			} else {
				b.WriteString("  " + name)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *Renderer) renderRatingLine(state ProductState, loggedIn bool) string {
	rt := state.Ratings
	full := int(rt.Average + 0.5)
	full = min(max(full, 0), 5)
	parts := []string{
		r.styles.Star.Render(strings.Repeat("★", full)) + r.styles.Dim.Render(strings.Repeat("☆", 5-full)),
		fmt.Sprintf("%.1f", rt.Average),
		plural(rt.Total, "calificación", "calificaciones"),
	}
	if loggedIn {
		if rt.UserRating > 0 {
			parts = append(parts, fmt.Sprintf("Tu calificación: %d", rt.UserRating))
		} else {
			parts = append(parts, r.styles.Dim.Render("1-5 para calificar"))
		}
		if state.Liked {
			parts = append(parts, r.styles.Liked.Render("♥ En favoritos"))
		} else {
			parts = append(parts, r.styles.Dim.Render("♡ f para agregar a favoritos"))
		}
	}
	return strings.Join(parts, " · ")
}

// formatDistance prints kilometers, or meters under one km
func formatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.1f km", km)
}
