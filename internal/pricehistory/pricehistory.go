// Package pricehistory turns raw price observations into the series shown
// in the price history pager.
package pricehistory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"hunterprice/internal/domain"
)

const dayLayout = "2006-01-02"

// Stores returns the distinct store names in points, sorted
func Stores(points []domain.PricePoint) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range points {
		if p.StoreName == "" || seen[p.StoreName] {
			continue
		}
		seen[p.StoreName] = true
		out = append(out, p.StoreName)
	}
	sort.Strings(out)
	return out
}

// Series returns the points to chart. With no store it is the lowest price
// of each day across stores; otherwise every point of that store. Either
// way the result is ordered by date.
func Series(points []domain.PricePoint, store string) []domain.PricePoint {
	if store != "" {
		var out []domain.PricePoint
		for _, p := range points {
			if p.StoreName == store {
				out = append(out, p)
			}
		}
		sortByDate(out)
		return out
	}

	lowest := map[string]domain.PricePoint{}
	for _, p := range points {
		day := p.Date.Format(dayLayout)
		cur, ok := lowest[day]
		if !ok || p.Price.LessThan(cur.Price) {
			lowest[day] = p
		}
	}
	out := make([]domain.PricePoint, 0, len(lowest))
	for _, p := range lowest {
		out = append(out, p)
	}
	sortByDate(out)
	return out
}

func sortByDate(points []domain.PricePoint) {
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
}

// Summary describes a series
type Summary struct {
	Min    decimal.Decimal
	Max    decimal.Decimal
	First  decimal.Decimal
	Latest decimal.Decimal
}

// Change is the latest price relative to the first, in percent
func (s Summary) Change() decimal.Decimal {
	if s.First.IsZero() {
		return decimal.Zero
	}
	return s.Latest.Sub(s.First).Div(s.First).Mul(decimal.NewFromInt(100)).Round(1)
}

// Summarize computes the summary of prices, false if there are none
func Summarize(prices []decimal.Decimal) (Summary, bool) {
	if len(prices) == 0 {
		return Summary{}, false
	}
	s := Summary{Min: prices[0], Max: prices[0], First: prices[0], Latest: prices[len(prices)-1]}
	for _, p := range prices[1:] {
		s.Min = decimal.Min(s.Min, p)
		s.Max = decimal.Max(s.Max, p)
	}
	return s, true
}

// FormatMoney renders an amount as "$1,234.50"
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

const barWidth = 30

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type row struct {
	day   string
	label string
	price decimal.Decimal
}

// Report renders the price history of a product as text for the pager
func Report(productName string, points []domain.PricePoint, store string) string {
	series := Series(points, store)
	scope := "precio más bajo por día"
	if store != "" {
		scope = store
	}

	rows := make([]row, 0, len(series))
	for _, p := range series {
		rows = append(rows, row{day: p.Date.Format(dayLayout), label: p.StoreName, price: p.Price})
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Historial de precios: "+productName) + "\n")
	b.WriteString(mutedStyle.Render(scope) + "\n")
	if stores := Stores(points); len(stores) > 0 {
		b.WriteString(mutedStyle.Render("Tiendas: "+strings.Join(stores, ", ")) + "\n")
	}
	b.WriteString("\n")
	writeRows(&b, rows)
	return b.String()
}

// CategoryReport renders the average price history of a category
func CategoryReport(categoryName string, points []domain.CategoryPricePoint) string {
	rows := make([]row, 0, len(points))
	for _, p := range points {
		rows = append(rows, row{day: p.Date.Format(dayLayout), price: p.AveragePrice})
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Historial promedio de precios: "+categoryName) + "\n")
	b.WriteString(mutedStyle.Render("precio promedio por día") + "\n\n")
	writeRows(&b, rows)
	return b.String()
}

func writeRows(b *strings.Builder, rows []row) {
	if len(rows) == 0 {
		b.WriteString("No hay datos de precios disponibles.\n")
		return
	}

	prices := make([]decimal.Decimal, len(rows))
	labelWidth := 0
	for i, r := range rows {
		prices[i] = r.price
		labelWidth = max(labelWidth, lipgloss.Width(r.label))
	}
	sum, _ := Summarize(prices)
	span := sum.Max.Sub(sum.Min)

	for _, r := range rows {
		n := barWidth
		if span.IsPositive() {
			// Scale so the cheapest day still shows one cell
			n = 1 + int(r.price.Sub(sum.Min).Div(span).Mul(decimal.NewFromInt(barWidth-1)).IntPart())
		}
		price := fmt.Sprintf("%12s", FormatMoney(r.price))
		if r.price.Equal(sum.Min) {
			price = lowStyle.Render(price)
		}
		label := ""
		if labelWidth > 0 {
			label = r.label + strings.Repeat(" ", labelWidth-lipgloss.Width(r.label)) + "  "
		}
		fmt.Fprintf(b, "%s  %s%s  %s\n", r.day, label, price, barStyle.Render(strings.Repeat("█", n)))
	}

	b.WriteString("\n")
	fmt.Fprintf(b, "Mínimo %s · Máximo %s · Último %s (%s%%)\n",
		FormatMoney(sum.Min), FormatMoney(sum.Max), FormatMoney(sum.Latest), sum.Change().StringFixed(1))
}
