package pricehistory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunterprice/internal/domain"
)

func point(store, ts, price string) domain.PricePoint {
	d, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return domain.PricePoint{StoreName: store, Date: d, Price: decimal.RequireFromString(price)}
}

var history = []domain.PricePoint{
	point("Liverpool", "2024-03-02T09:00:00Z", "120"),
	point("Amazon", "2024-03-01T18:00:00Z", "95"),
	point("Liverpool", "2024-03-01T08:00:00Z", "100"),
	point("Amazon", "2024-03-02T12:00:00Z", "130"),
	point("Walmart", "2024-03-01T10:00:00Z", "95"),
}

func TestStores(t *testing.T) {
	assert.Equal(t, []string{"Amazon", "Liverpool", "Walmart"}, Stores(history))
}

func TestSeriesLowestPerDay(t *testing.T) {
	got := Series(history, "")
	require.Len(t, got, 2)

	assert.Equal(t, "2024-03-01", got[0].Date.Format(dayLayout))
	assert.Equal(t, "95", got[0].Price.String())
	// Ties keep the first observation
	assert.Equal(t, "Amazon", got[0].StoreName)

	assert.Equal(t, "2024-03-02", got[1].Date.Format(dayLayout))
	assert.Equal(t, "Liverpool", got[1].StoreName)
	assert.Equal(t, "120", got[1].Price.String())
}

func TestSeriesForStore(t *testing.T) {
	got := Series(history, "Liverpool")
	require.Len(t, got, 2)
	assert.Equal(t, "100", got[0].Price.String())
	assert.Equal(t, "120", got[1].Price.String())

	assert.Empty(t, Series(history, "Sears"))
}

func TestSummarize(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)

	s, ok := Summarize([]decimal.Decimal{
		decimal.NewFromInt(100), decimal.NewFromInt(80), decimal.NewFromInt(150), decimal.NewFromInt(110),
	})
	require.True(t, ok)
	assert.Equal(t, "80", s.Min.String())
	assert.Equal(t, "150", s.Max.String())
	assert.Equal(t, "10", s.Change().String())
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":         "$0.00",
		"5.5":       "$5.50",
		"999.999":   "$1,000.00",
		"1234567.8": "$1,234,567.80",
		"-42":       "-$42.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestReport(t *testing.T) {
	out := Report("Tenis Runner", history, "")
	assert.Contains(t, out, "Tenis Runner")
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "$95.00")
	assert.Contains(t, out, "Amazon, Liverpool, Walmart")
	assert.Contains(t, out, "Mínimo $95.00")

	filtered := Report("Tenis Runner", history, "Amazon")
	assert.Contains(t, filtered, "$130.00")
	assert.NotContains(t, filtered, "$120.00")
}

func TestReportEmpty(t *testing.T) {
	assert.Contains(t, Report("X", nil, ""), "No hay datos")
	assert.Contains(t, CategoryReport("Tenis", nil), "No hay datos")
}

func TestCategoryReport(t *testing.T) {
	d, _ := time.Parse(dayLayout, "2024-05-01")
	out := CategoryReport("Tecnología", []domain.CategoryPricePoint{
		{Date: d, AveragePrice: decimal.RequireFromString("1500.25")},
		{Date: d.AddDate(0, 0, 1), AveragePrice: decimal.RequireFromString("1400")},
	})
	assert.Contains(t, out, "Tecnología")
	assert.Contains(t, out, "$1,500.25")
	assert.Contains(t, out, "2024-05-02")
}
