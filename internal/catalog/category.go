package catalog

import (
	"context"
	"sort"
	"strconv"

	"hunterprice/internal/domain"
)

// Subcategories lists the subcategories of a root category, preceded by
// the "Todo" entry that selects the root category itself
func (c *Client) Subcategories(ctx context.Context, categoryID int) ([]domain.Category, error) {
	var dtos []subcategoryDTO
	if err := c.get(ctx, "getSubcategories", c.endpoint("getSubcategories", strconv.Itoa(categoryID)), &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(dtos)+1)
	out = append(out, domain.Category{ID: domain.AllSubcategoryID, Name: "Todo"})
	for _, d := range dtos {
		out = append(out, domain.Category{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// CategoryProducts lists the products of a category or subcategory
func (c *Client) CategoryProducts(ctx context.Context, categoryID int) ([]domain.ProductSummary, error) {
	var dtos []productDTO
	if err := c.get(ctx, "getProducts", c.endpoint("getProducts", strconv.Itoa(categoryID)), &dtos); err != nil {
		return nil, err
	}
	return toSummaries(dtos), nil
}

// CategoryPriceHistory returns the daily average price of a category,
// oldest first
func (c *Client) CategoryPriceHistory(ctx context.Context, categoryID int) ([]domain.CategoryPricePoint, error) {
	var dtos []categoryPricePointDTO
	if err := c.get(ctx, "getCategoryPriceHistory", c.endpoint("getCategoryPriceHistory", strconv.Itoa(categoryID)), &dtos); err != nil {
		return nil, err
	}
	points := make([]domain.CategoryPricePoint, 0, len(dtos))
	for _, d := range dtos {
		date, ok := parseDate(d.Date)
		if !ok || !d.AveragePrice.Valid {
			continue
		}
		points = append(points, domain.CategoryPricePoint{Date: date, AveragePrice: d.AveragePrice.Decimal})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
