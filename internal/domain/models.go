package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Suggestion is one autocomplete candidate for a partial query
type Suggestion struct {
	DisplayName string
}

// ProductSummary is a product as shown in result lists and carousels
type ProductSummary struct {
	ID          string
	ImageURL    string
	Brand       string
	DisplayName string
}

// PageResult is one page of search results
type PageResult struct {
	Items       []ProductSummary
	HasNextPage bool
}

// CurrentUser is the logged-in user, nil when browsing anonymously
type CurrentUser struct {
	ID    string
	Name  string
	Token string
}

// StoreOffer is the price of a product at one store
type StoreOffer struct {
	StoreID   string
	StoreName string
	Price     decimal.Decimal
	Link      string
}

// Coordinates is a point on the map in degrees
type Coordinates struct {
	Lat float64
	Lng float64
}

// StoreLocation is the branch of a store closest to the user
type StoreLocation struct {
	StoreID    string
	DistanceKm float64
	At         Coordinates
}

// ProductDetail is the full product record shown on the product screen
type ProductDetail struct {
	ID       string
	Name     string
	Brand    string
	Category string
	ImageURL string
	Offers   []StoreOffer
}

// LowestOffer returns the cheapest offer, false if the product has none
func (p ProductDetail) LowestOffer() (StoreOffer, bool) {
	if len(p.Offers) == 0 {
		return StoreOffer{}, false
	}
	best := p.Offers[0]
	for _, o := range p.Offers[1:] {
		if o.Price.LessThan(best.Price) {
			best = o
		}
	}
	return best, true
}

// RatingBucket counts ratings with a given number of stars
type RatingBucket struct {
	Stars int
	Count int
}

// RatingSummary aggregates the ratings of a product
type RatingSummary struct {
	Average    float64
	Total      int
	Buckets    []RatingBucket
	UserRating int // 0 when the user has not rated
}

// Percentage returns the share of ratings in the bucket, in percent
func (r RatingSummary) Percentage(b RatingBucket) float64 {
	total := r.Total
	if total <= 0 {
		total = 1
	}
	return float64(b.Count) / float64(total) * 100
}

// PricePoint is one observed price of a product at a store
type PricePoint struct {
	StoreName string
	Date      time.Time
	Price     decimal.Decimal
}

// CategoryPricePoint is the average price of a category on a day
type CategoryPricePoint struct {
	Date         time.Time
	AveragePrice decimal.Decimal
}

// Category is a product category or subcategory
type Category struct {
	ID   int
	Name string
}

// AllSubcategoryID selects the root category's own product list
const AllSubcategoryID = 0

// RootCategories are the top-level categories offered on the home screen
var RootCategories = []Category{
	{ID: 1, Name: "Tenis"},
	{ID: 2, Name: "Supermercado"},
	{ID: 3, Name: "Tecnología"},
}
