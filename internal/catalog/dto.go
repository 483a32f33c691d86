package catalog

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hunterprice/internal/domain"
)

// flexString accepts a JSON string or number. Ids and user ids come back
// as either depending on the endpoint.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// brandField is the "marca" of a product: a plain string in category and
// favorite listings, an object with a "valor" key in search results
type brandField string

func (b *brandField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Valor string `json:"valor"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*b = brandField(obj.Valor)
		return nil
	}
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	*b = brandField(s)
	return nil
}

// priceField is a price sent as a number or as a string like "$1,299.00"
type priceField struct {
	decimal.Decimal
	Valid bool
}

func (p *priceField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = priceField{}
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	d, err := parsePrice(raw)
	if err != nil {
		// Unparseable prices are shown as unknown rather than failing the page
		*p = priceField{}
		return nil
	}
	*p = priceField{Decimal: d, Valid: true}
	return nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	return decimal.NewFromString(cleaned)
}

// searchPageDTO is the body of /search
type searchPageDTO struct {
	Results     *[]productDTO `json:"results"`
	HasNextPage bool          `json:"hasNextPage"`
}

// productDTO is a product card in any listing. Search results use "_id",
// the other listings use "identifier".
type productDTO struct {
	MongoID     flexString `json:"_id"`
	Identifier  flexString `json:"identifier"`
	ImageURL    string     `json:"imagenurl"`
	Brand       brandField `json:"marca"`
	Value       string     `json:"valor"`
	DisplayName string     `json:"nombreDisplay"`
	Name        string     `json:"nombre"`
}

func (p productDTO) toDomain() domain.ProductSummary {
	id := string(p.MongoID)
	if id == "" {
		id = string(p.Identifier)
	}
	name := p.DisplayName
	if name == "" {
		name = p.Name
	}
	// Image matches carry the brand in a flat "valor"
	brand := string(p.Brand)
	if brand == "" {
		brand = p.Value
	}
	return domain.ProductSummary{
		ID:          id,
		ImageURL:    p.ImageURL,
		Brand:       brand,
		DisplayName: name,
	}
}

func toSummaries(dtos []productDTO) []domain.ProductSummary {
	items := make([]domain.ProductSummary, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return items
}

type suggestionDTO struct {
	DisplayName string `json:"nombreDisplay"`
}

// productDetailDTO is the body of /getSingleProduct. Tiendas maps a store
// id to its name; Precios and Referencias are keyed by store name.
type productDetailDTO struct {
	ProductID flexString `json:"productoid"`
	Name      string     `json:"Nombre"`
	ImageURL  string     `json:"ImagenURL"`
	Features  struct {
		Brand    string `json:"marca"`
		Category string `json:"categoria"`
	} `json:"Caracteristicas"`
	Stores     storeNames            `json:"Tiendas"`
	Prices     map[string]priceField `json:"Precios"`
	References map[string]string     `json:"Referencias"`
}

// storeNames decodes Tiendas, which is an object keyed by store id or, for
// some products, a plain array of names
type storeNames map[string]string

func (s *storeNames) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	out := storeNames{}
	if len(data) > 0 && data[0] == '[' {
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return err
		}
		for i, n := range names {
			out[strconv.Itoa(i)] = n
		}
		*s = out
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, v := range m {
		out[k] = v
	}
	*s = out
	return nil
}

func (p productDetailDTO) toDomain(fallbackID string) domain.ProductDetail {
	id := string(p.ProductID)
	if id == "" {
		id = fallbackID
	}

	storeIDs := make([]string, 0, len(p.Stores))
	for storeID := range p.Stores {
		storeIDs = append(storeIDs, storeID)
	}
	sort.Strings(storeIDs)

	offers := make([]domain.StoreOffer, 0, len(storeIDs))
	for _, storeID := range storeIDs {
		name := p.Stores[storeID]
		price := p.Prices[name]
		offers = append(offers, domain.StoreOffer{
			StoreID:   storeID,
			StoreName: name,
			Price:     price.Decimal,
			Link:      p.References[name],
		})
	}

	return domain.ProductDetail{
		ID:       id,
		Name:     p.Name,
		Brand:    p.Features.Brand,
		Category: p.Features.Category,
		ImageURL: p.ImageURL,
		Offers:   offers,
	}
}

type ratingSummaryDTO struct {
	Ratings []struct {
		Stars int `json:"calificacion"`
		Count int `json:"count"`
	} `json:"ratings"`
	Average      flexFloat `json:"average"`
	TotalRatings int       `json:"totalRatings"`
}

// flexFloat accepts a number or a numeric string; the rating average is
// sent as "4.50" by some API versions
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func (r ratingSummaryDTO) toDomain() domain.RatingSummary {
	counts := make(map[int]int, len(r.Ratings))
	for _, b := range r.Ratings {
		counts[b.Stars] += b.Count
	}
	// Always five buckets, best first
	buckets := make([]domain.RatingBucket, 0, 5)
	for stars := 5; stars >= 1; stars-- {
		buckets = append(buckets, domain.RatingBucket{Stars: stars, Count: counts[stars]})
	}
	return domain.RatingSummary{
		Average: float64(r.Average),
		Total:   r.TotalRatings,
		Buckets: buckets,
	}
}

type userRatingDTO struct {
	Rating int `json:"rating"`
}

type recommendationsDTO struct {
	Recommendations []productDTO `json:"recommendations"`
}

type pricePointDTO struct {
	StoreName string     `json:"store_name"`
	Date      string     `json:"fecha"`
	Price     priceField `json:"precio"`
}

type categoryPricePointDTO struct {
	Date         string     `json:"fecha"`
	AveragePrice priceField `json:"average_price"`
}

// parseDate accepts the timestamp and date-only forms the API uses
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type subcategoryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

type likedProductsDTO struct {
	LikedProducts []productDTO `json:"likedProducts"`
}

// nearestLocationDTO is the body of /nearest-location
type nearestLocationDTO struct {
	DistanceKm flexFloat `json:"distanceInKm"`
	Lng        flexFloat `json:"longitud"`
	Lat        flexFloat `json:"latitud"`
}

type verifyLikeDTO struct {
	Liked bool `json:"liked"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User struct {
		ID   flexString `json:"id"`
		Name string     `json:"nombre"`
	} `json:"user"`
	Token string `json:"token"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"nombre"`
	Gender   string `json:"genero"`
}

type likeRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}

type rateRequest struct {
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
}

type logSearchRequest struct {
	UserID     string `json:"usuario_id"`
	Identifier string `json:"identifier"`
}
