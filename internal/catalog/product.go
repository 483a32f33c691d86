package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"hunterprice/internal/domain"
)

// ErrNotLoggedIn is returned by operations that need a user
var ErrNotLoggedIn = errors.New("debes iniciar sesión")

// ProductPage is everything the product screen shows
type ProductPage struct {
	Detail          domain.ProductDetail
	Ratings         domain.RatingSummary
	Recommendations []domain.ProductSummary
	Liked           bool
	// Nearest is the closest branch per store id, empty without a location
	Nearest map[string]domain.StoreLocation
}

// anonymousUserID is the id the API expects for anonymous lookups
const anonymousUserID = "0"

func (c *Client) userID() string {
	if c.user == nil || c.user.ID == "" {
		return anonymousUserID
	}
	return c.user.ID
}

// ProductPage loads the product, its ratings, the user's rating,
// recommendations and like state concurrently. Only the product itself is
// required; failures of the rest degrade to empty values.
func (c *Client) ProductPage(ctx context.Context, productID string) (ProductPage, error) {
	var page ProductPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		detail, err := c.ProductDetail(gctx, productID)
		if err != nil {
			return err
		}
		page.Detail = detail
		return nil
	})

	var (
		ratings    domain.RatingSummary
		userRating int
		recs       []domain.ProductSummary
		liked      bool
	)
	g.Go(func() error {
		r, err := c.Ratings(gctx, productID)
		if err != nil {
			c.logger.Warn().Err(err).Str("product", productID).Msg("loading ratings")
			return nil
		}
		ratings = r
		return nil
	})
	g.Go(func() error {
		r, err := c.UserRating(gctx, productID)
		if err != nil {
			c.logger.Warn().Err(err).Str("product", productID).Msg("loading user rating")
			return nil
		}
		userRating = r
		return nil
	})
	g.Go(func() error {
		r, err := c.Recommendations(gctx, productID)
		if err != nil {
			c.logger.Warn().Err(err).Str("product", productID).Msg("loading recommendations")
			return nil
		}
		recs = r
		return nil
	})
	if c.user != nil {
		g.Go(func() error {
			l, err := c.IsLiked(gctx, productID)
			if err != nil {
				c.logger.Warn().Err(err).Str("product", productID).Msg("verifying like")
				return nil
			}
			liked = l
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ProductPage{}, err
	}

	if len(ratings.Buckets) == 0 {
		ratings = ratingSummaryDTO{}.toDomain()
	}
	ratings.UserRating = userRating
	page.Ratings = ratings
	page.Recommendations = recs
	page.Liked = liked
	page.Nearest = c.locateOffers(ctx, page.Detail.Offers)
	return page, nil
}

// locateOffers finds the closest branch of every store with an offer.
// Stores whose lookup fails are left out.
func (c *Client) locateOffers(ctx context.Context, offers []domain.StoreOffer) map[string]domain.StoreLocation {
	if c.location == nil || len(offers) == 0 {
		return nil
	}

	var mu sync.Mutex
	nearest := make(map[string]domain.StoreLocation, len(offers))
	var g errgroup.Group
	for _, offer := range offers {
		g.Go(func() error {
			loc, err := c.NearestLocation(ctx, offer.StoreID, *c.location)
			if err != nil {
				c.logger.Warn().Err(err).Str("store", offer.StoreID).Msg("locating store")
				return nil
			}
			mu.Lock()
			nearest[offer.StoreID] = loc
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return nearest
}

// NearestLocation returns the branch of storeID closest to from
func (c *Client) NearestLocation(ctx context.Context, storeID string, from domain.Coordinates) (domain.StoreLocation, error) {
	params := url.Values{}
	params.Set("tienda", storeID)
	params.Set("longitud", strconv.FormatFloat(from.Lng, 'f', -1, 64))
	params.Set("latitud", strconv.FormatFloat(from.Lat, 'f', -1, 64))
	u := c.endpoint("nearest-location") + "/?" + params.Encode()

	var dto nearestLocationDTO
	if err := c.get(ctx, "nearest-location", u, &dto); err != nil {
		return domain.StoreLocation{}, err
	}
	return domain.StoreLocation{
		StoreID:    storeID,
		DistanceKm: float64(dto.DistanceKm),
		At:         domain.Coordinates{Lat: float64(dto.Lat), Lng: float64(dto.Lng)},
	}, nil
}

// ProductDetail fetches a single product with its store offers
func (c *Client) ProductDetail(ctx context.Context, productID string) (domain.ProductDetail, error) {
	var dto productDetailDTO
	if err := c.get(ctx, "getSingleProduct", c.endpoint("getSingleProduct", productID), &dto); err != nil {
		return domain.ProductDetail{}, err
	}
	return dto.toDomain(productID), nil
}

// Ratings fetches the rating distribution of a product
func (c *Client) Ratings(ctx context.Context, productID string) (domain.RatingSummary, error) {
	var dto ratingSummaryDTO
	if err := c.get(ctx, "productRating", c.endpoint("productRating", productID), &dto); err != nil {
		return domain.RatingSummary{}, err
	}
	return dto.toDomain(), nil
}

// UserRating returns the current user's rating of a product, 0 if none
func (c *Client) UserRating(ctx context.Context, productID string) (int, error) {
	params := url.Values{}
	params.Set("productId", productID)
	params.Set("userId", c.userID())
	u := c.endpoint("getUserRating") + "/?" + params.Encode()

	var dto userRatingDTO
	if err := c.get(ctx, "getUserRating", u, &dto); err != nil {
		return 0, err
	}
	return dto.Rating, nil
}

// Recommendations returns products similar to productID
func (c *Client) Recommendations(ctx context.Context, productID string) ([]domain.ProductSummary, error) {
	var dto recommendationsDTO
	if err := c.get(ctx, "recommendProducts", c.endpoint("recommendProducts", c.userID(), productID), &dto); err != nil {
		return nil, err
	}
	return toSummaries(dto.Recommendations), nil
}

// PriceHistory returns every recorded price of a product, oldest first.
// Points with an unreadable date or price are skipped.
func (c *Client) PriceHistory(ctx context.Context, productID string) ([]domain.PricePoint, error) {
	var dtos []pricePointDTO
	if err := c.get(ctx, "getHistoryPrice", c.endpoint("getHistoryPrice", productID), &dtos); err != nil {
		return nil, err
	}

	points := make([]domain.PricePoint, 0, len(dtos))
	for _, d := range dtos {
		date, ok := parseDate(d.Date)
		if !ok || !d.Price.Valid {
			continue
		}
		points = append(points, domain.PricePoint{StoreName: d.StoreName, Date: date, Price: d.Price.Decimal})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

// IsLiked reports whether the current user has liked the product
func (c *Client) IsLiked(ctx context.Context, productID string) (bool, error) {
	if c.user == nil {
		return false, nil
	}
	var dto verifyLikeDTO
	if err := c.get(ctx, "verifyLike", c.endpoint("verifyLike", c.user.ID, productID), &dto); err != nil {
		return false, err
	}
	return dto.Liked, nil
}

// SetLiked likes or unlikes a product for the current user
func (c *Client) SetLiked(ctx context.Context, productID string, liked bool) error {
	if c.user == nil {
		return ErrNotLoggedIn
	}
	op := "likeProduct"
	if !liked {
		op = "dislikeProduct"
	}
	return c.post(ctx, op, c.endpoint(op), likeRequest{UserID: c.user.ID, ProductID: productID}, nil)
}

// Rate records the current user's 1-5 star rating of a product
func (c *Client) Rate(ctx context.Context, productID string, stars int) error {
	if c.user == nil {
		return ErrNotLoggedIn
	}
	if stars < 1 || stars > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", stars)
	}
	return c.post(ctx, "rateProduct", c.endpoint("rateProduct"),
		rateRequest{ProductID: productID, UserID: c.user.ID, Rating: stars}, nil)
}

// LogProductView records that the current user opened a product. Anonymous
// views are not recorded.
func (c *Client) LogProductView(ctx context.Context, productID string) error {
	if c.user == nil {
		return nil
	}
	return c.post(ctx, "logUserSearch", c.endpoint("logUserSearch"),
		logSearchRequest{UserID: c.user.ID, Identifier: productID}, nil)
}
