package catalog

import (
	"context"

	"hunterprice/internal/domain"
)

// Favorites returns the current user's liked products, or the most viewed
// products when nobody is logged in
func (c *Client) Favorites(ctx context.Context) ([]domain.ProductSummary, error) {
	if c.user == nil {
		return c.MostViewed(ctx)
	}
	return c.LikedProducts(ctx)
}

// LikedProducts returns the products the current user has liked
func (c *Client) LikedProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	if c.user == nil {
		return nil, ErrNotLoggedIn
	}
	var dto likedProductsDTO
	if err := c.get(ctx, "getUserLikedProducts", c.endpoint("getUserLikedProducts", c.user.ID), &dto); err != nil {
		return nil, err
	}
	return toSummaries(dto.LikedProducts), nil
}

// MostViewed returns the most viewed products across all users
func (c *Client) MostViewed(ctx context.Context) ([]domain.ProductSummary, error) {
	var dtos []productDTO
	if err := c.get(ctx, "getMostViewed", c.endpoint("getMostViewed"), &dtos); err != nil {
		return nil, err
	}
	return toSummaries(dtos), nil
}
