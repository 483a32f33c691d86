package catalog

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"hunterprice/internal/domain"
)

// DefaultPageSize is the number of results requested per search page
const DefaultPageSize = 20

// Suggestions returns autocomplete candidates for a partial query. An empty
// query yields no suggestions without touching the network.
func (c *Client) Suggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	var dtos []suggestionDTO
	if err := c.get(ctx, "autocomplete", c.endpoint("autocomplete", query), &dtos); err != nil {
		return nil, err
	}

	out := make([]domain.Suggestion, 0, len(dtos))
	for _, d := range dtos {
		if d.DisplayName == "" {
			continue
		}
		out = append(out, domain.Suggestion{DisplayName: d.DisplayName})
	}
	return out, nil
}

// SearchPage fetches one page of results. A body without "results" is an
// empty final page.
//
// Transient failures are retried inside the call, so the listing still sees
// exactly one settlement for the page it asked for.
func (c *Client) SearchPage(ctx context.Context, query string, page, pageSize int) (domain.PageResult, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	params := url.Values{}
	params.Set("searchText", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	u := c.endpoint("search") + "/?" + params.Encode()

	var dto searchPageDTO
	if err := c.get(ctx, "search", u, &dto); err != nil {
		return domain.PageResult{}, err
	}
	if dto.Results == nil {
		return domain.PageResult{Items: []domain.ProductSummary{}}, nil
	}
	return domain.PageResult{
		Items:       toSummaries(*dto.Results),
		HasNextPage: dto.HasNextPage,
	}, nil
}
