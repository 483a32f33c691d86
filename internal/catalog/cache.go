package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"hunterprice/internal/domain"
)

// SuggestionSource is anything that can produce autocomplete candidates
type SuggestionSource interface {
	Suggestions(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// CachedSuggestions memoizes successful suggestion lookups for a while.
// Failures are not cached.
type CachedSuggestions struct {
	source SuggestionSource
	cache  *expirable.LRU[string, []domain.Suggestion]
}

// NewCachedSuggestions wraps source with an LRU of the given size and TTL.
// A size of zero disables caching.
func NewCachedSuggestions(source SuggestionSource, size int, ttl time.Duration) *CachedSuggestions {
	cs := &CachedSuggestions{source: source}
	if size > 0 {
		cs.cache = expirable.NewLRU[string, []domain.Suggestion](size, nil, ttl)
	}
	return cs
}

// Suggestions returns cached candidates for query or asks the source
func (cs *CachedSuggestions) Suggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	if cs.cache == nil {
		return cs.source.Suggestions(ctx, query)
	}

	key := strings.ToLower(strings.TrimSpace(query))
	if hit, ok := cs.cache.Get(key); ok {
		return hit, nil
	}

	got, err := cs.source.Suggestions(ctx, query)
	if err != nil {
		return nil, err
	}
	cs.cache.Add(key, got)
	return got, nil
}

// Len reports how many queries are cached
func (cs *CachedSuggestions) Len() int {
	if cs.cache == nil {
		return 0
	}
	return cs.cache.Len()
}
