// Package activity reacts to what the user does in the storefront: it keeps
// the recent searches and reports product views of logged-in users.
package activity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hunterprice/internal/domain"
	"hunterprice/internal/eventbus"
	"hunterprice/internal/log"
)

// DefaultRecentLimit is the number of searches kept
const DefaultRecentLimit = 8

// ViewLogFunc reports that user opened a product
type ViewLogFunc func(ctx context.Context, user *domain.CurrentUser, productID string) error

// Tracker subscribes to storefront events
type Tracker interface {
	// Recent returns the latest committed searches, newest first
	Recent() []string
	Close()
}

type tracker struct {
	logView ViewLogFunc
	timeout time.Duration
	limit   int
	logger  zerolog.Logger

	mu     sync.RWMutex
	recent []string

	unsubscribe []func()
}

// NewTracker subscribes a tracker to bus. logView may be nil.
func NewTracker(bus eventbus.EventBus, logView ViewLogFunc, timeout time.Duration) Tracker {
	t := &tracker{
		logView: logView,
		timeout: timeout,
		limit:   DefaultRecentLimit,
		logger:  log.For("activity"),
	}

	t.unsubscribe = append(t.unsubscribe,
		bus.Subscribe(eventbus.EventSearchCommitted, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SearchCommittedEvent); ok {
				t.addSearch(event.Query)
			}
		}),
		bus.Subscribe(eventbus.EventProductOpened, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ProductOpenedEvent); ok {
				t.productOpened(event)
			}
		}),
		bus.Subscribe(eventbus.EventProductRated, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ProductRatedEvent); ok {
				t.logger.Info().Str("product", event.ProductID).Int("stars", event.Stars).Msg("product rated")
			}
		}),
		bus.Subscribe(eventbus.EventLikeToggled, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.LikeToggledEvent); ok {
				t.logger.Info().Str("product", event.ProductID).Bool("liked", event.Liked).Msg("like toggled")
			}
		}),
		bus.Subscribe(eventbus.EventSessionChanged, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SessionChangedEvent); ok {
				if event.User == nil {
					t.logger.Info().Msg("browsing anonymously")
					return
				}
				t.logger.Info().Str("user", event.User.ID).Msg("session started")
			}
		}),
		bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ErrorEvent); ok {
				t.logger.Error().Err(event.Err).Msg(event.Message)
			}
		}),
	)
	return t
}

func (t *tracker) addSearch(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, 0, t.limit)
	out = append(out, q)
	for _, prev := range t.recent {
		if len(out) == t.limit {
			break
		}
		if !strings.EqualFold(prev, q) {
			out = append(out, prev)
		}
	}
	t.recent = out
}

func (t *tracker) productOpened(e eventbus.ProductOpenedEvent) {
	if e.User == nil || t.logView == nil {
		return
	}
	ctx := context.Background()
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	if err := t.logView(ctx, e.User, e.ProductID); err != nil {
		t.logger.Warn().Err(err).Str("product", e.ProductID).Msg("failed to log product view")
		return
	}
	t.logger.Debug().Str("product", e.ProductID).Str("user", e.User.ID).Msg("product view logged")
}

func (t *tracker) Recent() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.recent...)
}

func (t *tracker) Close() {
	for _, unsub := range t.unsubscribe {
		unsub()
	}
	t.unsubscribe = nil
}
