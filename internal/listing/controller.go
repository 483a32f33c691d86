package listing

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"hunterprice/internal/domain"
	"hunterprice/internal/log"
)

// PageFetcher retrieves one page of search results
type PageFetcher interface {
	SearchPage(ctx context.Context, query string, page, pageSize int) (domain.PageResult, error)
}

// Command performs a page request off the event loop. Its Settled value
// must be handed back to Controller.Apply on the event loop.
type Command func() Settled

// Controller owns the list State of one results screen. It is not safe for
// concurrent use; all calls come from the UI event loop.
type Controller struct {
	state    State
	fetcher  PageFetcher
	pageSize int

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger
}

// NewController creates a controller whose requests derive from parent
func NewController(parent context.Context, fetcher PageFetcher, pageSize int) *Controller {
	return &Controller{
		fetcher:  fetcher,
		pageSize: pageSize,
		parent:   parent,
		logger:   log.For("listing"),
	}
}

// State returns the current list
func (c *Controller) State() State {
	return c.state
}

// CommitQuery resets the list for q and returns the seed page command.
// Requests of the previous query are cancelled.
func (c *Controller) CommitQuery(q string) Command {
	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithCancel(c.parent)

	next, req := c.state.CommitQuery(q)
	c.state = next
	c.logger.Debug().Str("query", q).Uint64("generation", next.Generation).Msg("query committed")
	return c.command(*req)
}

// ApproachingEnd returns the next page command, or nil when no page
// should be requested
func (c *Controller) ApproachingEnd() Command {
	next, req := c.state.ApproachingEnd()
	c.state = next
	if req == nil {
		return nil
	}
	c.logger.Debug().Str("query", req.Query).Int("page", req.Page).Msg("requesting next page")
	return c.command(*req)
}

// Apply folds a settled request into the list. It reports whether the list
// changed.
func (c *Controller) Apply(s Settled) bool {
	next, applied := c.state.Settle(s)
	if !applied {
		c.logger.Debug().
			Str("query", s.Query).
			Int("page", s.Page).
			Uint64("generation", s.Generation).
			Msg("discarding stale page")
		return false
	}
	if s.Err != nil && !errors.Is(s.Err, context.Canceled) {
		c.logger.Warn().Err(s.Err).Str("query", s.Query).Int("page", s.Page).Msg("page fetch failed")
	}
	c.state = next
	return true
}

// Close cancels any request in flight
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) command(req Request) Command {
	ctx := c.ctx
	fetcher := c.fetcher
	size := c.pageSize
	return func() Settled {
		res, err := fetcher.SearchPage(ctx, req.Query, req.Page, size)
		return Settled{Request: req, Result: res, Err: err}
	}
}
