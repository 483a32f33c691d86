// Package listing grows a product list page by page for one committed query.
//
// State holds the list and its transitions. Every transition is a pure
// function from one State to the next plus, optionally, the page Request
// the caller must perform. Controller wraps a State with the fetcher and the
// cancellation of in-flight requests.
package listing

import "hunterprice/internal/domain"

// Phase is the coarse state of the list
type Phase int

const (
	// Idle: no query committed yet
	Idle Phase = iota
	// Loading: the seed page of the active query is in flight
	Loading
	// Loaded: the seed page arrived; more pages may follow
	Loaded
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// State is the list for the active query
type State struct {
	Phase    Phase
	Query    string
	Items    []domain.ProductSummary
	NextPage int
	HasNext  bool
	// Fetching is true from issuing a page request until it settles
	Fetching bool
	// Err is the failure of the last settled request, nil after a success
	Err error
	// Generation increases on every committed query; settlements from an
	// older generation are ignored
	Generation uint64
}

// Request asks for one page of the active query
type Request struct {
	Generation uint64
	Query      string
	Page       int
}

// Settled is the outcome of a Request
type Settled struct {
	Request
	Result domain.PageResult
	Err    error
}

// CommitQuery starts a fresh list for q. The items are dropped at once and
// the seed page is requested; whatever was in flight becomes stale.
func (s State) CommitQuery(q string) (State, *Request) {
	next := State{
		Phase:      Loading,
		Query:      q,
		Items:      nil,
		NextPage:   0,
		Fetching:   true,
		Generation: s.Generation + 1,
	}
	return next, &Request{Generation: next.Generation, Query: q, Page: 0}
}

// ApproachingEnd requests the next page when the list is loaded, more pages
// exist and nothing is in flight. Otherwise it changes nothing.
func (s State) ApproachingEnd() (State, *Request) {
	if s.Phase != Loaded || !s.HasNext || s.Fetching {
		return s, nil
	}
	s.Fetching = true
	s.Err = nil
	return s, &Request{Generation: s.Generation, Query: s.Query, Page: s.NextPage}
}

// Settle folds a finished request into the state. It reports false when the
// settlement was stale and ignored.
func (s State) Settle(r Settled) (State, bool) {
	if r.Generation != s.Generation || r.Query != s.Query || !s.Fetching || r.Page != s.NextPage {
		return s, false
	}
	s.Fetching = false
	s.Err = r.Err

	if r.Err != nil {
		// HasNext is kept so the next ApproachingEnd retries the same page
		return s, true
	}

	if r.Page == 0 {
		s.Phase = Loaded
		s.Items = append([]domain.ProductSummary(nil), r.Result.Items...)
	} else {
		items := make([]domain.ProductSummary, 0, len(s.Items)+len(r.Result.Items))
		items = append(items, s.Items...)
		s.Items = append(items, r.Result.Items...)
	}
	s.NextPage = r.Page + 1
	s.HasNext = r.Result.HasNextPage
	return s, true
}

// SeedFailed reports whether the seed page of the active query failed. The
// list stays empty until the query is committed again.
func (s State) SeedFailed() bool {
	return s.Phase == Loading && !s.Fetching && s.Err != nil
}

// Empty reports whether the seed page arrived without any result
func (s State) Empty() bool {
	return s.Phase == Loaded && len(s.Items) == 0
}
