// Package suggest drives the autocomplete list under the search box.
//
// Keystrokes go through Box.Type, which restarts a debounce window and
// returns the tag of the timer to schedule. When a timer expires the caller
// hands its tag to Box.Elapsed; only the newest tag yields a Request. A
// Result is shown only if it answers the newest Request and the box still
// holds the same text.
package suggest

import (
	"context"
	"strings"
	"time"

	"hunterprice/internal/domain"
)

// DefaultDebounce is the keystroke silence required before fetching
const DefaultDebounce = 300 * time.Millisecond

// Source produces autocomplete candidates
type Source interface {
	Suggestions(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// Request is one suggestion lookup
type Request struct {
	Generation uint64
	Query      string
}

// Result is the answer to a Request
type Result struct {
	Request
	Items []domain.Suggestion
	Err   error
}

// Fetch performs req against src
func Fetch(ctx context.Context, src Source, req Request) Result {
	items, err := src.Suggestions(ctx, req.Query)
	return Result{Request: req, Items: items, Err: err}
}

// Box is the state of the search box suggestions. It is not safe for
// concurrent use.
type Box struct {
	text       string
	tag        uint64
	generation uint64
	items      []domain.Suggestion
	selected   int // -1 when nothing is highlighted
	loading    bool
	limit      int
}

// NewBox creates a box showing at most limit suggestions (0 for no limit)
func NewBox(limit int) *Box {
	return &Box{selected: -1, limit: limit}
}

// Text returns the current contents of the search box
func (b *Box) Text() string {
	return b.text
}

// Type records the new text of the box. It returns the tag of a debounce
// timer to schedule, or false when the text is blank: the list is cleared
// at once and pending answers become stale.
func (b *Box) Type(text string) (uint64, bool) {
	b.text = text
	b.tag++
	if strings.TrimSpace(text) == "" {
		b.generation++
		b.items = nil
		b.selected = -1
		b.loading = false
		return 0, false
	}
	return b.tag, true
}

// Elapsed handles an expired debounce timer. Only the timer of the last
// keystroke produces a Request.
func (b *Box) Elapsed(tag uint64) (Request, bool) {
	if tag != b.tag || strings.TrimSpace(b.text) == "" {
		return Request{}, false
	}
	b.generation++
	b.loading = true
	return Request{Generation: b.generation, Query: strings.TrimSpace(b.text)}, true
}

// Resolve applies a Result and reports whether it was shown. Answers to an
// older request, or to text the box no longer holds, are dropped. A failed
// lookup shows no suggestions.
func (b *Box) Resolve(r Result) bool {
	if r.Generation != b.generation || r.Query != strings.TrimSpace(b.text) {
		return false
	}
	b.loading = false
	items := r.Items
	if r.Err != nil {
		items = nil
	}
	if b.limit > 0 && len(items) > b.limit {
		items = items[:b.limit]
	}
	b.items = items
	b.selected = -1
	return true
}

// Clear empties the box and drops pending answers
func (b *Box) Clear() {
	b.Type("")
}

// Dismiss hides the suggestions but keeps the text
func (b *Box) Dismiss() {
	b.tag++
	b.generation++
	b.items = nil
	b.selected = -1
	b.loading = false
}

// Items returns the visible suggestions
func (b *Box) Items() []domain.Suggestion {
	return b.items
}

// Loading reports whether a lookup for the current text is in flight
func (b *Box) Loading() bool {
	return b.loading
}

// Move changes the highlighted suggestion by delta, wrapping around.
// Moving up from the first suggestion returns to the text box.
func (b *Box) Move(delta int) {
	n := len(b.items)
	if n == 0 {
		b.selected = -1
		return
	}
	// Positions are -1 (the text box) through n-1
	pos := b.selected + 1 + delta
	size := n + 1
	pos = ((pos % size) + size) % size
	b.selected = pos - 1
}

// Selected returns the highlighted suggestion
func (b *Box) Selected() (domain.Suggestion, bool) {
	if b.selected < 0 || b.selected >= len(b.items) {
		return domain.Suggestion{}, false
	}
	return b.items[b.selected], true
}

// SelectedIndex returns the highlighted position, -1 for none
func (b *Box) SelectedIndex() int {
	return b.selected
}

// Commit returns the query to search for: the highlighted suggestion or
// else the typed text. The suggestions are dismissed.
func (b *Box) Commit() (string, bool) {
	q := strings.TrimSpace(b.text)
	if s, ok := b.Selected(); ok {
		q = s.DisplayName
	}
	b.Dismiss()
	if q == "" {
		return "", false
	}
	return q, true
}
