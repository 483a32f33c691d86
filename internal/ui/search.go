package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hunterprice/internal/eventbus"
	"hunterprice/internal/suggest"
	inputtypes "hunterprice/internal/ui/input/types"
)

// typed follows the search box text and restarts the debounce window
func (m *Model) typed(text string) tea.Cmd {
	if text == m.box.Text() {
		return nil
	}
	tag, ok := m.box.Type(text)
	if !ok {
		return nil
	}
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag}
	})
}

func (m *Model) debounceElapsed(msg debounceMsg) tea.Cmd {
	req, ok := m.box.Elapsed(msg.tag)
	if !ok || m.suggestions == nil {
		return nil
	}
	ctx := m.ctx
	src := m.suggestions
	return func() tea.Msg {
		return suggestionsMsg{result: suggest.Fetch(ctx, src, req)}
	}
}

func (m *Model) suggestionsArrived(msg suggestionsMsg) {
	r := msg.result
	if r.Err != nil && !errors.Is(r.Err, context.Canceled) {
		m.logger.Warn().Err(r.Err).Str("query", r.Query).Msg("suggestions failed")
	}
	if !m.box.Resolve(r) {
		m.logger.Debug().Str("query", r.Query).Uint64("generation", r.Generation).Msg("discarding stale suggestions")
	}
}

// commitSearch starts a new search for the highlighted suggestion or the
// typed text. Blank queries are ignored.
func (m *Model) commitSearch() tea.Cmd {
	q, ok := m.box.Commit()
	if !ok {
		return nil
	}
	if m.bus != nil {
		m.bus.Publish(eventbus.SearchCommittedEvent{Query: q})
	}

	m.resultsNav.Reset()
	m.resultsNav.SetTotal(0)
	cmds := []tea.Cmd{pageCmd(m.results.CommitQuery(q))}
	if m.screen != inputtypes.ScreenResults {
		m.pushHistory()
		cmds = append(cmds, m.show(inputtypes.ScreenResults))
	}
	return tea.Batch(cmds...)
}
