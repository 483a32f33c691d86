package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hunterprice/internal/listing"
	inputtypes "hunterprice/internal/ui/input/types"
	"hunterprice/internal/ui/views"
)

// pageCmd runs a page request off the event loop
func pageCmd(c listing.Command) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		return pageMsg{settled: c()}
	}
}

func (m *Model) pageArrived(msg pageMsg) tea.Cmd {
	if !m.results.Apply(msg.settled) {
		return nil
	}
	st := m.results.State()
	m.resultsNav.SetTotal(len(st.Items))

	if err := msg.settled.Err; err != nil {
		// No automatic retry: the next scroll asks for the page again
		if msg.settled.Page > 0 && !errors.Is(err, context.Canceled) {
			return m.setStatus("No se pudieron cargar más resultados.", views.StatusWarning)
		}
		return nil
	}
	// A short page may not fill the viewport, so check proximity again
	return m.observeResults()
}

// observeResults hands the current viewport geometry to the scroll signal
func (m *Model) observeResults() tea.Cmd {
	if m.screen != inputtypes.ScreenResults || m.lease == 0 {
		return nil
	}
	frame, ok := m.signal.Observe(m.lease, m.resultsNav.Geometry())
	if !ok {
		return nil
	}
	return tea.Tick(m.signal.Interval(), func(time.Time) tea.Msg {
		return scrollFrameMsg{frame: frame}
	})
}

func (m *Model) scrollFrame(msg scrollFrameMsg) tea.Cmd {
	if !m.signal.Fire(msg.frame) {
		return nil
	}
	return pageCmd(m.results.ApproachingEnd())
}

// retryResults searches the active query again after a failed first page
func (m *Model) retryResults() tea.Cmd {
	st := m.results.State()
	if st.SeedFailed() {
		m.resultsNav.Reset()
		return pageCmd(m.results.CommitQuery(st.Query))
	}
	return m.observeResults()
}

func (m *Model) resultsView() views.ResultsState {
	st := m.results.State()
	start, end := m.resultsNav.Window()
	return views.ResultsState{
		ListState: views.ListState{
			Items:    st.Items,
			Selected: m.resultsNav.SelectedIndex(),
			Start:    start,
			End:      end,
			Loading:  st.Phase == listing.Loading && st.Err == nil,
			Query:    st.Query,
		},
		Fetching:   st.Fetching,
		HasNext:    st.HasNext,
		SeedFailed: st.SeedFailed(),
		Empty:      st.Empty(),
	}
}
