package suggest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunterprice/internal/domain"
)

func items(names ...string) []domain.Suggestion {
	out := make([]domain.Suggestion, len(names))
	for i, n := range names {
		out[i] = domain.Suggestion{DisplayName: n}
	}
	return out
}

func TestOnlyLastKeystrokeFetches(t *testing.T) {
	b := NewBox(0)

	var tags []uint64
	for _, text := range []string{"s", "so", "sof"} {
		tag, ok := b.Type(text)
		require.True(t, ok)
		tags = append(tags, tag)
	}

	var reqs []Request
	for _, tag := range tags {
		if req, ok := b.Elapsed(tag); ok {
			reqs = append(reqs, req)
		}
	}
	require.Len(t, reqs, 1)
	assert.Equal(t, "sof", reqs[0].Query)
}

type recordingSource struct {
	mu      sync.Mutex
	queries []string
}

func (r *recordingSource) Suggestions(_ context.Context, q string) ([]domain.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, q)
	return items(q + " 1"), nil
}

// TestDebounceWithTimers types three keys 50ms apart with a 300ms window,
// delivering expired timers to a single loop the way the UI does.
func TestDebounceWithTimers(t *testing.T) {
	const window = 300 * time.Millisecond
	b := NewBox(0)
	src := &recordingSource{}
	expired := make(chan uint64, 8)

	for _, text := range []string{"s", "so", "sof"} {
		tag, ok := b.Type(text)
		require.True(t, ok)
		time.AfterFunc(window, func() { expired <- tag })
		time.Sleep(50 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for seen := 0; seen < 3; seen++ {
		select {
		case tag := <-expired:
			if req, ok := b.Elapsed(tag); ok {
				assert.True(t, b.Resolve(Fetch(context.Background(), src, req)))
			}
		case <-deadline:
			t.Fatal("timers did not fire")
		}
	}

	assert.Equal(t, []string{"sof"}, src.queries)
	assert.Equal(t, items("sof 1"), b.Items())
}

func TestLateAnswerForOldQueryIsDropped(t *testing.T) {
	b := NewBox(0)

	tag, _ := b.Type("shoe")
	shoe, ok := b.Elapsed(tag)
	require.True(t, ok)

	tag, _ = b.Type("shirt")
	shirt, ok := b.Elapsed(tag)
	require.True(t, ok)

	// shirt resolves first, shoe arrives afterwards
	assert.True(t, b.Resolve(Result{Request: shirt, Items: items("Shirt A")}))
	assert.False(t, b.Resolve(Result{Request: shoe, Items: items("Shoe A")}))
	assert.Equal(t, items("Shirt A"), b.Items())
}

func TestAnswerForEditedTextIsDropped(t *testing.T) {
	b := NewBox(0)
	tag, _ := b.Type("zap")
	req, _ := b.Elapsed(tag)

	// The user keeps typing; the debounce for "zapa" has not expired yet
	b.Type("zapa")
	assert.False(t, b.Resolve(Result{Request: req, Items: items("Zapato")}))
	assert.Empty(t, b.Items())
}

func TestBlankTextClearsImmediately(t *testing.T) {
	b := NewBox(0)
	tag, _ := b.Type("zap")
	req, _ := b.Elapsed(tag)
	require.True(t, b.Resolve(Result{Request: req, Items: items("Zapato")}))

	tag2, _ := b.Type("zapa")
	pending, _ := b.Elapsed(tag2)

	_, ok := b.Type("   ")
	assert.False(t, ok)
	assert.Empty(t, b.Items())
	assert.False(t, b.Loading())

	_, ok = b.Elapsed(tag2)
	assert.False(t, ok)
	assert.False(t, b.Resolve(Result{Request: pending, Items: items("late")}))
	assert.Empty(t, b.Items())
}

func TestFailureShowsNothing(t *testing.T) {
	b := NewBox(0)
	tag, _ := b.Type("zap")
	req, _ := b.Elapsed(tag)
	assert.True(t, b.Loading())

	assert.True(t, b.Resolve(Result{Request: req, Err: errors.New("down")}))
	assert.Empty(t, b.Items())
	assert.False(t, b.Loading())
}

func TestLimit(t *testing.T) {
	b := NewBox(2)
	tag, _ := b.Type("a")
	req, _ := b.Elapsed(tag)
	b.Resolve(Result{Request: req, Items: items("a1", "a2", "a3")})
	assert.Equal(t, items("a1", "a2"), b.Items())
}

func TestMoveAndCommit(t *testing.T) {
	b := NewBox(0)
	tag, _ := b.Type(" zapa ")
	req, _ := b.Elapsed(tag)
	assert.Equal(t, "zapa", req.Query)
	b.Resolve(Result{Request: req, Items: items("Zapato Nike", "Zapato Puma")})

	_, ok := b.Selected()
	assert.False(t, ok)

	b.Move(1)
	b.Move(1)
	s, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "Zapato Puma", s.DisplayName)

	// Wraps back to the text box, then to the last suggestion
	b.Move(1)
	assert.Equal(t, -1, b.SelectedIndex())
	b.Move(-1)
	assert.Equal(t, 1, b.SelectedIndex())

	q, ok := b.Commit()
	require.True(t, ok)
	assert.Equal(t, "Zapato Puma", q)
	assert.Empty(t, b.Items())
	assert.Equal(t, " zapa ", b.Text())
}

func TestCommitTypedText(t *testing.T) {
	b := NewBox(0)
	b.Type("  camisa ")
	q, ok := b.Commit()
	require.True(t, ok)
	assert.Equal(t, "camisa", q)

	b.Clear()
	_, ok = b.Commit()
	assert.False(t, ok)
}

func TestCommitCancelsPendingDebounce(t *testing.T) {
	b := NewBox(0)
	tag, ok := b.Type("zap")
	require.True(t, ok)

	_, ok = b.Commit()
	require.True(t, ok)

	_, ok = b.Elapsed(tag)
	assert.False(t, ok)
	assert.False(t, b.Loading())
	assert.Empty(t, b.Items())
}
