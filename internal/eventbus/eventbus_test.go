package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan string, 1)
	b.Subscribe(EventSearchCommitted, func(e DomainEvent) {
		got <- e.(SearchCommittedEvent).Query
	})

	b.Publish(SearchCommittedEvent{Query: "zapatos"})

	select {
	case q := <-got:
		assert.Equal(t, "zapatos", q)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	b := New()

	var opened, rated atomic.Int32
	b.Subscribe(EventProductOpened, func(DomainEvent) { opened.Add(1) })
	b.Subscribe(EventProductRated, func(DomainEvent) { rated.Add(1) })

	b.Publish(ProductOpenedEvent{ProductID: "p1"})
	b.Close()

	assert.Equal(t, int32(1), opened.Load())
	assert.Equal(t, int32(0), rated.Load())
}

func TestUnsubscribe(t *testing.T) {
	b := New()

	var calls atomic.Int32
	unsubscribe := b.Subscribe(EventLikeToggled, func(DomainEvent) { calls.Add(1) })
	unsubscribe()

	b.Publish(LikeToggledEvent{ProductID: "p1", Liked: true})
	b.Close()

	assert.Equal(t, int32(0), calls.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()

	var wg sync.WaitGroup
	wg.Add(1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { wg.Done() })

	b.Publish(ErrorEvent{Message: "x"})

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler not called")
	}
	b.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New()
	b.Close()
	require.NotPanics(t, b.Close)
}
