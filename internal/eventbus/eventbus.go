package eventbus

import (
	"runtime/debug"
	"sync"

	"hunterprice/internal/domain"
	"hunterprice/internal/log"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchCommitted = domain.EventSearchCommitted
	EventProductOpened   = domain.EventProductOpened
	EventProductRated    = domain.EventProductRated
	EventLikeToggled     = domain.EventLikeToggled
	EventSessionChanged  = domain.EventSessionChanged
	EventError           = domain.EventError
)

// Re-export domain event types
type SearchCommittedEvent = domain.SearchCommittedEvent
type ProductOpenedEvent = domain.ProductOpenedEvent
type ProductRatedEvent = domain.ProductRatedEvent
type LikeToggledEvent = domain.LikeToggledEvent
type SessionChangedEvent = domain.SessionChangedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	inflight  sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	logger := log.For("eventbus")
	logger.Debug().Str("event", string(event.Type())).Msg("publishing event")

	select {
	case b.eventChan <- event:
	default:
		logger.Warn().Str("event", string(event.Type())).Msg("event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and waits for running handlers
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
		b.inflight.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			// Deliver what was already published before shutting down
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.inflight.Add(1)
		// Handlers may block on network calls, so each runs on its own goroutine
		go func(h EventHandler) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					logger := log.For("eventbus")
					logger.Error().
						Str("event", string(event.Type())).
						Interface("panic", r).
						Bytes("stack", debug.Stack()).
						Msg("event handler panic")
				}
			}()
			h(event)
		}(s.handler)
	}
}
