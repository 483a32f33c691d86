package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchCommitted EventType = "SearchCommitted"
	EventProductOpened   EventType = "ProductOpened"
	EventProductRated    EventType = "ProductRated"
	EventLikeToggled     EventType = "LikeToggled"
	EventSessionChanged  EventType = "SessionChanged"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchCommittedEvent is emitted when a query is submitted to the results screen
type SearchCommittedEvent struct {
	Query string
}

func (e SearchCommittedEvent) Type() EventType { return EventSearchCommitted }

// ProductOpenedEvent is emitted when the user opens a product
type ProductOpenedEvent struct {
	ProductID string
	User      *CurrentUser
}

func (e ProductOpenedEvent) Type() EventType { return EventProductOpened }

// ProductRatedEvent is emitted after a rating was accepted by the API
type ProductRatedEvent struct {
	ProductID string
	Stars     int
}

func (e ProductRatedEvent) Type() EventType { return EventProductRated }

// LikeToggledEvent is emitted after a like or dislike was accepted by the API
type LikeToggledEvent struct {
	ProductID string
	Liked     bool
}

func (e LikeToggledEvent) Type() EventType { return EventLikeToggled }

// SessionChangedEvent is emitted on login and logout
type SessionChangedEvent struct {
	User *CurrentUser // nil after logout
}

func (e SessionChangedEvent) Type() EventType { return EventSessionChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
