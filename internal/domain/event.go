package domain

import (
	"context"
	"time"
)

// Event represents an event guests are invited to.
// swagger:model Event
type Event struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Date      *time.Time `json:"date"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewEvent returns a new Event. ID is set by the repository on create.
func NewEvent(name string, date *time.Time, createdAt time.Time) *Event {
	return &Event{
		Name:      name,
		Date:      date,
		CreatedAt: createdAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// List returns all events, most recently created first.
	List(ctx context.Context) ([]*Event, error)
}

// EventService defines event-facing business operations.
type EventService interface {
	// CreateEvent creates an event. Returns ErrInvalidInput if name is blank.
	CreateEvent(ctx context.Context, name string, date *time.Time) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
}
