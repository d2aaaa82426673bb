package ports

import (
	"context"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// ListEventsFilter carries all query parameters for listing events.
type ListEventsFilter struct {
	Status      domain.EventStatus // optional
	OrganizerID string             // optional
	Category    domain.Category    // optional
	Search      string             // optional: case-insensitive substring of title or description
	Limit       int                // 0 = no limit
}

// EventMutation is applied to an event under the store's write lock. Returning
// an error aborts the write and leaves the stored event untouched.
type EventMutation func(ev *domain.Event) error

// EventRepository owns the event and registration collections. Every method
// returns copies; callers never alias stored state.
type EventRepository interface {
	// Create prepends ev so listings stay newest-first.
	Create(ctx context.Context, ev *domain.Event) error
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, error)

	// Update atomically loads the event, runs mutate on a copy and stores the
	// result only when mutate succeeds.
	Update(ctx context.Context, id string, mutate EventMutation) (*domain.Event, error)

	// Delete removes the event after check approves it, cascading to its
	// registrations. It returns the number of registrations removed.
	Delete(ctx context.Context, id string, check EventMutation) (int, error)

	// Register checks the event is registrable and the (user, event) pair is
	// new, then increments the seat count and appends reg in one step.
	Register(ctx context.Context, reg *domain.Registration) (*domain.Event, error)

	ListRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error)
	FindRegistration(ctx context.Context, userID, eventID string) (*domain.Registration, error)
	FindRegistrationByQRCode(ctx context.Context, qrCode string) (*domain.Registration, error)
}
