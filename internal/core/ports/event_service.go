package ports

import (
	"context"
	"time"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// CreateEventInput is the DTO passed from the transport layer to EventService.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	Capacity    int
	Category    string
}

// Dashboard is the role-specific landing view.
type Dashboard struct {
	Role          domain.Role            `json:"role"`
	Events        []*domain.Event        `json:"events"`
	Stats         domain.EventStats      `json:"stats"`
	Registrations []*domain.Registration `json:"registrations,omitempty"`
}

// EventService exposes the event lifecycle and registration rules.
type EventService interface {
	ListEvents(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, error)
	GetEvent(ctx context.Context, actor domain.Actor, id string) (*domain.Event, error)
	CreateEvent(ctx context.Context, actor domain.Actor, input CreateEventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, actor domain.Actor, id string, patch domain.EventPatch) (*domain.Event, error)
	DeleteEvent(ctx context.Context, actor domain.Actor, id string) error
	SetEventStatus(ctx context.Context, actor domain.Actor, id string, status domain.EventStatus) (*domain.Event, error)

	Register(ctx context.Context, actor domain.Actor, eventID string) (*domain.Registration, error)
	ListRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error)
	GetRegistration(ctx context.Context, actor domain.Actor, eventID string) (*domain.Registration, error)
	VerifyTicket(ctx context.Context, actor domain.Actor, qrCode string) (*domain.Ticket, error)

	Stats(ctx context.Context, filter ListEventsFilter) (domain.EventStats, error)
	Dashboard(ctx context.Context, actor domain.Actor) (*Dashboard, error)
}
