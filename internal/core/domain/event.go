package domain

import (
	"fmt"
	"strings"
	"time"
)

// EventStatus represents the moderation stage of an event.
type EventStatus string

const (
	StatusPending  EventStatus = "pending"
	StatusApproved EventStatus = "approved"
	StatusRejected EventStatus = "rejected"
)

// validTransitions defines the allowed moderation transitions. Approved and
// rejected are terminal.
var validTransitions = map[EventStatus][]EventStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s EventStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Category is a label from the closed taxonomy shared by event creation and filtering.
type Category string

const (
	CategoryTechnology  Category = "Technology"
	CategoryCareer      Category = "Career"
	CategoryEnvironment Category = "Environment"
	CategoryArts        Category = "Arts"
)

// Categories lists the taxonomy in display order.
var Categories = []Category{CategoryTechnology, CategoryCareer, CategoryEnvironment, CategoryArts}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Event is the aggregate root: a campus activity with capacity and moderation status.
type Event struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Date            time.Time   `json:"date"`
	Location        string      `json:"location"`
	Capacity        int         `json:"capacity"`
	RegisteredCount int         `json:"registered_count"`
	OrganizerID     string      `json:"organizer_id"`
	OrganizerName   string      `json:"organizer_name"`
	Status          EventStatus `json:"status"`
	Category        Category    `json:"category"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Clone returns a copy that callers may hold without aliasing store state.
func (e *Event) Clone() *Event {
	c := *e
	return &c
}

// OwnedBy reports whether the actor is the organizer who created the event.
func (e *Event) OwnedBy(a Actor) bool {
	return a.Is(RoleOrganizer) && a.UserID == e.OrganizerID
}

// VisibleTo reports whether a can see the event. Unmoderated and rejected
// events are only shown to their organizer and to admins.
func (e *Event) VisibleTo(a Actor) bool {
	return e.Status == StatusApproved || e.OwnedBy(a) || a.Is(RoleAdmin)
}

// Full reports whether no seats are left.
func (e *Event) Full() bool {
	return e.RegisteredCount >= e.Capacity
}

// Registrable returns nil when a new registration may be accepted.
func (e *Event) Registrable() error {
	if e.Status != StatusApproved {
		return ErrInvalidState
	}
	if e.Full() {
		return ErrCapacityExceeded
	}
	return nil
}

// TransitionTo moves the event to next if the moderation state machine allows it.
func (e *Event) TransitionTo(next EventStatus) error {
	if !e.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w (from %s to %s)", ErrInvalidTransition, e.Status, next)
	}
	e.Status = next
	return nil
}

// EventPatch carries the organizer-editable fields. Nil means unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
	Capacity    *int
	Category    *Category
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		p.Location == nil && p.Capacity == nil && p.Category == nil
}

// ApplyPatch validates p against the current state and applies it. On error
// the event is left untouched. Status and RegisteredCount are never changed.
func (e *Event) ApplyPatch(p EventPatch) error {
	next := *e
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Location != nil {
		next.Location = strings.TrimSpace(*p.Location)
	}
	if p.Date != nil {
		next.Date = p.Date.UTC()
	}
	if p.Category != nil {
		next.Category = *p.Category
	}
	if p.Capacity != nil {
		next.Capacity = *p.Capacity
	}
	if err := next.ValidateDetails(); err != nil {
		return err
	}
	if next.Capacity < e.RegisteredCount {
		return Validationf("capacity %d is below the %d seats already taken", next.Capacity, e.RegisteredCount)
	}
	*e = next
	return nil
}

// ValidateDetails checks the fields an organizer controls.
func (e *Event) ValidateDetails() error {
	switch {
	case e.Title == "":
		return Validationf("title is required")
	case e.Description == "":
		return Validationf("description is required")
	case e.Location == "":
		return Validationf("location is required")
	case e.Category == "":
		return Validationf("category is required")
	case !e.Category.Valid():
		return Validationf("category must be one of: %s", joinCategories())
	case e.Capacity <= 0:
		return Validationf("capacity must be a positive integer")
	}
	return nil
}

func joinCategories() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// EventStats is computed from a live set of events on every call.
type EventStats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	Participants int `json:"participants"`
}

// Summarize aggregates the given events.
func Summarize(events []*Event) EventStats {
	var s EventStats
	for _, e := range events {
		s.Total++
		s.Participants += e.RegisteredCount
		switch e.Status {
		case StatusPending:
			s.Pending++
		case StatusApproved:
			s.Approved++
		case StatusRejected:
			s.Rejected++
		}
	}
	return s
}
