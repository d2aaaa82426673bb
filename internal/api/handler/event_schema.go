package handler

import "time"

// errorResponse mirrors the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Requests ---

type createEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,gt=0"`
	Category    string    `json:"category" validate:"required,oneof=Technology Career Environment Arts"`
}

// updateEventRequest only carries the fields being changed. Status and
// registered_count are not accepted.
type updateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location" validate:"omitempty,min=1"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gt=0"`
	Category    *string    `json:"category" validate:"omitempty,oneof=Technology Career Environment Arts"`
}

// --- Responses ---

type eventLinks struct {
	Self          string `json:"self"`
	Registrations string `json:"registrations,omitempty"`
}

type eventResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Date            time.Time  `json:"date"`
	Location        string     `json:"location"`
	Capacity        int        `json:"capacity"`
	RegisteredCount int        `json:"registered_count"`
	AvailableSpots  int        `json:"available_spots"`
	OrganizerID     string     `json:"organizer_id"`
	OrganizerName   string     `json:"organizer_name"`
	Status          string     `json:"status"`
	Category        string     `json:"category"`
	CreatedAt       time.Time  `json:"created_at"`
	Links           eventLinks `json:"_links"`
}

type statsResponse struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	Participants int `json:"participants"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
	Stats  *statsResponse  `json:"stats,omitempty"`
}

type registrationResponse struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
	QRCode       string    `json:"qr_code"`
}

type listRegistrationsResponse struct {
	Registrations []registrationResponse `json:"registrations"`
}

type ticketResponse struct {
	Registration registrationResponse `json:"registration"`
	Event        eventResponse        `json:"event"`
}

type dashboardResponse struct {
	Role          string                 `json:"role"`
	Events        []eventResponse        `json:"events"`
	Stats         statsResponse          `json:"stats"`
	Registrations []registrationResponse `json:"registrations,omitempty"`
}
