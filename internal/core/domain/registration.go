package domain

import (
	"fmt"
	"time"
)

// Registration binds one student to one event and carries the check-in token.
type Registration struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EventID      string    `json:"event_id"`
	RegisteredAt time.Time `json:"registered_at"`
	QRCode       string    `json:"qr_code"`
}

// NewQRCode builds the check-in token for a registration. Scanners must treat
// the value as an opaque key; the layout only guarantees uniqueness given that
// a user holds at most one registration per event.
func NewQRCode(eventID, userID string, at time.Time) string {
	return fmt.Sprintf("EVENT_%s_USER_%s_%d", eventID, userID, at.UnixMilli())
}

// Ticket pairs a registration with the event it admits to.
type Ticket struct {
	Registration Registration `json:"registration"`
	Event        Event        `json:"event"`
}
