package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

func TestRegistrationHandler_RegisterAndTicket(t *testing.T) {
	h := NewRegistrationHandler(seededService(t))

	c, rec := newContext(http.MethodPost, "/v1/events/2/registrations", "", &student, "id", "2")
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	reg := decode[registrationResponse](t, rec.Body.Bytes())
	if reg.EventID != "2" || reg.UserID != "1" || !strings.HasPrefix(reg.QRCode, "EVENT_2_USER_1_") {
		t.Fatalf("unexpected registration: %+v", reg)
	}

	c, rec = newContext(http.MethodGet, "/v1/me/registrations", "", &student)
	if err := h.ListMine(c); err != nil {
		t.Fatalf("list mine: %v", err)
	}
	list := decode[listRegistrationsResponse](t, rec.Body.Bytes())
	if len(list.Registrations) != 2 || list.Registrations[1].EventID != "2" {
		t.Fatalf("expected seed registration then the new one, got %+v", list.Registrations)
	}

	c, rec = newContext(http.MethodGet, "/v1/me/registrations/2", "", &student, "event_id", "2")
	if err := h.GetMine(c); err != nil {
		t.Fatalf("get mine: %v", err)
	}
	if got := decode[registrationResponse](t, rec.Body.Bytes()); got.QRCode != reg.QRCode {
		t.Fatalf("ticket mismatch: %s != %s", got.QRCode, reg.QRCode)
	}

	c, rec = newContext(http.MethodGet, "/v1/tickets/"+reg.QRCode, "", &organizer, "qr_code", reg.QRCode)
	if err := h.VerifyTicket(c); err != nil {
		t.Fatalf("verify: %v", err)
	}
	ticket := decode[ticketResponse](t, rec.Body.Bytes())
	if ticket.Registration.ID != reg.ID || ticket.Event.ID != "2" || ticket.Event.RegisteredCount != 121 {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
}

func TestRegistrationHandler_RegisterErrors(t *testing.T) {
	h := NewRegistrationHandler(seededService(t))

	tests := []struct {
		name    string
		actor   domain.Actor
		eventID string
		want    error
	}{
		{"duplicate", student, "1", domain.ErrDuplicateRegistration},
		{"pending event", student, "3", domain.ErrInvalidState},
		{"rejected event", student, "5", domain.ErrInvalidState},
		{"unknown event", student, "404", domain.ErrEventNotFound},
		{"organizer", organizer, "2", domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/v1/events/"+tt.eventID+"/registrations", "", &tt.actor, "id", tt.eventID)
			if err := h.Register(c); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRegistrationHandler_TicketErrors(t *testing.T) {
	h := NewRegistrationHandler(seededService(t))

	c, _ := newContext(http.MethodGet, "/v1/me/registrations/2", "", &student, "event_id", "2")
	if err := h.GetMine(c); !errors.Is(err, domain.ErrRegistrationNotFound) {
		t.Fatalf("no registration: expected ErrRegistrationNotFound, got %v", err)
	}

	c, _ = newContext(http.MethodGet, "/v1/tickets/bogus", "", &admin, "qr_code", "bogus")
	if err := h.VerifyTicket(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown code: expected not found, got %v", err)
	}

	seedCode := domain.DefaultSeed(testNow).Registrations[0].QRCode
	other := domain.Actor{UserID: "99", Name: "Other", Role: domain.RoleOrganizer}
	c, _ = newContext(http.MethodGet, "/v1/tickets/"+seedCode, "", &other, "qr_code", seedCode)
	if err := h.VerifyTicket(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign organizer: expected ErrForbidden, got %v", err)
	}
}
