package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
	"github.com/campusevents/campus-hub/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs & helpers
// ---------------------------------------------------------------------------

type stubAudit struct {
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(e domain.AuditEntry) {
	a.entries = append(a.entries, e)
}

var (
	organizer  = domain.Actor{UserID: "org-1", Name: "Jane Smith", Role: domain.RoleOrganizer}
	organizer2 = domain.Actor{UserID: "org-2", Name: "Other Org", Role: domain.RoleOrganizer}
	admin      = domain.Actor{UserID: "admin-1", Name: "Admin User", Role: domain.RoleAdmin}
	studentA   = domain.Actor{UserID: "stu-a", Name: "Alice", Role: domain.RoleStudent}
	studentB   = domain.Actor{UserID: "stu-b", Name: "Bob", Role: domain.RoleStudent}
)

func newEventSvc(t *testing.T) (ports.EventService, *memory.EventRepository, *stubAudit) {
	t.Helper()
	repo := memory.NewEventRepository()
	audit := &stubAudit{}
	return NewEventService(repo, audit, zerolog.Nop()), repo, audit
}

func validInput() ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       "Go Meetup",
		Description: "Concurrency patterns in practice",
		Date:        time.Date(2030, 3, 1, 18, 0, 0, 0, time.UTC),
		Location:    "Room 42",
		Capacity:    50,
		Category:    "Technology",
	}
}

func mustCreate(t *testing.T, svc ports.EventService, in ports.CreateEventInput) *domain.Event {
	t.Helper()
	ev, err := svc.CreateEvent(context.Background(), organizer, in)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	return ev
}

func mustApprove(t *testing.T, svc ports.EventService, id string) {
	t.Helper()
	if _, err := svc.SetEventStatus(context.Background(), admin, id, domain.StatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateEvent
// ---------------------------------------------------------------------------

func TestEventService_CreateEvent_Defaults(t *testing.T) {
	svc, _, audit := newEventSvc(t)

	first := mustCreate(t, svc, validInput())
	second := mustCreate(t, svc, validInput())

	if first.Status != domain.StatusPending || first.RegisteredCount != 0 {
		t.Fatalf("expected pending with 0 registered, got %s/%d", first.Status, first.RegisteredCount)
	}
	if first.OrganizerID != organizer.UserID || first.OrganizerName != organizer.Name {
		t.Errorf("organizer not taken from actor: %+v", first)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct ids, got %q and %q", first.ID, second.ID)
	}

	list, err := svc.ListEvents(context.Background(), ports.ListEventsFilter{})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Errorf("expected newest event first, got %v", ids(list))
	}
	if len(audit.entries) != 2 || audit.entries[0].Action != domain.AuditEventCreated {
		t.Errorf("expected two creation audit entries, got %+v", audit.entries)
	}
}

func TestEventService_CreateEvent_Validation(t *testing.T) {
	cases := map[string]func(in *ports.CreateEventInput){
		"missing title":       func(in *ports.CreateEventInput) { in.Title = "  " },
		"missing description": func(in *ports.CreateEventInput) { in.Description = "" },
		"missing location":    func(in *ports.CreateEventInput) { in.Location = "" },
		"missing category":    func(in *ports.CreateEventInput) { in.Category = "" },
		"unknown category":    func(in *ports.CreateEventInput) { in.Category = "Sports" },
		"zero capacity":       func(in *ports.CreateEventInput) { in.Capacity = 0 },
		"negative capacity":   func(in *ports.CreateEventInput) { in.Capacity = -3 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, _ := newEventSvc(t)
			in := validInput()
			mutate(&in)

			_, err := svc.CreateEvent(context.Background(), organizer, in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if list, _ := repo.List(context.Background(), ports.ListEventsFilter{}); len(list) != 0 {
				t.Errorf("invalid event was stored")
			}
		})
	}
}

func TestEventService_CreateEvent_RequiresOrganizer(t *testing.T) {
	svc, _, _ := newEventSvc(t)

	for _, actor := range []domain.Actor{studentA, admin, {}} {
		if _, err := svc.CreateEvent(context.Background(), actor, validInput()); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %q: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
}

// ---------------------------------------------------------------------------
// UpdateEvent / DeleteEvent
// ---------------------------------------------------------------------------

func TestEventService_UpdateEvent(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ev := mustCreate(t, svc, validInput())

	title := "Go Meetup (room change)"
	loc := "Auditorium"
	updated, err := svc.UpdateEvent(context.Background(), organizer, ev.ID, domain.EventPatch{Title: &title, Location: &loc})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.Title != title || updated.Location != loc {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Status != domain.StatusPending || updated.ID != ev.ID || updated.Description != ev.Description {
		t.Errorf("immutable or untouched fields changed: %+v", updated)
	}
}

func TestEventService_UpdateEvent_Errors(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ev := mustCreate(t, svc, validInput())
	title := "x"

	if _, err := svc.UpdateEvent(context.Background(), organizer, "missing", domain.EventPatch{Title: &title}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown id: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateEvent(context.Background(), organizer2, ev.ID, domain.EventPatch{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other organizer: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateEvent(context.Background(), admin, ev.ID, domain.EventPatch{Title: &title}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("admin: expected ErrForbidden, got %v", err)
	}
	empty := ""
	if _, err := svc.UpdateEvent(context.Background(), organizer, ev.ID, domain.EventPatch{Title: &empty}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank title: expected ErrValidation, got %v", err)
	}
}

func TestEventService_UpdateEvent_CapacityBelowRegistered(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	in := validInput()
	in.Capacity = 5
	ev := mustCreate(t, svc, in)
	mustApprove(t, svc, ev.ID)

	for _, st := range []domain.Actor{studentA, studentB} {
		if _, err := svc.Register(context.Background(), st, ev.ID); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	one := 1
	if _, err := svc.UpdateEvent(context.Background(), organizer, ev.ID, domain.EventPatch{Capacity: &one}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	two := 2
	updated, err := svc.UpdateEvent(context.Background(), organizer, ev.ID, domain.EventPatch{Capacity: &two})
	if err != nil {
		t.Fatalf("lowering to registered count should succeed: %v", err)
	}
	if updated.Capacity != 2 || updated.RegisteredCount != 2 || updated.Status != domain.StatusApproved {
		t.Errorf("unexpected event after update: %+v", updated)
	}
}

func TestEventService_DeleteEvent_CascadesRegistrations(t *testing.T) {
	svc, repo, _ := newEventSvc(t)
	ev := mustCreate(t, svc, validInput())
	other := mustCreate(t, svc, validInput())
	mustApprove(t, svc, ev.ID)
	mustApprove(t, svc, other.ID)

	if _, err := svc.Register(context.Background(), studentA, ev.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(context.Background(), studentA, other.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.DeleteEvent(context.Background(), organizer2, ev.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.DeleteEvent(context.Background(), organizer, ev.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := svc.DeleteEvent(context.Background(), organizer, ev.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	regs, _ := svc.ListRegistrations(context.Background(), studentA.UserID)
	if len(regs) != 1 || regs[0].EventID != other.ID {
		t.Fatalf("expected only the other event's registration to survive, got %+v", regs)
	}
	if _, err := repo.FindRegistration(context.Background(), studentA.UserID, ev.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("registration of deleted event still indexed: %v", err)
	}
}

// ---------------------------------------------------------------------------
// SetEventStatus
// ---------------------------------------------------------------------------

func TestEventService_SetEventStatus(t *testing.T) {
	svc, _, audit := newEventSvc(t)
	ev := mustCreate(t, svc, validInput())

	if _, err := svc.SetEventStatus(context.Background(), organizer, ev.ID, domain.StatusApproved); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("organizer: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.SetEventStatus(context.Background(), admin, "missing", domain.StatusApproved); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id: expected ErrNotFound, got %v", err)
	}

	got, err := svc.SetEventStatus(context.Background(), admin, ev.ID, domain.StatusRejected)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.Status != domain.StatusRejected {
		t.Fatalf("expected rejected, got %s", got.Status)
	}
	last := audit.entries[len(audit.entries)-1]
	if last.Action != domain.AuditEventStatus || last.Detail != "pending -> rejected" {
		t.Errorf("unexpected audit entry: %+v", last)
	}
}

func TestEventService_SetEventStatus_NoRemoderation(t *testing.T) {
	for _, first := range []domain.EventStatus{domain.StatusApproved, domain.StatusRejected} {
		for _, next := range []domain.EventStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusPending} {
			svc, _, _ := newEventSvc(t)
			ev := mustCreate(t, svc, validInput())
			if _, err := svc.SetEventStatus(context.Background(), admin, ev.ID, first); err != nil {
				t.Fatalf("first transition: %v", err)
			}

			_, err := svc.SetEventStatus(context.Background(), admin, ev.ID, next)
			if !errors.Is(err, domain.ErrInvalidTransition) {
				t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", first, next, err)
			}
			stored, _ := svc.GetEvent(context.Background(), admin, ev.ID)
			if stored.Status != first {
				t.Errorf("status changed by failed transition: %s", stored.Status)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestEventService_Register_HappyPath(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ev := mustCreate(t, svc, validInput())
	mustApprove(t, svc, ev.ID)

	reg, err := svc.Register(context.Background(), studentA, ev.ID)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.UserID != studentA.UserID || reg.EventID != ev.ID || reg.QRCode == "" || reg.ID == "" {
		t.Fatalf("unexpected registration: %+v", reg)
	}

	stored, _ := svc.GetEvent(context.Background(), studentA, ev.ID)
	if stored.RegisteredCount != 1 {
		t.Errorf("expected registered count 1, got %d", stored.RegisteredCount)
	}
	regs, _ := svc.ListRegistrations(context.Background(), studentA.UserID)
	if len(regs) != 1 {
		t.Errorf("expected exactly one registration, got %d", len(regs))
	}

	mine, err := svc.GetRegistration(context.Background(), studentA, ev.ID)
	if err != nil || mine.QRCode != reg.QRCode {
		t.Errorf("GetRegistration = %+v, %v", mine, err)
	}
}

func TestEventService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ev := mustCreate(t, svc, validInput())
	mustApprove(t, svc, ev.ID)

	if _, err := svc.Register(context.Background(), studentA, ev.ID); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), studentA, ev.ID)
	if !errors.Is(err, domain.ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration, got %v", err)
	}

	stored, _ := svc.GetEvent(context.Background(), studentA, ev.ID)
	regs, _ := svc.ListRegistrations(context.Background(), studentA.UserID)
	if stored.RegisteredCount != 1 || len(regs) != 1 {
		t.Errorf("state changed by duplicate: count=%d regs=%d", stored.RegisteredCount, len(regs))
	}
}

func TestEventService_Register_CapacityExceeded(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	in := validInput()
	in.Capacity = 1
	ev := mustCreate(t, svc, in)
	mustApprove(t, svc, ev.ID)

	if _, err := svc.Register(context.Background(), studentA, ev.ID); err != nil {
		t.Fatalf("Register A: %v", err)
	}
	_, err := svc.Register(context.Background(), studentB, ev.ID)
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	stored, _ := svc.GetEvent(context.Background(), studentB, ev.ID)
	if stored.RegisteredCount != 1 {
		t.Errorf("expected registered count to stay 1, got %d", stored.RegisteredCount)
	}
}

func TestEventService_Register_Errors(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	pending := mustCreate(t, svc, validInput())

	if _, err := svc.Register(context.Background(), studentA, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown event: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Register(context.Background(), studentA, pending.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("pending event: expected ErrInvalidState, got %v", err)
	}
	if _, err := svc.Register(context.Background(), organizer, pending.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("organizer: expected ErrForbidden, got %v", err)
	}

	rejected := mustCreate(t, svc, validInput())
	if _, err := svc.SetEventStatus(context.Background(), admin, rejected.ID, domain.StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.Register(context.Background(), studentA, rejected.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("rejected event: expected ErrInvalidState, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Scenarios & read models
// ---------------------------------------------------------------------------

func TestEventService_Scenario_CreateApproveRegister(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ctx := context.Background()

	ev := mustCreate(t, svc, validInput())
	mustApprove(t, svc, ev.ID)
	if _, err := svc.Register(ctx, studentA, ev.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}

	approved, err := svc.ListEvents(ctx, ports.ListEventsFilter{Status: domain.StatusApproved})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != ev.ID || approved[0].RegisteredCount != 1 {
		t.Fatalf("expected approved event with one registration, got %+v", approved)
	}
}

func TestEventService_ListEvents_Filters(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ctx := context.Background()

	tech := mustCreate(t, svc, validInput())
	arts := validInput()
	arts.Title = "Watercolour Night"
	arts.Description = "Bring your own BRUSHES"
	arts.Category = "Arts"
	artsEv := mustCreate(t, svc, arts)
	mustApprove(t, svc, artsEv.ID)

	cases := []struct {
		name   string
		filter ports.ListEventsFilter
		want   []string
	}{
		{"all", ports.ListEventsFilter{}, []string{artsEv.ID, tech.ID}},
		{"status", ports.ListEventsFilter{Status: domain.StatusPending}, []string{tech.ID}},
		{"category", ports.ListEventsFilter{Category: domain.CategoryArts}, []string{artsEv.ID}},
		{"search title", ports.ListEventsFilter{Search: "MEETUP"}, []string{tech.ID}},
		{"search description", ports.ListEventsFilter{Search: "brushes"}, []string{artsEv.ID}},
		{"organizer", ports.ListEventsFilter{OrganizerID: organizer2.UserID}, nil},
		{"limit", ports.ListEventsFilter{Limit: 1}, []string{artsEv.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.ListEvents(ctx, tc.filter)
			if err != nil {
				t.Fatalf("ListEvents: %v", err)
			}
			if gotIDs := ids(got); !equal(gotIDs, tc.want) {
				t.Errorf("got %v, want %v", gotIDs, tc.want)
			}
		})
	}

	if _, err := svc.ListEvents(ctx, ports.ListEventsFilter{Category: "Sports"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown category filter: expected ErrValidation, got %v", err)
	}
}

func TestEventService_GetEvent_Visibility(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ev := mustCreate(t, svc, validInput())

	if _, err := svc.GetEvent(context.Background(), studentA, ev.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("student sees pending event: %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), domain.Actor{}, ev.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("visitor sees pending event: %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), organizer, ev.ID); err != nil {
		t.Errorf("owner cannot see own event: %v", err)
	}
	if _, err := svc.GetEvent(context.Background(), admin, ev.ID); err != nil {
		t.Errorf("admin cannot see pending event: %v", err)
	}
}

func TestEventService_StatsAndDashboard(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ctx := context.Background()

	a := mustCreate(t, svc, validInput())
	b := mustCreate(t, svc, validInput())
	mustCreate(t, svc, validInput())
	mustApprove(t, svc, a.ID)
	if _, err := svc.SetEventStatus(ctx, admin, b.ID, domain.StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.Register(ctx, studentA, a.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}

	stats, err := svc.Stats(ctx, ports.ListEventsFilter{})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := domain.EventStats{Total: 3, Pending: 1, Approved: 1, Rejected: 1, Participants: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	// Aggregates follow the live collection.
	if _, err := svc.Register(ctx, studentB, a.ID); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if stats, _ = svc.Stats(ctx, ports.ListEventsFilter{}); stats.Participants != 2 {
		t.Errorf("participants not recomputed: %+v", stats)
	}

	d, err := svc.Dashboard(ctx, studentA)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(d.Events) != 1 || len(d.Registrations) != 1 {
		t.Errorf("student dashboard: events=%d registrations=%d", len(d.Events), len(d.Registrations))
	}

	d, _ = svc.Dashboard(ctx, organizer2)
	if d.Stats.Total != 0 {
		t.Errorf("organizer dashboard leaks other events: %+v", d.Stats)
	}
	d, _ = svc.Dashboard(ctx, admin)
	if d.Stats.Total != 3 {
		t.Errorf("admin dashboard: %+v", d.Stats)
	}

	if _, err := svc.Dashboard(ctx, domain.Actor{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("visitor dashboard: expected ErrUnauthenticated, got %v", err)
	}
}

func TestEventService_VerifyTicket(t *testing.T) {
	svc, _, _ := newEventSvc(t)
	ctx := context.Background()
	ev := mustCreate(t, svc, validInput())
	mustApprove(t, svc, ev.ID)
	reg, err := svc.Register(ctx, studentA, ev.ID)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	ticket, err := svc.VerifyTicket(ctx, organizer, reg.QRCode)
	if err != nil {
		t.Fatalf("VerifyTicket: %v", err)
	}
	if ticket.Registration.UserID != studentA.UserID || ticket.Event.ID != ev.ID {
		t.Errorf("unexpected ticket: %+v", ticket)
	}
	if _, err := svc.VerifyTicket(ctx, admin, reg.QRCode); err != nil {
		t.Errorf("admin VerifyTicket: %v", err)
	}
	if _, err := svc.VerifyTicket(ctx, organizer2, reg.QRCode); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign organizer: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.VerifyTicket(ctx, organizer, "EVENT_x_USER_y_0"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown token: expected ErrNotFound, got %v", err)
	}
}

func ids(events []*domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
