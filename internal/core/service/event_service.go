package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusevents/campus-hub/internal/api/metrics"
	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
)

type eventService struct {
	repo  ports.EventRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
	now   func() time.Time
}

// NewEventService returns an EventService implementation. audit may be nil.
func NewEventService(repo ports.EventRepository, audit ports.AuditRecorder, log zerolog.Logger) ports.EventService {
	return &eventService{
		repo:  repo,
		audit: audit,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *eventService) ListEvents(ctx context.Context, filter ports.ListEventsFilter) ([]*domain.Event, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validationf("unknown status %q", filter.Status)
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, domain.Validationf("unknown category %q", filter.Category)
	}
	return s.repo.List(ctx, filter)
}

// GetEvent hides unmoderated and rejected events from anyone but their
// organizer and admins by reporting them as missing.
func (s *eventService) GetEvent(ctx context.Context, actor domain.Actor, id string) (*domain.Event, error) {
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ev.VisibleTo(actor) {
		return nil, domain.ErrEventNotFound
	}
	return ev, nil
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, in ports.CreateEventInput) (*domain.Event, error) {
	if !actor.Is(domain.RoleOrganizer) {
		return nil, fmt.Errorf("create event: %w: only organizers can create events", domain.ErrForbidden)
	}

	ev := &domain.Event{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Date:          in.Date.UTC(),
		Location:      strings.TrimSpace(in.Location),
		Capacity:      in.Capacity,
		OrganizerID:   actor.UserID,
		OrganizerName: actor.Name,
		Status:        domain.StatusPending,
		Category:      domain.Category(strings.TrimSpace(in.Category)),
		CreatedAt:     s.now(),
	}
	if err := ev.ValidateDetails(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		return nil, fmt.Errorf("create event: %w", err)
	}

	metrics.EventsCreatedTotal.WithLabelValues(string(ev.Category)).Inc()
	s.record(ev.ID, domain.AuditEventCreated, actor, ev.Title)
	s.log.Info().Str("event_id", ev.ID).Str("organizer_id", actor.UserID).Msg("event created")

	return ev, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, actor domain.Actor, id string, patch domain.EventPatch) (*domain.Event, error) {
	updated, err := s.repo.Update(ctx, id, func(ev *domain.Event) error {
		if !ev.OwnedBy(actor) {
			return fmt.Errorf("update event: %w: not the event organizer", domain.ErrForbidden)
		}
		return ev.ApplyPatch(patch)
	})
	if err != nil {
		return nil, err
	}

	s.record(id, domain.AuditEventUpdated, actor, "")
	s.log.Info().Str("event_id", id).Str("organizer_id", actor.UserID).Msg("event updated")
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor domain.Actor, id string) error {
	removed, err := s.repo.Delete(ctx, id, func(ev *domain.Event) error {
		if !ev.OwnedBy(actor) {
			return fmt.Errorf("delete event: %w: not the event organizer", domain.ErrForbidden)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.EventsDeletedTotal.Inc()
	s.record(id, domain.AuditEventDeleted, actor, fmt.Sprintf("%d registrations removed", removed))
	s.log.Info().
		Str("event_id", id).
		Str("organizer_id", actor.UserID).
		Int("registrations_removed", removed).
		Msg("event deleted")
	return nil
}

func (s *eventService) SetEventStatus(ctx context.Context, actor domain.Actor, id string, status domain.EventStatus) (*domain.Event, error) {
	if !actor.Is(domain.RoleAdmin) {
		return nil, fmt.Errorf("set event status: %w: admin role required", domain.ErrForbidden)
	}

	var from domain.EventStatus
	updated, err := s.repo.Update(ctx, id, func(ev *domain.Event) error {
		from = ev.Status
		return ev.TransitionTo(status)
	})
	if err != nil {
		return nil, err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues(string(status)).Inc()
	s.record(id, domain.AuditEventStatus, actor, string(from)+" -> "+string(status))
	s.log.Info().
		Str("event_id", id).
		Str("from", string(from)).
		Str("to", string(status)).
		Str("admin_id", actor.UserID).
		Msg("event moderated")
	return updated, nil
}

func (s *eventService) Register(ctx context.Context, actor domain.Actor, eventID string) (*domain.Registration, error) {
	if !actor.Is(domain.RoleStudent) {
		return nil, fmt.Errorf("register: %w: only students can register for events", domain.ErrForbidden)
	}

	at := s.now()
	reg := &domain.Registration{
		ID:           uuid.NewString(),
		UserID:       actor.UserID,
		EventID:      eventID,
		RegisteredAt: at,
		QRCode:       domain.NewQRCode(eventID, actor.UserID, at),
	}

	ev, err := s.repo.Register(ctx, reg)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	s.record(eventID, domain.AuditRegistered, actor, reg.ID)
	s.log.Info().
		Str("event_id", eventID).
		Str("user_id", actor.UserID).
		Int("registered", ev.RegisteredCount).
		Int("capacity", ev.Capacity).
		Msg("registration created")
	return reg, nil
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "full"
	case errors.Is(err, domain.ErrDuplicateRegistration):
		return "duplicate"
	case errors.Is(err, domain.ErrInvalidState):
		return "not_open"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func (s *eventService) ListRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return s.repo.ListRegistrations(ctx, userID)
}

func (s *eventService) GetRegistration(ctx context.Context, actor domain.Actor, eventID string) (*domain.Registration, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindRegistration(ctx, actor.UserID, eventID)
}

// VerifyTicket resolves a scanned QR token for the event's organizer or an admin.
func (s *eventService) VerifyTicket(ctx context.Context, actor domain.Actor, qrCode string) (*domain.Ticket, error) {
	reg, err := s.repo.FindRegistrationByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	ev, err := s.repo.FindByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if !ev.OwnedBy(actor) && !actor.Is(domain.RoleAdmin) {
		return nil, fmt.Errorf("verify ticket: %w", domain.ErrForbidden)
	}
	return &domain.Ticket{Registration: *reg, Event: *ev}, nil
}

func (s *eventService) Stats(ctx context.Context, filter ports.ListEventsFilter) (domain.EventStats, error) {
	filter.Limit = 0
	events, err := s.ListEvents(ctx, filter)
	if err != nil {
		return domain.EventStats{}, err
	}
	return domain.Summarize(events), nil
}

// Dashboard builds the landing view of each role: students see approved
// events and their registrations, organizers their own submissions, admins
// everything.
func (s *eventService) Dashboard(ctx context.Context, actor domain.Actor) (*ports.Dashboard, error) {
	var filter ports.ListEventsFilter
	switch {
	case actor.Is(domain.RoleAdmin):
	case actor.Is(domain.RoleOrganizer):
		filter.OrganizerID = actor.UserID
	case actor.Is(domain.RoleStudent):
		filter.Status = domain.StatusApproved
	default:
		return nil, domain.ErrUnauthenticated
	}

	events, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	d := &ports.Dashboard{Role: actor.Role, Events: events, Stats: domain.Summarize(events)}

	if actor.Is(domain.RoleStudent) {
		if d.Registrations, err = s.repo.ListRegistrations(ctx, actor.UserID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *eventService) record(eventID string, action domain.AuditAction, actor domain.Actor, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{
		EventID:   eventID,
		Action:    action,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		Detail:    detail,
		At:        s.now(),
	})
}
