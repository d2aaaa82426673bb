// Package memory holds the authoritative in-process stores. Every collection
// is guarded by a single mutex so multi-step mutations apply all-or-nothing.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
)

// EventRepository stores events newest-first and registrations in insertion order.
type EventRepository struct {
	mu            sync.RWMutex
	events        []*domain.Event
	registrations []*domain.Registration
	byPair        map[string]*domain.Registration
	byQRCode      map[string]*domain.Registration
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		byPair:   make(map[string]*domain.Registration),
		byQRCode: make(map[string]*domain.Registration),
	}
}

// Seed replaces the current contents with the given bootstrap state.
// Seed events are kept in the order given.
func (r *EventRepository) Seed(events []domain.Event, registrations []domain.Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = make([]*domain.Event, 0, len(events))
	for i := range events {
		r.events = append(r.events, events[i].Clone())
	}
	r.registrations = r.registrations[:0]
	clear(r.byPair)
	clear(r.byQRCode)
	for i := range registrations {
		r.appendRegistration(cloneRegistration(&registrations[i]))
	}
}

func (r *EventRepository) Create(_ context.Context, ev *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append([]*domain.Event{ev.Clone()}, r.events...)
	return nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrEventNotFound
	}
	return r.events[i].Clone(), nil
}

func (r *EventRepository) List(_ context.Context, filter ports.ListEventsFilter) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]*domain.Event, 0, len(r.events))
	for _, ev := range r.events {
		if !matches(ev, filter, search) {
			continue
		}
		out = append(out, ev.Clone())
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func matches(ev *domain.Event, f ports.ListEventsFilter, search string) bool {
	if f.Status != "" && ev.Status != f.Status {
		return false
	}
	if f.OrganizerID != "" && ev.OrganizerID != f.OrganizerID {
		return false
	}
	if f.Category != "" && ev.Category != f.Category {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(ev.Title), search) &&
		!strings.Contains(strings.ToLower(ev.Description), search) {
		return false
	}
	return true
}

func (r *EventRepository) Update(_ context.Context, id string, mutate ports.EventMutation) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrEventNotFound
	}

	next := r.events[i].Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	r.events[i] = next
	return next.Clone(), nil
}

func (r *EventRepository) Delete(_ context.Context, id string, check ports.EventMutation) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return 0, domain.ErrEventNotFound
	}
	if check != nil {
		if err := check(r.events[i].Clone()); err != nil {
			return 0, err
		}
	}
	r.events = append(r.events[:i], r.events[i+1:]...)

	kept := r.registrations[:0]
	removed := 0
	for _, reg := range r.registrations {
		if reg.EventID == id {
			delete(r.byPair, pairKey(reg.UserID, reg.EventID))
			delete(r.byQRCode, reg.QRCode)
			removed++
			continue
		}
		kept = append(kept, reg)
	}
	clear(r.registrations[len(kept):])
	r.registrations = kept
	return removed, nil
}

func (r *EventRepository) Register(_ context.Context, reg *domain.Registration) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(reg.EventID)
	if i < 0 {
		return nil, domain.ErrEventNotFound
	}
	ev := r.events[i]
	if err := ev.Registrable(); err != nil {
		return nil, err
	}
	if _, dup := r.byPair[pairKey(reg.UserID, reg.EventID)]; dup {
		return nil, domain.ErrDuplicateRegistration
	}

	ev.RegisteredCount++
	r.appendRegistration(cloneRegistration(reg))
	return ev.Clone(), nil
}

func (r *EventRepository) ListRegistrations(_ context.Context, userID string) ([]*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Registration, 0)
	for _, reg := range r.registrations {
		if reg.UserID == userID {
			out = append(out, cloneRegistration(reg))
		}
	}
	return out, nil
}

func (r *EventRepository) FindRegistration(_ context.Context, userID, eventID string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byPair[pairKey(userID, eventID)]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return cloneRegistration(reg), nil
}

func (r *EventRepository) FindRegistrationByQRCode(_ context.Context, qrCode string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byQRCode[qrCode]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return cloneRegistration(reg), nil
}

// appendRegistration must be called with mu held.
func (r *EventRepository) appendRegistration(reg *domain.Registration) {
	r.registrations = append(r.registrations, reg)
	r.byPair[pairKey(reg.UserID, reg.EventID)] = reg
	r.byQRCode[reg.QRCode] = reg
}

func (r *EventRepository) indexOf(id string) int {
	for i, ev := range r.events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}

func pairKey(userID, eventID string) string {
	return userID + "\x00" + eventID
}

func cloneRegistration(reg *domain.Registration) *domain.Registration {
	c := *reg
	return &c
}
