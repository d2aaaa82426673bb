package handler

import (
	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Category:    req.Category,
	}
}

func toEventPatch(req updateEventRequest) domain.EventPatch {
	patch := domain.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
	}
	if req.Category != nil {
		cat := domain.Category(*req.Category)
		patch.Category = &cat
	}
	return patch
}

// --- Service result → HTTP response ---

func toEventResponse(ev *domain.Event) eventResponse {
	links := eventLinks{Self: "/v1/events/" + ev.ID}
	if ev.Status == domain.StatusApproved {
		links.Registrations = "/v1/events/" + ev.ID + "/registrations"
	}
	return eventResponse{
		ID:              ev.ID,
		Title:           ev.Title,
		Description:     ev.Description,
		Date:            ev.Date.UTC(),
		Location:        ev.Location,
		Capacity:        ev.Capacity,
		RegisteredCount: ev.RegisteredCount,
		AvailableSpots:  ev.Capacity - ev.RegisteredCount,
		OrganizerID:     ev.OrganizerID,
		OrganizerName:   ev.OrganizerName,
		Status:          string(ev.Status),
		Category:        string(ev.Category),
		CreatedAt:       ev.CreatedAt.UTC(),
		Links:           links,
	}
}

func toEventResponses(events []*domain.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	return out
}

func toStatsResponse(s domain.EventStats) statsResponse {
	return statsResponse{
		Total:        s.Total,
		Pending:      s.Pending,
		Approved:     s.Approved,
		Rejected:     s.Rejected,
		Participants: s.Participants,
	}
}

func toRegistrationResponse(r *domain.Registration) registrationResponse {
	return registrationResponse{
		ID:           r.ID,
		EventID:      r.EventID,
		UserID:       r.UserID,
		RegisteredAt: r.RegisteredAt.UTC(),
		QRCode:       r.QRCode,
	}
}

func toRegistrationResponses(regs []*domain.Registration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for _, r := range regs {
		out = append(out, toRegistrationResponse(r))
	}
	return out
}

func toDashboardResponse(d *ports.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Role:   string(d.Role),
		Events: toEventResponses(d.Events),
		Stats:  toStatsResponse(d.Stats),
	}
	if d.Registrations != nil {
		resp.Registrations = toRegistrationResponses(d.Registrations)
	}
	return resp
}
