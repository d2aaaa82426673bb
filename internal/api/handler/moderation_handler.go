package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
)

// ModerationHandler serves the admin review queue.
type ModerationHandler struct {
	service ports.EventService
}

func NewModerationHandler(service ports.EventService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// List handles GET /v1/admin/events.
//
// @Summary      List all events with per-status totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "pending, approved or rejected"
// @Param        category  query     string  false  "Event category"
// @Param        search    query     string  false  "Case-insensitive match on title or description"
// @Success      200       {object}  listEventsResponse
// @Failure      403       {object}  errorResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/admin/events [get]
func (h *ModerationHandler) List(c echo.Context) error {
	filter, err := listFilter(c)
	if err != nil {
		return err
	}

	events, err := h.service.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.Request().Context(), ports.ListEventsFilter{})
	if err != nil {
		return err
	}

	resp := toStatsResponse(stats)
	return c.JSON(http.StatusOK, listEventsResponse{Events: toEventResponses(events), Stats: &resp})
}

// Approve handles POST /v1/admin/events/:id/approve.
//
// @Summary      Approve a pending event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/events/{id}/approve [post]
func (h *ModerationHandler) Approve(c echo.Context) error {
	return h.decide(c, domain.StatusApproved)
}

// Reject handles POST /v1/admin/events/:id/reject.
//
// @Summary      Reject a pending event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/events/{id}/reject [post]
func (h *ModerationHandler) Reject(c echo.Context) error {
	return h.decide(c, domain.StatusRejected)
}

func (h *ModerationHandler) decide(c echo.Context, status domain.EventStatus) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	ev, err := h.service.SetEventStatus(c.Request().Context(), actor, c.Param("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}
