package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
)

// EventHandler serves the public catalogue and the organizer's event management.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /v1/events.
//
// @Summary      Browse approved events
// @Tags         events
// @Produce      json
// @Param        category  query     string  false  "Technology, Career, Environment or Arts"
// @Param        search    query     string  false  "Case-insensitive match on title or description"
// @Param        limit     query     int     false  "Maximum number of events"
// @Success      200       {object}  listEventsResponse
// @Failure      422       {object}  errorResponse
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	filter, err := listFilter(c)
	if err != nil {
		return err
	}
	filter.Status = domain.StatusApproved

	events, err := h.service.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listEventsResponse{Events: toEventResponses(events)})
}

// Get handles GET /v1/events/:id.
//
// @Summary      Get an event
// @Description  Pending and rejected events are only visible to their organizer and admins.
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	ev, err := h.service.GetEvent(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

// Create handles POST /v1/events.
//
// @Summary      Submit a new event for moderation
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	ev, err := h.service.CreateEvent(c.Request().Context(), actor, toCreateInput(req))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/events/"+ev.ID)
	return c.JSON(http.StatusCreated, toEventResponse(ev))
}

// Update handles PATCH /v1/events/:id.
//
// @Summary      Edit an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := toEventPatch(req)
	if patch.Empty() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "at least one field must be provided")
	}

	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	ev, err := h.service.UpdateEvent(c.Request().Context(), actor, c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

// Delete handles DELETE /v1/events/:id.
//
// @Summary      Delete an event and its registrations
// @Tags         events
// @Security     BearerAuth
// @Param        id   path  string  true  "Event ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteEvent(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Mine handles GET /v1/organizer/events.
//
// @Summary      List the caller's own events with totals
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "pending, approved or rejected"
// @Param        category  query     string  false  "Event category"
// @Param        search    query     string  false  "Case-insensitive match on title or description"
// @Success      200       {object}  listEventsResponse
// @Failure      403       {object}  errorResponse
// @Router       /v1/organizer/events [get]
func (h *EventHandler) Mine(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	filter, err := listFilter(c)
	if err != nil {
		return err
	}
	filter.OrganizerID = actor.UserID

	events, err := h.service.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	// Totals cover every event the organizer owns, whatever the filter.
	stats, err := h.service.Stats(c.Request().Context(), ports.ListEventsFilter{OrganizerID: actor.UserID})
	if err != nil {
		return err
	}

	resp := toStatsResponse(stats)
	return c.JSON(http.StatusOK, listEventsResponse{Events: toEventResponses(events), Stats: &resp})
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Role-specific landing view
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *EventHandler) Dashboard(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	d, err := h.service.Dashboard(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(d))
}

// listFilter reads the shared listing query parameters.
func listFilter(c echo.Context) (ports.ListEventsFilter, error) {
	filter := ports.ListEventsFilter{
		Status:   domain.EventStatus(c.QueryParam("status")),
		Category: domain.Category(c.QueryParam("category")),
		Search:   c.QueryParam("search"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return filter, domain.Validationf("limit must be a non-negative integer")
		}
		filter.Limit = n
	}
	return filter, nil
}
