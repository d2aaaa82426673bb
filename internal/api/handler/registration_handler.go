package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/campus-hub/internal/core/ports"
)

// RegistrationHandler serves student sign-ups and ticket check-in.
type RegistrationHandler struct {
	service ports.EventService
}

func NewRegistrationHandler(service ports.EventService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Register handles POST /v1/events/:id/registrations.
//
// @Summary      Register the caller for an approved event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      201  {object}  registrationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/events/{id}/registrations [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	reg, err := h.service.Register(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/me/registrations/"+reg.EventID)
	return c.JSON(http.StatusCreated, toRegistrationResponse(reg))
}

// ListMine handles GET /v1/me/registrations.
//
// @Summary      List the caller's registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listRegistrationsResponse
// @Router       /v1/me/registrations [get]
func (h *RegistrationHandler) ListMine(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	regs, err := h.service.ListRegistrations(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listRegistrationsResponse{Registrations: toRegistrationResponses(regs)})
}

// GetMine handles GET /v1/me/registrations/:event_id.
//
// @Summary      Get the caller's ticket for an event
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        event_id  path      string  true  "Event ID"
// @Success      200       {object}  registrationResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/me/registrations/{event_id} [get]
func (h *RegistrationHandler) GetMine(c echo.Context) error {
	reg, err := h.service.GetRegistration(c.Request().Context(), ctxActor(c), c.Param("event_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRegistrationResponse(reg))
}

// VerifyTicket handles GET /v1/tickets/:qr_code.
//
// @Summary      Resolve a scanned QR code at check-in
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        qr_code  path      string  true  "QR code token"
// @Success      200      {object}  ticketResponse
// @Failure      403      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/tickets/{qr_code} [get]
func (h *RegistrationHandler) VerifyTicket(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	t, err := h.service.VerifyTicket(c.Request().Context(), actor, c.Param("qr_code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticketResponse{
		Registration: toRegistrationResponse(&t.Registration),
		Event:        toEventResponse(&t.Event),
	})
}
