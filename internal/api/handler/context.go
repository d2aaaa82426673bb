package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// ctxActor returns the caller injected by the Auth middleware, or the
// anonymous actor on public routes.
func ctxActor(c echo.Context) domain.Actor {
	actor, _ := c.Get("actor").(domain.Actor)
	return actor
}

// requireActor fails fast when a route that needs an identity is reached
// without one.
func requireActor(c echo.Context) (domain.Actor, error) {
	actor := ctxActor(c)
	if actor.Anonymous() {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return actor, nil
}

// bindAndValidate decodes the request body and runs struct validation.
// Malformed JSON is a 400; a well-formed body failing validation is a 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
