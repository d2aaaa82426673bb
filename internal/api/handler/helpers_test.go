package handler

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
	"github.com/campusevents/campus-hub/internal/core/service"
	"github.com/campusevents/campus-hub/internal/infrastructure/db/memory"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var (
	student   = domain.Actor{UserID: "1", Name: "John Doe", Role: domain.RoleStudent, SessionID: "s-1"}
	organizer = domain.Actor{UserID: "2", Name: "Jane Smith", Role: domain.RoleOrganizer, SessionID: "s-2"}
	admin     = domain.Actor{UserID: "3", Name: "Admin User", Role: domain.RoleAdmin, SessionID: "s-3"}
)

// newContext builds an echo context with the validator installed. params are
// name/value pairs for path parameters.
func newContext(method, target, body string, actor *domain.Actor, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if actor != nil {
		c.Set("actor", *actor)
	}
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

// seededService returns an event service over the default seed data.
func seededService(t *testing.T) ports.EventService {
	t.Helper()
	seed := domain.DefaultSeed(testNow)
	repo := memory.NewEventRepository()
	repo.Seed(seed.Events, seed.Registrations)
	return service.NewEventService(repo, nil, zerolog.Nop())
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he.Code
}
