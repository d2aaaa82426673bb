package api

import (
	"net"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/campusevents/campus-hub/docs"
	"github.com/campusevents/campus-hub/internal/api/handler"
	"github.com/campusevents/campus-hub/internal/api/middleware"
	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Registerer and Gatherer
// default to the global Prometheus registry. TrustedProxies lists the
// networks whose X-Forwarded-For header is honoured; when empty the client
// address is the TCP peer.
type Deps struct {
	Events         ports.EventService
	Auth           ports.AuthService
	RateLimiter    *middleware.RateLimiter
	TrustedProxies []*net.IPNet
	Checks         map[string]handler.Check
	Log            zerolog.Logger
	Registerer     prometheus.Registerer
	Gatherer       prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.RateLimiter == nil {
		d.RateLimiter = middleware.NewRateLimiter(5, 10)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.IPExtractor = ipExtractor(d.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "campus_events",
		Registerer: d.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	eventHandler := handler.NewEventHandler(d.Events)
	moderationHandler := handler.NewModerationHandler(d.Events)
	registrationHandler := handler.NewRegistrationHandler(d.Events)

	requireAuth := middleware.Auth(d.Auth)
	optionalAuth := middleware.OptionalAuth(d.Auth)
	onlyOrganizer := middleware.RBAC(domain.RoleOrganizer)
	onlyAdmin := middleware.RBAC(domain.RoleAdmin)
	onlyStudent := middleware.RBAC(domain.RoleStudent)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	limited := middleware.RateLimit(d.RateLimiter)
	e.POST("/auth/register", authHandler.Register, limited)
	e.POST("/auth/login", authHandler.Login, limited)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)
	e.GET("/auth/me", authHandler.Me, requireAuth)

	v1 := e.Group("/v1")

	// Public catalogue.
	v1.GET("/events", eventHandler.List)
	v1.GET("/events/:id", eventHandler.Get, optionalAuth)
	v1.GET("/dashboard", eventHandler.Dashboard, requireAuth)

	// Organizer.
	v1.POST("/events", eventHandler.Create, requireAuth, onlyOrganizer)
	v1.PATCH("/events/:id", eventHandler.Update, requireAuth, onlyOrganizer)
	v1.DELETE("/events/:id", eventHandler.Delete, requireAuth, onlyOrganizer)
	v1.GET("/organizer/events", eventHandler.Mine, requireAuth, onlyOrganizer)

	// Admin.
	admin := v1.Group("/admin", requireAuth, onlyAdmin)
	admin.GET("/events", moderationHandler.List)
	admin.POST("/events/:id/approve", moderationHandler.Approve)
	admin.POST("/events/:id/reject", moderationHandler.Reject)

	// Student.
	v1.POST("/events/:id/registrations", registrationHandler.Register, requireAuth, onlyStudent)
	v1.GET("/me/registrations", registrationHandler.ListMine, requireAuth, onlyStudent)
	v1.GET("/me/registrations/:event_id", registrationHandler.GetMine, requireAuth, onlyStudent)

	// Check-in.
	v1.GET("/tickets/:qr_code", registrationHandler.VerifyTicket, requireAuth, middleware.RBAC(domain.RoleOrganizer, domain.RoleAdmin))

	return e
}

// ipExtractor keys clients by the TCP peer unless the peer is one of the
// trusted proxies, in which case the right-most untrusted X-Forwarded-For
// entry is used.
func ipExtractor(trusted []*net.IPNet) echo.IPExtractor {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range trusted {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}

// requestLogger writes one structured access line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
