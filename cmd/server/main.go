// @title                       Campus Events API
// @version                     1.0
// @description                 Browse, register for and moderate campus events.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/campusevents/campus-hub/internal/api"
	"github.com/campusevents/campus-hub/internal/api/handler"
	"github.com/campusevents/campus-hub/internal/api/middleware"
	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
	"github.com/campusevents/campus-hub/internal/core/service"
	"github.com/campusevents/campus-hub/internal/infrastructure/audit"
	"github.com/campusevents/campus-hub/internal/infrastructure/config"
	"github.com/campusevents/campus-hub/internal/infrastructure/db/memory"
	mongodb "github.com/campusevents/campus-hub/internal/infrastructure/db/mongo"
	redisdb "github.com/campusevents/campus-hub/internal/infrastructure/db/redis"
	"github.com/campusevents/campus-hub/internal/infrastructure/queue"
	"github.com/campusevents/campus-hub/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "campus-hub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "campus-hub",
	})

	if cfg.JWTSecret == "" {
		// Tokens signed with a random secret do not survive a restart.
		cfg.JWTSecret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random development secret")
	}

	// --- Authoritative in-memory state ---
	events := memory.NewEventRepository()
	users := memory.NewAuthRepository()
	if cfg.SeedData {
		seed := domain.DefaultSeed(time.Now().UTC())
		users.Seed(seed.Users)
		events.Seed(seed.Events, seed.Registrations)
		log.Info().
			Int("users", len(seed.Users)).
			Int("events", len(seed.Events)).
			Int("registrations", len(seed.Registrations)).
			Msg("seed data loaded")
	}

	checks := make(map[string]handler.Check)

	// --- Session revocation store ---
	var sessions ports.SessionStore = memory.NewSessionStore()
	if cfg.Session.Store == config.SessionStoreRedis {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		sessions = redisdb.NewSessionStore(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	// --- Audit trail ---
	var sink ports.AuditSink
	switch cfg.Audit.Sink {
	case config.AuditSinkLog:
		sink = audit.NewLogSink(log)
	case config.AuditSinkMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		repo := mongodb.NewAuditRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		sink = repo
		checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	var dispatcher *queue.Dispatcher
	var recorder ports.AuditRecorder
	if sink != nil {
		dispatcher = queue.NewDispatcher(cfg.Audit.Workers, sink, log)
		recorder = dispatcher
	}

	// --- Services and transport ---
	eventService := service.NewEventService(events, recorder, log)
	authService := service.NewAuthService(users, sessions, cfg.JWTSecret, service.AuthOptions{
		TokenTTL:     cfg.TokenTTL,
		Latency:      cfg.Auth.Latency,
		UniqueEmails: cfg.Auth.UniqueEmails,
	}, log)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	proxies, err := cfg.RateLimit.ProxyRanges()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Events:         eventService,
		Auth:           authService,
		RateLimiter:    limiter,
		TrustedProxies: proxies,
		Checks:         checks,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go limiter.Run(ctx)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	log.Info().Str("addr", ln.Addr().String()).Str("env", cfg.Env).Msg("http server listening")

	if err := serve(ctx, ln, srv, dispatcher, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// serve runs srv on ln until ctx is done. The audit dispatcher is stopped
// only after the HTTP server has drained, so entries recorded by in-flight
// requests are still written. d may be nil.
func serve(ctx context.Context, ln net.Listener, srv *http.Server, d *queue.Dispatcher, log zerolog.Logger) error {
	dctx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	if d != nil {
		d.Start(dctx)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(sctx)

		stopDispatcher()
		if d != nil {
			d.Wait()
		}
		return err
	})

	return g.Wait()
}
