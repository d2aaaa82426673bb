package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusevents/campus-hub/internal/api/metrics"
	"github.com/campusevents/campus-hub/internal/core/domain"
	"github.com/campusevents/campus-hub/internal/core/ports"
)

// AuthOptions tunes the simulated sign-in flow.
type AuthOptions struct {
	TokenTTL time.Duration
	// Latency is the fixed delay applied to Login and Register.
	Latency time.Duration
	// UniqueEmails rejects sign-ups whose email is already known.
	UniqueEmails bool
}

// AuthService implements the mock identity flow: passwords are accepted but
// never checked, and a session is a signed token naming exactly one user.
type AuthService struct {
	repo      ports.AuthRepository
	sessions  ports.SessionStore
	jwtSecret []byte
	opts      AuthOptions
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.AuthRepository, sessions ports.SessionStore, jwtSecret string, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
		opts:      opts,
		log:       log,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*ports.Session, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	switch {
	case name == "":
		return nil, s.failed("register", domain.Validationf("name is required"))
	case email == "":
		return nil, s.failed("register", domain.Validationf("email is required"))
	case !role.SelfRegistrable():
		return nil, s.failed("register", domain.Validationf("role must be one of: student, organizer"))
	}

	if s.opts.UniqueEmails {
		_, err := s.repo.FindByEmail(ctx, email)
		if err == nil {
			return nil, s.failed("register", domain.ErrEmailTaken)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("register: %w", err)
		}
	}

	user, err := s.repo.Create(ctx, &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return s.issue(user)
}

// Login looks the user up by exact email. The password is intentionally ignored.
func (s *AuthService) Login(ctx context.Context, email, _ string) (*ports.Session, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.failed("login", domain.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return s.issue(user)
}

// Logout revokes the actor's session. Logging out twice, or without a
// session, is a no-op.
func (s *AuthService) Logout(ctx context.Context, actor domain.Actor) error {
	if actor.SessionID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, actor.SessionID, s.opts.TokenTTL); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("user_id", actor.UserID).Msg("user logged out")
	return nil
}

type sessionClaims struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate resolves a bearer token to the actor it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid || claims.Subject == "" || !claims.Role.Valid() {
		return domain.Actor{}, domain.ErrUnauthenticated
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("authenticate: %w", err)
	}
	if revoked {
		return domain.Actor{}, domain.ErrUnauthenticated
	}

	return domain.Actor{
		UserID:    claims.Subject,
		Name:      claims.Name,
		Role:      claims.Role,
		SessionID: claims.ID,
	}, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.Session, error) {
	now := s.now()
	expires := now.Add(s.opts.TokenTTL)
	claims := sessionClaims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &ports.Session{Token: signed, ExpiresAt: expires, User: user}, nil
}

// simulateLatency waits the configured delay without holding any lock, so
// other requests proceed while a sign-in is pending.
func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.opts.Latency <= 0 {
		return nil
	}
	t := time.NewTimer(s.opts.Latency)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AuthService) failed(op string, err error) error {
	metrics.AuthAttemptsTotal.WithLabelValues(op, "failed").Inc()
	s.log.Debug().Err(err).Str("operation", op).Msg("authentication rejected")
	return err
}
