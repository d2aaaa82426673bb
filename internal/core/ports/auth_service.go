package ports

import (
	"context"
	"time"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// Session is the result of a successful login or sign-up.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, actor domain.Actor) error
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
}

// SessionStore remembers revoked session ids until their tokens would have expired anyway.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
