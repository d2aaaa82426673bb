package ports

import (
	"context"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// AuthRepository defines the interface for user identity storage.
type AuthRepository interface {
	// FindByEmail matches exactly and case-sensitively; the earliest created
	// user wins when several share an address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
