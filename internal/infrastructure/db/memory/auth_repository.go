package memory

import (
	"context"
	"sync"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// AuthRepository keeps users in creation order.
type AuthRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{}
}

// Seed replaces the known users.
func (r *AuthRepository) Seed(users []domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make([]*domain.User, 0, len(users))
	for i := range users {
		r.users = append(r.users, cloneUser(&users[i]))
	}
}

func (r *AuthRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AuthRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AuthRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, cloneUser(user))
	return cloneUser(user), nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}
