package domain

import "time"

// Role is the coarse permission level of a user.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// SelfRegistrable reports whether an account with this role may be created
// through the public sign-up flow. Admin accounts only come from seed data.
func (r Role) SelfRegistrable() bool {
	return r == RoleStudent || r == RoleOrganizer
}

// User models an identity in the system. Users are immutable once created.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Actor returns the identity context used to authorize operations on behalf of u.
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Name: u.Name, Role: u.Role}
}

// Actor is the explicit caller context passed to every mutating operation.
// The zero value is an anonymous visitor.
type Actor struct {
	UserID    string
	Name      string
	Role      Role
	SessionID string
}

// Anonymous reports whether the actor carries no identity.
func (a Actor) Anonymous() bool {
	return a.UserID == ""
}

func (a Actor) Is(role Role) bool {
	return !a.Anonymous() && a.Role == role
}
