package domain

import "time"

// User is the durable account record. The ID is assigned by storage on
// creation and never changes afterwards.
type User struct {
	ID           int64
	Name         string
	Email        string // exact-match unique across all users
	PasswordHash string // argon2 encoded, never exposed outward
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the projection safe for external exposure. It is built fresh
// from a User for every response; the password hash is never included.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the outward-facing projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
