package store

import (
	"context"
	"errors"

	"github.com/copperline/userhub/internal/users/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn returns an
	// error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by its storage-assigned id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByEmail reports whether any user owns the exact email value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByID reports whether a user with the id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// CreateUser inserts a new user and returns it with the assigned id.
	// A unique constraint on email maps to ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateUser persists name, email and password_hash for an existing id
	// and bumps updated_at. Email collisions map to ErrAlreadyExists.
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)

	// DeleteUser removes the record irreversibly. Absent ids map to
	// ErrNotFound.
	DeleteUser(ctx context.Context, id int64) error

	// ListUsers returns all users in storage iteration order.
	ListUsers(ctx context.Context) ([]domain.User, error)
}
