package service

import (
	"context"
	"errors"
	"strings"

	"github.com/copperline/userhub/internal/users/domain"
	"github.com/copperline/userhub/internal/users/store"
	"github.com/copperline/userhub/pkg/cryptox"
)

// UserService orchestrates user CRUD against the store, enforcing email
// uniqueness and partial-update semantics. It holds no state of its own;
// the store exclusively owns persisted user records.
type UserService struct {
	Store store.Store
}

// UpdateUserParams carries the optional fields of an update. A nil pointer
// means "field absent"; a present-but-blank value is treated the same as
// absent and clears nothing.
type UpdateUserParams struct {
	Name     *string
	Email    *string
	Password *string
}

// Create registers a new user. The email must not be owned by any existing
// user; the password is hashed before anything is persisted.
func (s *UserService) Create(ctx context.Context, name, email, password string) (domain.PublicUser, error) {
	exists, err := s.Store.Users().ExistsByEmail(ctx, email)
	if err != nil {
		return domain.PublicUser{}, err
	}
	if exists {
		return domain.PublicUser{}, ErrDuplicateEmail
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	created, err := s.Store.Users().CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		// The unique index catches the race where two concurrent creates
		// both pass the exists-check above.
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrDuplicateEmail
		}
		return domain.PublicUser{}, err
	}

	return created.Public(), nil
}

// List returns the public view of every stored user, in storage iteration
// order.
func (s *UserService) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.Store.Users().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}
	return views, nil
}

// Get returns the public view of a single user.
func (s *UserService) Get(ctx context.Context, id int64) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

// Update applies the present, non-blank fields of p to the user and persists
// the result. Absent or blank fields leave the stored value unchanged.
// Changing the email to one owned by another user fails with
// ErrDuplicateEmail; re-submitting the user's own email is a no-op.
func (s *UserService) Update(ctx context.Context, id int64, p UpdateUserParams) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}

	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		user.Name = *p.Name
	}

	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		if *p.Email != user.Email {
			exists, err := s.Store.Users().ExistsByEmail(ctx, *p.Email)
			if err != nil {
				return domain.PublicUser{}, err
			}
			if exists {
				return domain.PublicUser{}, ErrDuplicateEmail
			}
			user.Email = *p.Email
		}
	}

	if p.Password != nil && strings.TrimSpace(*p.Password) != "" {
		hash, err := cryptox.HashPassword(*p.Password)
		if err != nil {
			return domain.PublicUser{}, err
		}
		user.PasswordHash = hash
	}

	updated, err := s.Store.Users().UpdateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrDuplicateEmail
		}
		return domain.PublicUser{}, err
	}

	return updated.Public(), nil
}

// Delete removes the user irreversibly. Deleting an absent id fails with the
// store's not-found error.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	exists, err := s.Store.Users().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}
	return s.Store.Users().DeleteUser(ctx, id)
}
