package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/copperline/userhub/internal/users/domain"
	"github.com/copperline/userhub/internal/users/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestCreateAndGetUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Users().CreateUser(ctx, domain.User{
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: "$argon2id$hash",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID, "sqlite assigns the first rowid")
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.IsZero())

	byID, err := st.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, byID)

	byEmail, err := st.Users().GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, created, byEmail)
}

func TestGetUserNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().GetUserByID(ctx, 42)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByEmail(ctx, "ghost@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUniqueEmailConstraint(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Users().CreateUser(ctx, domain.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	// The unique index rejects a second insert regardless of any
	// application-level exists-check.
	_, err = st.Users().CreateUser(ctx, domain.User{Name: "Impostor", Email: "ana@x.com", PasswordHash: "h2"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUniqueEmailConstraintOnUpdate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	ana, err := st.Users().CreateUser(ctx, domain.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = st.Users().CreateUser(ctx, domain.User{Name: "Ben", Email: "ben@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	ana.Email = "ben@x.com"
	_, err = st.Users().UpdateUser(ctx, ana)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Users().CreateUser(ctx, domain.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	byEmail, err := st.Users().ExistsByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.True(t, byEmail)

	// Uniqueness is exact-match; a case variant is a different email.
	variant, err := st.Users().ExistsByEmail(ctx, "ANA@x.com")
	require.NoError(t, err)
	require.False(t, variant)

	byID, err := st.Users().ExistsByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, byID)

	absent, err := st.Users().ExistsByID(ctx, 999)
	require.NoError(t, err)
	require.False(t, absent)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Users().CreateUser(ctx, domain.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	created.Name = "Ana Maria"
	created.PasswordHash = "h2"
	updated, err := st.Users().UpdateUser(ctx, created)
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", updated.Name)
	require.Equal(t, "h2", updated.PasswordHash)
	require.Equal(t, created.ID, updated.ID)

	t.Run("absent id", func(t *testing.T) {
		_, err := st.Users().UpdateUser(ctx, domain.User{ID: 999, Name: "x", Email: "x@x.com", PasswordHash: "h"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Users().CreateUser(ctx, domain.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, st.Users().DeleteUser(ctx, created.ID))

	_, err = st.Users().GetUserByID(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, st.Users().DeleteUser(ctx, created.ID), store.ErrNotFound)
}

func TestListUsersOrder(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := st.Users().CreateUser(ctx, domain.User{Name: "u", Email: email, PasswordHash: "h"})
		require.NoError(t, err)
	}

	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "a@x.com", users[0].Email)
	require.Equal(t, "c@x.com", users[2].Email)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	t.Run("rollback on error", func(t *testing.T) {
		wantErr := errors.New("boom")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Users().CreateUser(ctx, domain.User{Name: "Tmp", Email: "tmp@x.com", PasswordHash: "h"})
			require.NoError(t, err)
			return wantErr
		})
		require.ErrorIs(t, err, wantErr)

		exists, err := st.Users().ExistsByEmail(ctx, "tmp@x.com")
		require.NoError(t, err)
		require.False(t, exists, "rolled-back insert must not be visible")
	})

	t.Run("commit on success", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Users().CreateUser(ctx, domain.User{Name: "Kept", Email: "kept@x.com", PasswordHash: "h"})
			return err
		})
		require.NoError(t, err)

		exists, err := st.Users().ExistsByEmail(ctx, "kept@x.com")
		require.NoError(t, err)
		require.True(t, exists)
	})
}
