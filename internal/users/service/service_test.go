package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/copperline/userhub/internal/users/store"
	"github.com/copperline/userhub/internal/users/store/drivers/sqlite"
	"github.com/copperline/userhub/pkg/cryptox"
	"github.com/copperline/userhub/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "userhub-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestTokenService(t *testing.T, now func() time.Time) *TokenService {
	t.Helper()

	key := []byte("service-test-secret-key-32-bytes")
	signer, err := jwtx.NewSignerHS256(key)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(key, "userhub-test", now)
	require.NoError(t, err)

	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   "userhub-test",
		TTL:      time.Hour,
		Now:      now,
	}
}

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	view, err := svc.Create(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, int64(1), view.ID, "storage assigns the first id")
	require.Equal(t, "Ana", view.Name)
	require.Equal(t, "ana@x.com", view.Email)

	t.Run("distinct emails each succeed", func(t *testing.T) {
		second, err := svc.Create(ctx, "Ben", "ben@x.com", "pw2")
		require.NoError(t, err)
		require.Equal(t, int64(2), second.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "Impostor", "ana@x.com", "pw3")
		require.ErrorIs(t, err, ErrDuplicateEmail)

		// Still exactly one record for that email.
		user, err := svc.Store.Users().GetUserByEmail(ctx, "ana@x.com")
		require.NoError(t, err)
		require.Equal(t, "Ana", user.Name)
	})

	t.Run("stored hash is not the plaintext", func(t *testing.T) {
		user, err := svc.Store.Users().GetUserByEmail(ctx, "ana@x.com")
		require.NoError(t, err)
		require.NotEqual(t, "pw1", user.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("pw1", user.PasswordHash))
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, views)

	_, err = svc.Create(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Ben", "ben@x.com", "pw2")
	require.NoError(t, err)

	views, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "ana@x.com", views[0].Email)
	require.Equal(t, "ben@x.com", views[1].Email)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	created, err := svc.Create(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	view, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, view)

	_, err = svc.Get(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*UserService, int64, string) {
		svc := &UserService{Store: newTestStore(t)}
		created, err := svc.Create(ctx, "Ana", "ana@x.com", "pw1")
		require.NoError(t, err)
		stored, err := svc.Store.Users().GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		return svc, created.ID, stored.PasswordHash
	}

	t.Run("name only leaves email and hash unchanged", func(t *testing.T) {
		svc, id, originalHash := setup(t)

		view, err := svc.Update(ctx, id, UpdateUserParams{Name: strPtr("Ana Maria")})
		require.NoError(t, err)
		require.Equal(t, "Ana Maria", view.Name)
		require.Equal(t, "ana@x.com", view.Email)

		stored, err := svc.Store.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, originalHash, stored.PasswordHash)
	})

	t.Run("blank and absent fields change nothing", func(t *testing.T) {
		svc, id, originalHash := setup(t)

		view, err := svc.Update(ctx, id, UpdateUserParams{
			Name:     strPtr("   "),
			Email:    strPtr(""),
			Password: nil,
		})
		require.NoError(t, err)
		require.Equal(t, "Ana", view.Name)
		require.Equal(t, "ana@x.com", view.Email)

		stored, err := svc.Store.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, originalHash, stored.PasswordHash)
	})

	t.Run("password change replaces the hash", func(t *testing.T) {
		svc, id, originalHash := setup(t)

		_, err := svc.Update(ctx, id, UpdateUserParams{Password: strPtr("pw2")})
		require.NoError(t, err)

		stored, err := svc.Store.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
		require.NotEqual(t, originalHash, stored.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("pw2", stored.PasswordHash))
		require.Error(t, cryptox.VerifyPassword("pw1", stored.PasswordHash))
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		svc, id, _ := setup(t)

		view, err := svc.Update(ctx, id, UpdateUserParams{Email: strPtr("ana@x.com")})
		require.NoError(t, err)
		require.Equal(t, "ana@x.com", view.Email)
	})

	t.Run("another user's email is a conflict", func(t *testing.T) {
		svc, id, _ := setup(t)
		_, err := svc.Create(ctx, "Ben", "ben@x.com", "pw2")
		require.NoError(t, err)

		_, err = svc.Update(ctx, id, UpdateUserParams{Email: strPtr("ben@x.com")})
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("free email can be taken", func(t *testing.T) {
		svc, id, _ := setup(t)

		view, err := svc.Update(ctx, id, UpdateUserParams{Email: strPtr("ana.maria@x.com")})
		require.NoError(t, err)
		require.Equal(t, "ana.maria@x.com", view.Email)
	})

	t.Run("absent id is not found", func(t *testing.T) {
		svc, _, _ := setup(t)

		_, err := svc.Update(ctx, 999, UpdateUserParams{Name: strPtr("Nobody")})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	created, err := svc.Create(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is a not-found, not a silent success.
	require.ErrorIs(t, svc.Delete(ctx, created.ID), store.ErrNotFound)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	users := &UserService{Store: st}
	tokens := newTestTokenService(t, nil)
	auth := &AuthService{Store: st, Tokens: tokens}

	created, err := users.Create(ctx, "Ana", "ana@x.com", "pw1")
	require.NoError(t, err)

	t.Run("correct credentials yield a valid token", func(t *testing.T) {
		token, view, err := auth.Login(ctx, "ana@x.com", "pw1")
		require.NoError(t, err)
		require.Equal(t, created, view)

		subject, err := tokens.Validate(token)
		require.NoError(t, err)
		require.Equal(t, "ana@x.com", subject)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, wrongPw := auth.Login(ctx, "ana@x.com", "nope")
		_, _, unknown := auth.Login(ctx, "ghost@x.com", "pw1")

		require.ErrorIs(t, wrongPw, ErrInvalidCredentials)
		require.ErrorIs(t, unknown, ErrInvalidCredentials)
		require.Equal(t, wrongPw.Error(), unknown.Error())
	})
}

func TestTokenServiceExpiry(t *testing.T) {
	issued := time.Now().UTC()
	clock := issued

	svc := newTestTokenService(t, func() time.Time { return clock })
	svc.TTL = time.Minute

	token, err := svc.Issue("ana@x.com")
	require.NoError(t, err)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", subject)

	// Advance the simulated clock past the TTL.
	clock = issued.Add(2 * time.Minute)
	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceCollapsesFailureModes(t *testing.T) {
	svc := newTestTokenService(t, nil)

	token, err := svc.Issue("ana@x.com")
	require.NoError(t, err)

	other := newTestTokenService(t, nil)
	forgedSigner, err := jwtx.NewSignerHS256([]byte("a-completely-different-secret-yo"))
	require.NoError(t, err)
	other.Signer = forgedSigner
	forged, err := other.Issue("ana@x.com")
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"malformed": "not.a.token",
		"forged":    forged,
		"truncated": token[:len(token)/2],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Validate(tok)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
