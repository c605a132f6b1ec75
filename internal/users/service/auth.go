package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/copperline/userhub/internal/users/domain"
	"github.com/copperline/userhub/internal/users/store"
	"github.com/copperline/userhub/pkg/cryptox"
	"github.com/copperline/userhub/pkg/slogx"
)

// AuthService orchestrates login: look up the user, verify the password,
// have the token service mint a token bound to the user's email.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Login authenticates the credentials and returns a bearer token plus the
// user's public view. Unknown email and wrong password both fail with
// ErrInvalidCredentials; the distinction never leaves this function.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.PublicUser, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.PublicUser{}, ErrInvalidCredentials
		}
		return "", domain.PublicUser{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.Int64("user_id", user.ID))
		return "", domain.PublicUser{}, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.Email)
	if err != nil {
		return "", domain.PublicUser{}, err
	}

	return token, user.Public(), nil
}
