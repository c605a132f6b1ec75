package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/copperline/userhub/internal/users/service"
	"github.com/copperline/userhub/internal/users/store"
	"github.com/copperline/userhub/pkg/usersdk"
)

// writeServiceError translates domain error kinds into API error responses.
// Anything unrecognised is an internal failure and gets logged with detail
// the client never sees.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		usersdk.ErrDuplicateEmail.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		usersdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		usersdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		usersdk.ErrNotFound.WriteError(w)
	default:
		log.Error("request failed", "err", err)
		usersdk.ErrServerError.WriteError(w)
	}
}
