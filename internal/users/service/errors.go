package service

import "errors"

// Domain error kinds surfaced to the transport layer. Each is terminal for
// the current operation; nothing is retried internally.
var (
	// ErrDuplicateEmail reports a violation of the one-user-per-email
	// invariant, on create or on update.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are indistinguishable on purpose so error content cannot
	// be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken covers expired, malformed and forged tokens alike.
	ErrInvalidToken = errors.New("invalid token")
)
