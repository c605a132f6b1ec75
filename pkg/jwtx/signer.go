package jwtx

import (
	"errors"
	"time"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// NewSignerHS256 creates an HMAC-SHA256 signer from a raw secret key.
func NewSignerHS256(key []byte) (Signer, error) {
	return newHS256Signer(key)
}

// NewVerifierHS256 creates a verifier sharing the signer's secret key.
// now is the clock used for expiry checks; nil means time.Now.
func NewVerifierHS256(key []byte, issuer string, now func() time.Time) (Verifier, error) {
	return newHS256Verifier(key, issuer, now)
}
