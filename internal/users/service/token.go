package service

import (
	"time"

	"github.com/copperline/userhub/pkg/jwtx"
)

// TokenService issues and validates the signed, time-bound identity tokens
// returned by login. Tokens are stateless: validity is entirely signature +
// expiry, nothing is stored server-side and nothing can be revoked.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration

	// Now is the clock used when issuing; nil means time.Now. Injectable for
	// tests that simulate the passage of time.
	Now func() time.Time
}

// Issue creates a token bound to subject with expiry = now + TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	return s.Signer.Sign(jwtx.NewClaims(subject, s.Issuer, ttl, now().UTC()))
}

// Validate verifies the signature and expiry and returns the subject. All
// failure modes (expired, signature mismatch, malformed) collapse to the one
// ErrInvalidToken so the caller cannot tell which check failed.
func (s *TokenService) Validate(token string) (string, error) {
	claims, err := s.Verifier.Verify(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
