package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Signer signs JWTs with HMAC-SHA256. The key is a process-wide secret
// shared with the verifier; it is read-only after construction so concurrent
// use needs no locking.
type HS256Signer struct {
	key []byte
	alg string
}

func newHS256Signer(key []byte) (*HS256Signer, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty HMAC key")
	}
	return &HS256Signer{
		key: key,
		alg: jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Validate does a quick sanity check that we actually have a key.
func (s *HS256Signer) Validate() error {
	if len(s.key) == 0 {
		return errors.New("jwtx: nil HMAC key")
	}
	return nil
}

// HS256Verifier validates JWTs signed with HMAC-SHA256.
type HS256Verifier struct {
	key    []byte
	issuer string
	now    func() time.Time
}

func newHS256Verifier(key []byte, issuer string, now func() time.Time) (*HS256Verifier, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty HMAC key")
	}
	if now == nil {
		now = time.Now
	}
	return &HS256Verifier{key: key, issuer: issuer, now: now}, nil
}

// Verify validates the JWT string and returns its parsed Claims. Expired,
// forged and malformed tokens all come back as distinct jwtx errors; callers
// that must not leak which condition failed collapse them before responding.
func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
