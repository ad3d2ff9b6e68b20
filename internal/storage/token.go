package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a stored bearer token. A zero ExpiresAt means it does not expire.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !t.ExpiresAt.After(now)
}

// NewToken wraps value. When value is a JWT carrying an exp claim, the expiry is
// taken from it; opaque tokens get ttl (zero means no expiry).
func NewToken(value string, ttl time.Duration) Token {
	value = strings.TrimSpace(value)
	tok := Token{Value: value}
	if exp, ok := jwtExpiry(value); ok {
		tok.ExpiresAt = exp
		return tok
	}
	if ttl > 0 {
		tok.ExpiresAt = time.Now().Add(ttl)
	}
	return tok
}

// jwtExpiry reads the exp claim without verifying the signature; the server
// is the one that validates the token.
func jwtExpiry(value string) (time.Time, bool) {
	if strings.Count(value, ".") != 2 {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(value, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenSource returns a provider yielding the stored token at call time. It
// yields "" when no token is stored or the stored one has expired, so the
// caller sends no Authorization header. It is assignable to petstore.TokenFunc.
func TokenSource(s TokenStore, onError func(error)) func() string {
	return func() string {
		tok, err := s.LoadToken()
		if err != nil {
			if onError != nil && !errors.Is(err, ErrNoToken) {
				onError(err)
			}
			return ""
		}
		if tok.Expired(time.Now()) {
			return ""
		}
		return tok.Value
	}
}
