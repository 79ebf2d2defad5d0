package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoCredentials is returned when a credential provider has no token to offer
var ErrNoCredentials = errors.New("no API credentials available")

// CredentialProvider supplies the bearer token for calls to the ticketing
// API. Tokens are loaded on demand and never refreshed automatically; a
// stale token simply fails the call and sends the organizer back through
// login.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenProvider holds a fixed token, useful for tooling and tests
type StaticTokenProvider struct {
	AccessToken string
}

func (p *StaticTokenProvider) Token(ctx context.Context) (string, error) {
	if p.AccessToken == "" {
		return "", ErrNoCredentials
	}
	return p.AccessToken, nil
}

type tokenContextKey struct{}

// WithToken returns a context carrying the session's bearer token
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token carried by the context, if any
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}

// ContextTokenProvider reads the bearer token from the request context,
// where the auth middleware places it after loading the session.
type ContextTokenProvider struct{}

func (p *ContextTokenProvider) Token(ctx context.Context) (string, error) {
	token, ok := TokenFromContext(ctx)
	if !ok {
		return "", ErrNoCredentials
	}
	return token, nil
}

// TokenExpired reports whether a bearer token carries an exp claim in the
// past. The signature is not verified; the API remains the authority and
// this only lets the dashboard fail fast with a clear message instead of
// bouncing an opaque 401 off the API.
func TokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT; let the API decide.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
