package middleware

import (
	"encoding/json"
	"net/http"

	"organizer-dashboard/internal/services"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie session holding the organizer's API token
const SessionName = "session"

// Session value keys
const (
	SessionTokenKey = "api_token"
	SessionEmailKey = "account_email"
)

// AuthMiddleware loads the organizer's API token from the session into
// the request context, where the ticketing client's credential provider
// picks it up.
type AuthMiddleware struct {
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{store: store}
}

// LoadToken places the session's bearer token, when present, into the
// request context. Requests without a token pass through untouched;
// RequireAuth decides whether that matters.
func (m *AuthMiddleware) LoadToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			// Continue without credentials if the session is invalid
			next.ServeHTTP(w, r)
			return
		}

		token, ok := session.Values[SessionTokenKey].(string)
		if !ok || token == "" {
			next.ServeHTTP(w, r)
			return
		}

		if services.TokenExpired(token) {
			// Drop the stale token; the organizer has to log in again.
			delete(session.Values, SessionTokenKey)
			delete(session.Values, SessionEmailKey)
			session.Options.MaxAge = -1
			session.Save(r, w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(services.WithToken(r.Context(), token)))
	})
}

// RequireAuth rejects requests whose context carries no API token
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := services.TokenFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
