package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"organizer-dashboard/internal/middleware"
	"organizer-dashboard/internal/services"

	"github.com/gorilla/sessions"
)

// AuthHandler handles login and logout against the remote ticketing API
type AuthHandler struct {
	api   services.TicketingAPI
	store sessions.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(api services.TicketingAPI, store sessions.Store) *AuthHandler {
	return &AuthHandler{api: api, store: store}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email string `json:"email"`
}

// Login exchanges organizer credentials for an API token and stores it in
// the session. The token is the session's only credential; it is loaded
// on demand per request and never refreshed behind the organizer's back.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	tokenResp, err := h.api.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) {
			writeError(w, http.StatusUnauthorized, apiErr.Detail)
			return
		}
		writeServiceError(w, err)
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	session.Values[middleware.SessionTokenKey] = tokenResp.AccessToken
	session.Values[middleware.SessionEmailKey] = req.Email
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Email: req.Email})
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
