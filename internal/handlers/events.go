package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"organizer-dashboard/internal/models"
	"organizer-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
)

// EventHandler handles event and ticket type management
type EventHandler struct {
	api services.TicketingAPI
}

// NewEventHandler creates a new event handler
func NewEventHandler(api services.TicketingAPI) *EventHandler {
	return &EventHandler{api: api}
}

// ListEvents returns the organizer's events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.api.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// CreateEvent creates a new event
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	event, err := h.api.CreateEvent(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// GetEvent returns a single event
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	event, err := h.api.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Dashboard returns the event's sales metrics
func (h *EventHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	dashboard, err := h.api.GetEventDashboard(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// ListTicketTypes returns the event's ticket types
func (h *EventHandler) ListTicketTypes(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	ticketTypes, err := h.api.ListTicketTypes(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ticket_types": ticketTypes})
}

// CreateTicketType creates a new ticket type for the event
func (h *EventHandler) CreateTicketType(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var req models.TicketTypeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	ticketType, err := h.api.CreateTicketType(r.Context(), eventID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ticketType)
}
