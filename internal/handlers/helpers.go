package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"organizer-dashboard/internal/models"
	"organizer-dashboard/internal/services"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse is the JSON shape of every error the dashboard returns
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service-layer errors onto HTTP statuses. All
// error kinds surface to the UI as a user-visible message; nothing is
// swallowed here.
func writeServiceError(w http.ResponseWriter, err error) {
	var malformedCart *models.MalformedCartError
	if errors.As(err, &malformedCart) {
		writeError(w, http.StatusBadRequest, malformedCart.Error())
		return
	}

	var validation *models.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: validation.Fields,
		})
		return
	}

	var batchErr *services.PurchaseBatchError
	if errors.As(err, &batchErr) {
		writeError(w, http.StatusBadGateway, batchErr.Detail)
		return
	}

	var catalogErr *services.CatalogFetchError
	if errors.As(err, &catalogErr) {
		writeError(w, http.StatusBadGateway, "Could not load ticket types. Please try again.")
		return
	}

	var apiErr *services.APIError
	if errors.As(err, &apiErr) {
		writeError(w, http.StatusBadGateway, apiErr.Detail)
		return
	}

	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrSaleNotFound),
		errors.Is(err, models.ErrTicketTypeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("Unhandled service error: %v", err)
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
