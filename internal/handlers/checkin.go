package handlers

import (
	"net/http"
	"strconv"

	"organizer-dashboard/internal/models"
	"organizer-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
)

// CheckinHandler handles attendee check-in and ticket management
type CheckinHandler struct {
	api     services.TicketingAPI
	checkin *services.CheckinService
}

// NewCheckinHandler creates a new check-in handler
func NewCheckinHandler(api services.TicketingAPI, checkin *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{api: api, checkin: checkin}
}

// rosterResponse combines the sales list with check-in progress counters
type rosterResponse struct {
	Sales    []*models.Sale          `json:"sales"`
	Progress *models.CheckinProgress `json:"progress"`
}

// Roster returns the event's sales with check-in progress counters
func (h *CheckinHandler) Roster(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	sales, progress, err := h.checkin.Roster(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rosterResponse{Sales: sales, Progress: progress})
}

// CheckIn validates the scanned code and marks the ticket as used
func (h *CheckinHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	sale, err := h.checkin.CheckIn(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// QRCode serves the ticket's check-in code as a PNG image
func (h *CheckinHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.Atoi(chi.URLParam(r, "saleID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := h.api.GetSale(r.Context(), saleID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	size := 256
	if s := r.URL.Query().Get("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 64 && parsed <= 1024 {
			size = parsed
		}
	}

	png, err := h.checkin.QRCodePNG(sale, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// CancelSale marks a sale as canceled on the ticketing service
func (h *CheckinHandler) CancelSale(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.Atoi(chi.URLParam(r, "saleID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := h.api.CancelSale(r.Context(), saleID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}

// ResendEmail asks the ticketing service to resend the ticket email
func (h *CheckinHandler) ResendEmail(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.Atoi(chi.URLParam(r, "saleID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sale ID")
		return
	}

	sale, err := h.api.ResendSaleEmail(r.Context(), saleID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}
