package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"organizer-dashboard/internal/middleware"
	"organizer-dashboard/internal/models"
	"organizer-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
)

// Session value keys for the sell flow
const (
	sessionCartKey      = "cart"
	sessionCartEventKey = "cart_event"
)

// SellHandler handles the ticket sale flow: selection, cart updates,
// order preview and checkout submission
type SellHandler struct {
	api    services.TicketingAPI
	orders *services.OrderService
	store  sessions.Store
}

// NewSellHandler creates a new sell handler
func NewSellHandler(api services.TicketingAPI, orders *services.OrderService, store sessions.Store) *SellHandler {
	return &SellHandler{api: api, orders: orders, store: store}
}

// sellPageResponse is the data behind the ticket-selection screen
type sellPageResponse struct {
	Event         *models.Event        `json:"event"`
	TicketTypes   []*models.TicketType `json:"ticket_types"`
	Cart          map[int]int          `json:"cart"`
	Summary       *models.OrderSummary `json:"summary"`
	CartParam     string               `json:"cart_param"`
	TotalQuantity int                  `json:"total_quantity"`
}

// SellPage returns the ticket-selection screen data: the live catalog,
// the session cart and the running summary. CartParam is the serialized
// cart the client carries to the buyer-details screen as a query
// parameter.
func (h *SellHandler) SellPage(w http.ResponseWriter, r *http.Request) {
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

	ticketTypes, err := h.api.ListTicketTypes(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := h.cartFromSession(session, eventID)
	summary := services.Reconcile(cart, ticketTypes)

	writeJSON(w, http.StatusOK, sellPageResponse{
		Event:         event,
		TicketTypes:   ticketTypes,
		Cart:          cart.Quantities,
		Summary:       summary,
		CartParam:     cart.Serialize(),
		TotalQuantity: cart.TotalQuantity(),
	})
}

type updateCartRequest struct {
	TicketTypeID int `json:"ticket_type_id"`
	Quantity     int `json:"quantity"`
}

// UpdateCart replaces one quantity in the session cart and returns the
// recomputed summary
func (h *SellHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := h.cartFromSession(session, eventID)
	cart.SetQuantity(req.TicketTypeID, req.Quantity)

	h.saveCartToSession(session, cart, eventID)
	if err := session.Save(r, w); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	summary, err := h.orders.PreviewOrder(r.Context(), eventID, cart)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sellPageResponse{
		Cart:          cart.Quantities,
		Summary:       summary,
		CartParam:     cart.Serialize(),
		TotalQuantity: cart.TotalQuantity(),
	})
}

// checkoutPreviewResponse is the data behind the buyer-details screen
type checkoutPreviewResponse struct {
	Event   *models.Event        `json:"event"`
	Summary *models.OrderSummary `json:"summary"`
}

// CheckoutPreview reconciles a cart carried in the query string against a
// freshly fetched catalog. Prices embedded anywhere in the navigation
// state are ignored; only the serialized quantity mapping crosses the
// screen boundary.
func (h *SellHandler) CheckoutPreview(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	cartParam := r.URL.Query().Get("cart")
	if cartParam == "" {
		writeError(w, http.StatusBadRequest, "no tickets selected")
		return
	}

	cart, err := models.DeserializeCart(cartParam)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	event, err := h.api.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summary, err := h.orders.PreviewOrder(r.Context(), eventID, cart)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkoutPreviewResponse{
		Event:   event,
		Summary: summary,
	})
}

type checkoutRequest struct {
	Cart          string `json:"cart"`
	BuyerName     string `json:"buyer_name"`
	BuyerEmail    string `json:"buyer_email"`
	BuyerDocument string `json:"buyer_document"`
}

// ProcessCheckout validates the buyer, reconciles the carried cart
// against a fresh catalog, expands it into one purchase call per ticket
// and submits the batch. A failed batch is NOT rolled back or retried;
// the first failure's detail comes back as the error and any units that
// succeeded stay sold.
func (h *SellHandler) ProcessCheckout(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := models.DeserializeCart(req.Cart)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	buyer := models.BuyerInfo{
		Name:     req.BuyerName,
		Email:    req.BuyerEmail,
		Document: req.BuyerDocument,
	}

	result, err := h.orders.Checkout(r.Context(), eventID, cart, buyer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Clear the session cart after a successful checkout.
	session, err := h.store.Get(r, middleware.SessionName)
	if err == nil {
		delete(session.Values, sessionCartKey)
		delete(session.Values, sessionCartEventKey)
		session.Save(r, w)
	}

	writeJSON(w, http.StatusCreated, result)
}

// Helper methods

// cartFromSession restores the session cart, starting fresh when there is
// no cart, the cart belongs to another event, or the stored value does
// not decode
func (h *SellHandler) cartFromSession(session *sessions.Session, eventID int) *models.Cart {
	storedEventID, ok := session.Values[sessionCartEventKey].(int)
	if !ok || storedEventID != eventID {
		return models.NewCart()
	}

	serialized, ok := session.Values[sessionCartKey].(string)
	if !ok {
		return models.NewCart()
	}

	cart, err := models.DeserializeCart(serialized)
	if err != nil {
		return models.NewCart()
	}

	return cart
}

func (h *SellHandler) saveCartToSession(session *sessions.Session, cart *models.Cart, eventID int) {
	session.Values[sessionCartKey] = cart.Serialize()
	session.Values[sessionCartEventKey] = eventID
}
