package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"organizer-dashboard/internal/models"
	"organizer-dashboard/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSellTestRouter(api services.TicketingAPI) (chi.Router, sessions.Store) {
	store := sessions.NewCookieStore([]byte("test-session-secret"))
	orders := services.NewOrderService(api)
	handler := NewSellHandler(api, orders, store)

	r := chi.NewRouter()
	r.Route("/api/events/{eventID}", func(r chi.Router) {
		r.Get("/sell", handler.SellPage)
		r.Post("/sell/cart", handler.UpdateCart)
		r.Get("/sell/checkout", handler.CheckoutPreview)
		r.Post("/sell/checkout", handler.ProcessCheckout)
	})
	return r, store
}

func sellTestEvent() *models.Event {
	return &models.Event{ID: 1, Name: "Summer Festival", Status: models.EventActive}
}

func sellTestCatalog() []*models.TicketType {
	return []*models.TicketType{
		{ID: 5, EventID: 1, Name: "General Admission", Price: decimal.NewFromInt(10)},
		{ID: 7, EventID: 1, Name: "VIP", Price: decimal.NewFromInt(25)},
	}
}

func TestSellHandler_SellPage(t *testing.T) {
	api := new(services.MockTicketingAPI)
	api.On("GetEvent", mock.Anything, 1).Return(sellTestEvent(), nil)
	api.On("ListTicketTypes", mock.Anything, 1).Return(sellTestCatalog(), nil)

	router, _ := newSellTestRouter(api)

	req := httptest.NewRequest("GET", "/api/events/1/sell", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Event       *models.Event        `json:"event"`
		TicketTypes []*models.TicketType `json:"ticket_types"`
		CartParam   string               `json:"cart_param"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Summer Festival", resp.Event.Name)
	assert.Len(t, resp.TicketTypes, 2)
	assert.Equal(t, "{}", resp.CartParam)
}

func TestSellHandler_UpdateCart(t *testing.T) {
	api := new(services.MockTicketingAPI)
	api.On("ListTicketTypes", mock.Anything, 1).Return(sellTestCatalog(), nil)

	router, _ := newSellTestRouter(api)

	body, _ := json.Marshal(map[string]int{"ticket_type_id": 5, "quantity": 2})
	req := httptest.NewRequest("POST", "/api/events/1/sell/cart", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart          map[string]int       `json:"cart"`
		Summary       *models.OrderSummary `json:"summary"`
		CartParam     string               `json:"cart_param"`
		TotalQuantity int                  `json:"total_quantity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Cart["5"])
	assert.Equal(t, `{"5":2}`, resp.CartParam)
	assert.Equal(t, 2, resp.TotalQuantity)
	assert.True(t, resp.Summary.Total.Equal(decimal.NewFromInt(20)))

	// The cart must come back on the session cookie.
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestSellHandler_UpdateCart_NegativeQuantity(t *testing.T) {
	api := new(services.MockTicketingAPI)
	router, _ := newSellTestRouter(api)

	body, _ := json.Marshal(map[string]int{"ticket_type_id": 5, "quantity": -1})
	req := httptest.NewRequest("POST", "/api/events/1/sell/cart", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	api.AssertNotCalled(t, "ListTicketTypes")
}

func TestSellHandler_CheckoutPreview(t *testing.T) {
	api := new(services.MockTicketingAPI)
	api.On("GetEvent", mock.Anything, 1).Return(sellTestEvent(), nil)
	api.On("ListTicketTypes", mock.Anything, 1).Return(sellTestCatalog(), nil)

	router, _ := newSellTestRouter(api)

	cartParam := url.QueryEscape(`{"5":2,"7":1}`)
	req := httptest.NewRequest("GET", "/api/events/1/sell/checkout?cart="+cartParam, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Summary *models.OrderSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Summary.Items, 2)
	assert.True(t, resp.Summary.Total.Equal(decimal.NewFromInt(45)))
}

func TestSellHandler_CheckoutPreview_MalformedCart(t *testing.T) {
	api := new(services.MockTicketingAPI)
	router, _ := newSellTestRouter(api)

	req := httptest.NewRequest("GET", "/api/events/1/sell/checkout?cart="+url.QueryEscape(`{"vip":2}`), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed cart")
}

func TestSellHandler_ProcessCheckout(t *testing.T) {
	api := new(services.MockTicketingAPI)
	api.On("ListTicketTypes", mock.Anything, 1).Return(sellTestCatalog(), nil)
	api.On("CreateSale", mock.Anything, mock.Anything).
		Return(&models.Sale{ID: 1, Status: models.SalePaid}, nil).Times(3)

	router, _ := newSellTestRouter(api)

	body, _ := json.Marshal(map[string]string{
		"cart":           `{"5":2,"7":1}`,
		"buyer_name":     "Maria Silva",
		"buyer_email":    "maria@example.com",
		"buyer_document": "12345678900",
	})
	req := httptest.NewRequest("POST", "/api/events/1/sell/checkout", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Sales, 3)
	api.AssertExpectations(t)
}

func TestSellHandler_ProcessCheckout_InvalidBuyer(t *testing.T) {
	api := new(services.MockTicketingAPI)
	router, _ := newSellTestRouter(api)

	body, _ := json.Marshal(map[string]string{
		"cart":       `{"5":1}`,
		"buyer_name": "Maria Silva",
		// email and document missing
	})
	req := httptest.NewRequest("POST", "/api/events/1/sell/checkout", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "document")
	api.AssertNotCalled(t, "CreateSale")
}

func TestSellHandler_ProcessCheckout_BatchFailure(t *testing.T) {
	api := new(services.MockTicketingAPI)
	api.On("ListTicketTypes", mock.Anything, 1).Return(sellTestCatalog(), nil)
	api.On("CreateSale", mock.Anything, mock.Anything).
		Return(nil, &services.APIError{StatusCode: 400, Detail: "Sold out"})

	router, _ := newSellTestRouter(api)

	body, _ := json.Marshal(map[string]string{
		"cart":           `{"5":1}`,
		"buyer_name":     "Maria Silva",
		"buyer_email":    "maria@example.com",
		"buyer_document": "12345678900",
	})
	req := httptest.NewRequest("POST", "/api/events/1/sell/checkout", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Sold out")
}

func TestSellHandler_ProcessCheckout_EmptyCart(t *testing.T) {
	api := new(services.MockTicketingAPI)
	api.On("ListTicketTypes", mock.Anything, 1).Return(sellTestCatalog(), nil)

	router, _ := newSellTestRouter(api)

	body, _ := json.Marshal(map[string]string{
		"cart":           `{}`,
		"buyer_name":     "Maria Silva",
		"buyer_email":    "maria@example.com",
		"buyer_document": "12345678900",
	})
	req := httptest.NewRequest("POST", "/api/events/1/sell/checkout", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	api.AssertNotCalled(t, "CreateSale")
}
