package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"organizer-dashboard/internal/models"
)

// TicketingConfig represents ticketing API client configuration
type TicketingConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TicketingClient talks to the remote ticketing API. All event, ticket
// type and sale state lives behind that API; this client is the only
// place the dashboard performs network I/O.
type TicketingClient struct {
	baseURL     string
	client      *http.Client
	credentials CredentialProvider
}

// NewTicketingClient creates a new ticketing API client
func NewTicketingClient(config TicketingConfig, credentials CredentialProvider) *TicketingClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &TicketingClient{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		client:      &http.Client{Timeout: timeout},
		credentials: credentials,
	}
}

// APIError represents an error response from the ticketing API. Detail is
// the API's human-readable message and is what gets surfaced to the user.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ticketing API error (status %d): %s", e.StatusCode, e.Detail)
}

// CatalogFetchError indicates the ticket type catalog could not be loaded,
// either because the API was unreachable or returned a non-success status.
type CatalogFetchError struct {
	Err error
}

func (e *CatalogFetchError) Error() string {
	return fmt.Sprintf("failed to load ticket catalog: %v", e.Err)
}

func (e *CatalogFetchError) Unwrap() error {
	return e.Err
}

// TokenResponse represents the API's OAuth2 password-grant response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges organizer credentials for a bearer token. The token
// endpoint takes a form-encoded OAuth2 password grant rather than JSON.
func (c *TicketingClient) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tokenResp TokenResponse
	if err := c.do(req, &tokenResp); err != nil {
		return nil, err
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	return &tokenResp, nil
}

// ListEvents retrieves the organizer's events
func (c *TicketingClient) ListEvents(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	if err := c.getJSON(ctx, "/events/", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent retrieves a single event by ID
func (c *TicketingClient) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	var event models.Event
	if err := c.getJSON(ctx, fmt.Sprintf("/events/%d", eventID), &event); err != nil {
		if isNotFound(err) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// CreateEvent creates a new event
func (c *TicketingClient) CreateEvent(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error) {
	var event models.Event
	if err := c.postJSON(ctx, "/events/", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListTicketTypes retrieves the authoritative ticket type catalog for an
// event. Checkout re-fetches this rather than trusting any price a client
// carried along.
func (c *TicketingClient) ListTicketTypes(ctx context.Context, eventID int) ([]*models.TicketType, error) {
	var ticketTypes []*models.TicketType
	if err := c.getJSON(ctx, fmt.Sprintf("/events/%d/products", eventID), &ticketTypes); err != nil {
		return nil, &CatalogFetchError{Err: err}
	}
	return ticketTypes, nil
}

// CreateTicketType creates a new ticket type for an event
func (c *TicketingClient) CreateTicketType(ctx context.Context, eventID int, req *models.TicketTypeCreateRequest) (*models.TicketType, error) {
	var ticketType models.TicketType
	if err := c.postJSON(ctx, fmt.Sprintf("/events/%d/products", eventID), req, &ticketType); err != nil {
		return nil, err
	}
	return &ticketType, nil
}

// CreateSale submits one single-ticket commissioned sale. The endpoint
// accepts exactly one ticket per call; batch checkouts issue many of these
// concurrently.
func (c *TicketingClient) CreateSale(ctx context.Context, req *models.SaleCreateRequest) (*models.Sale, error) {
	var sale models.Sale
	if err := c.postJSON(ctx, "/sale/commissioned", req, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSale retrieves a single sale by ID
func (c *TicketingClient) GetSale(ctx context.Context, saleID int) (*models.Sale, error) {
	var sale models.Sale
	if err := c.getJSON(ctx, fmt.Sprintf("/sale/%d", saleID), &sale); err != nil {
		if isNotFound(err) {
			return nil, models.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// ListSales retrieves the sales recorded for an event
func (c *TicketingClient) ListSales(ctx context.Context, eventID int) ([]*models.Sale, error) {
	var sales []*models.Sale
	path := "/sale/?event_id=" + strconv.Itoa(eventID)
	if err := c.getJSON(ctx, path, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// CheckInSale checks in the sale identified by a scanned unique code. The
// API rejects canceled and already-checked sales with a descriptive detail.
func (c *TicketingClient) CheckInSale(ctx context.Context, uniqueCode string) (*models.Sale, error) {
	var sale models.Sale
	if err := c.postJSON(ctx, "/sale/check/"+url.PathEscape(uniqueCode), nil, &sale); err != nil {
		if isNotFound(err) {
			return nil, models.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// CancelSale cancels a sale by ID
func (c *TicketingClient) CancelSale(ctx context.Context, saleID int) (*models.Sale, error) {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/sale/%d/cancel", saleID), nil)
	if err != nil {
		return nil, err
	}

	var sale models.Sale
	if err := c.do(req, &sale); err != nil {
		if isNotFound(err) {
			return nil, models.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// ResendSaleEmail asks the API to resend the QR code email for a sale
func (c *TicketingClient) ResendSaleEmail(ctx context.Context, saleID int) (*models.Sale, error) {
	var sale models.Sale
	if err := c.postJSON(ctx, fmt.Sprintf("/sale/%d/resend", saleID), nil, &sale); err != nil {
		if isNotFound(err) {
			return nil, models.ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// GetEventDashboard retrieves the sales metrics for an event
func (c *TicketingClient) GetEventDashboard(ctx context.Context, eventID int) (*models.EventDashboard, error) {
	var dashboard models.EventDashboard
	if err := c.getJSON(ctx, fmt.Sprintf("/dashboard/events/%d", eventID), &dashboard); err != nil {
		if isNotFound(err) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}
	return &dashboard, nil
}

// Helper methods

// newRequest builds an authenticated JSON request against the API
func (c *TicketingClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("missing API credentials: %w", models.ErrUnauthenticated)
	}
	if TokenExpired(token) {
		return nil, fmt.Errorf("session token expired: %w", models.ErrUnauthenticated)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return req, nil
}

func (c *TicketingClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *TicketingClient) postJSON(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// do executes a request and decodes the JSON response into out
func (c *TicketingClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach ticketing API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleAPIError(resp.StatusCode, bodyBytes)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// handleAPIError maps a non-success response to an APIError, preserving
// the API's detail message when the body is parsable
func (c *TicketingClient) handleAPIError(statusCode int, body []byte) error {
	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil || errBody.Detail == "" {
		return &APIError{
			StatusCode: statusCode,
			Detail:     fmt.Sprintf("request failed with status %d", statusCode),
		}
	}

	return &APIError{StatusCode: statusCode, Detail: errBody.Detail}
}

// isNotFound reports whether err is an API 404
func isNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}
