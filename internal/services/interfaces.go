package services

import (
	"context"

	"organizer-dashboard/internal/models"
)

// TicketingAPI is the surface of the remote ticketing API the dashboard
// depends on. Handlers and services program against this interface so
// tests can substitute mocks for the network client.
type TicketingAPI interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	GetEvent(ctx context.Context, eventID int) (*models.Event, error)
	CreateEvent(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error)
	ListTicketTypes(ctx context.Context, eventID int) ([]*models.TicketType, error)
	CreateTicketType(ctx context.Context, eventID int, req *models.TicketTypeCreateRequest) (*models.TicketType, error)
	CreateSale(ctx context.Context, req *models.SaleCreateRequest) (*models.Sale, error)
	GetSale(ctx context.Context, saleID int) (*models.Sale, error)
	ListSales(ctx context.Context, eventID int) ([]*models.Sale, error)
	CheckInSale(ctx context.Context, uniqueCode string) (*models.Sale, error)
	CancelSale(ctx context.Context, saleID int) (*models.Sale, error)
	ResendSaleEmail(ctx context.Context, saleID int) (*models.Sale, error)
	GetEventDashboard(ctx context.Context, eventID int) (*models.EventDashboard, error)
}

// Compile-time check that the HTTP client satisfies the interface
var _ TicketingAPI = (*TicketingClient)(nil)
