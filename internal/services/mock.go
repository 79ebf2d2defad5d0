package services

import (
	"context"

	"organizer-dashboard/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockTicketingAPI is a testify mock of the remote ticketing API
type MockTicketingAPI struct {
	mock.Mock
}

var _ TicketingAPI = (*MockTicketingAPI)(nil)

func (m *MockTicketingAPI) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TokenResponse), args.Error(1)
}

func (m *MockTicketingAPI) ListEvents(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockTicketingAPI) GetEvent(ctx context.Context, eventID int) (*models.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockTicketingAPI) CreateEvent(ctx context.Context, req *models.EventCreateRequest) (*models.Event, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockTicketingAPI) ListTicketTypes(ctx context.Context, eventID int) ([]*models.TicketType, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TicketType), args.Error(1)
}

func (m *MockTicketingAPI) CreateTicketType(ctx context.Context, eventID int, req *models.TicketTypeCreateRequest) (*models.TicketType, error) {
	args := m.Called(ctx, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TicketType), args.Error(1)
}

func (m *MockTicketingAPI) CreateSale(ctx context.Context, req *models.SaleCreateRequest) (*models.Sale, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockTicketingAPI) GetSale(ctx context.Context, saleID int) (*models.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockTicketingAPI) ListSales(ctx context.Context, eventID int) ([]*models.Sale, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Sale), args.Error(1)
}

func (m *MockTicketingAPI) CheckInSale(ctx context.Context, uniqueCode string) (*models.Sale, error) {
	args := m.Called(ctx, uniqueCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockTicketingAPI) CancelSale(ctx context.Context, saleID int) (*models.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockTicketingAPI) ResendSaleEmail(ctx context.Context, saleID int) (*models.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sale), args.Error(1)
}

func (m *MockTicketingAPI) GetEventDashboard(ctx context.Context, eventID int) (*models.EventDashboard, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventDashboard), args.Error(1)
}
