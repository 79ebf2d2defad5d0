package services

import (
	"context"
	"fmt"

	"organizer-dashboard/internal/models"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// CheckinService drives the QR check-in flow: roster with progress for
// the check-in screen, and validation of scanned codes.
type CheckinService struct {
	api TicketingAPI
}

// NewCheckinService creates a new check-in service
func NewCheckinService(api TicketingAPI) *CheckinService {
	return &CheckinService{api: api}
}

// Roster retrieves the sales for an event together with check-in progress
func (s *CheckinService) Roster(ctx context.Context, eventID int) ([]*models.Sale, *models.CheckinProgress, error) {
	sales, err := s.api.ListSales(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load participant list: %w", err)
	}

	progress := &models.CheckinProgress{TotalSales: len(sales)}
	for _, sale := range sales {
		switch {
		case sale.IsCanceled():
			progress.Canceled++
		case sale.IsCheckedIn():
			progress.CheckedIn++
		default:
			progress.Pending++
		}
	}

	return sales, progress, nil
}

// CheckIn validates a scanned QR payload and checks the sale in. Codes
// are UUIDs; anything else is rejected locally before touching the API.
// Canceled and already-checked sales come back as API errors whose detail
// is surfaced to the operator.
func (s *CheckinService) CheckIn(ctx context.Context, code string) (*models.Sale, error) {
	if _, err := uuid.Parse(code); err != nil {
		return nil, fmt.Errorf("scanned code is not a valid ticket code: %w", models.ErrInvalidInput)
	}

	return s.api.CheckInSale(ctx, code)
}

// QRCodePNG renders a sale's unique code as a QR code image, matching the
// code the API emails to buyers
func (s *CheckinService) QRCodePNG(sale *models.Sale, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}

	png, err := qrcode.Encode(sale.UniqueCode, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	return png, nil
}
