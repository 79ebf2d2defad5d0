package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SalePaid     SaleStatus = "PAGO"
	SaleCanceled SaleStatus = "CANCELADO"
)

// Sale represents one sold ticket as recorded by the ticketing API. Every
// sale covers exactly one ticket of one type; a checkout for several
// tickets produces several sales.
type Sale struct {
	ID            int             `json:"id"`
	ProductID     int             `json:"product_id"`
	SellerID      *int            `json:"seller_id"`
	BuyerName     string          `json:"buyer_name"`
	BuyerEmail    string          `json:"buyer_email"`
	Status        SaleStatus      `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	SaleDate      time.Time       `json:"sale_date"`
	UniqueCode    string          `json:"unique_code"`
	CheckedAt     *time.Time      `json:"checked_at"`
	CanceledAt    *time.Time      `json:"canceled_at"`
	Product       *TicketType     `json:"product,omitempty"`
}

// SaleCreateRequest is one single-ticket purchase call. The API sells one
// ticket per request, so a checkout expands into a batch of these.
type SaleCreateRequest struct {
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
	ProductID  int    `json:"product_id"`
}

// IsCanceled returns true if the sale has been canceled
func (s *Sale) IsCanceled() bool {
	return s.Status == SaleCanceled
}

// IsCheckedIn returns true if the buyer has already been checked in
func (s *Sale) IsCheckedIn() bool {
	return s.CheckedAt != nil
}

// CanCheckIn returns true if the sale can still be checked in
func (s *Sale) CanCheckIn() bool {
	return !s.IsCanceled() && !s.IsCheckedIn()
}
