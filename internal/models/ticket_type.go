package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// TicketType represents a purchasable ticket category as published by the
// ticketing API. The API is the source of truth; clients never mutate a
// ticket type within a session, and prices are always taken from a fresh
// catalog fetch rather than any client-side copy.
type TicketType struct {
	ID          int             `json:"id"`
	EventID     int             `json:"event_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int            `json:"stock"` // nil means unlimited
	Status      string          `json:"status"`
}

// TicketTypeCreateRequest represents the data needed to create a new ticket type
type TicketTypeCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int            `json:"stock,omitempty"`
}

// Validate validates ticket type creation data
func (req *TicketTypeCreateRequest) Validate() error {
	if err := validateTicketTypeName(req.Name); err != nil {
		return err
	}

	if err := validateTicketTypePrice(req.Price); err != nil {
		return err
	}

	if err := validateTicketTypeStock(req.Stock); err != nil {
		return err
	}

	return nil
}

// validateTicketTypeName validates a ticket type name
func validateTicketTypeName(name string) error {
	if name == "" {
		return errors.New("ticket type name is required")
	}

	if len(name) > 100 {
		return errors.New("ticket type name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("ticket type name cannot be only whitespace")
	}

	return nil
}

// validateTicketTypePrice validates a ticket type price
func validateTicketTypePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errors.New("ticket price cannot be negative")
	}

	return nil
}

// validateTicketTypeStock validates a ticket type stock level
func validateTicketTypeStock(stock *int) error {
	if stock != nil && *stock < 0 {
		return errors.New("ticket stock cannot be negative")
	}

	return nil
}

// IsSoldOut returns true if the ticket type has a stock limit and it is exhausted
func (tt *TicketType) IsSoldOut() bool {
	return tt.Stock != nil && *tt.Stock <= 0
}

// IsAvailable returns true if tickets can currently be sold. Stock limits
// are enforced by the API at sale time; this only guides the selection UI.
func (tt *TicketType) IsAvailable() bool {
	return !tt.IsSoldOut()
}
