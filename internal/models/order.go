package models

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderLineItem is one priced row of an order summary, derived from a cart
// entry and the current catalog. Subtotal is always recomputed from the
// catalog price and never carried across the cart serialization boundary.
type OrderLineItem struct {
	TicketTypeID int             `json:"ticket_type_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// OrderSummary is the priced view of a cart against a catalog: line items
// in catalog order plus the grand total. It is derived state, recomputed
// whenever the cart or the catalog changes, never mutated directly.
type OrderSummary struct {
	Items []OrderLineItem `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// IsEmpty returns true if the summary has no line items
func (s *OrderSummary) IsEmpty() bool {
	return len(s.Items) == 0
}

// TotalQuantity returns the number of individual tickets across all line items
func (s *OrderSummary) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// BuyerInfo carries the buyer identity attached to every unit purchase in
// a checkout. It is not persisted beyond the submission call.
type BuyerInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

var buyerEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates the buyer data before submission
func (b *BuyerInfo) Validate() error {
	verr := &ValidationError{Fields: make(map[string]string)}

	if strings.TrimSpace(b.Name) == "" {
		verr.Fields["name"] = "buyer name is required"
	} else if len(b.Name) > 255 {
		verr.Fields["name"] = "buyer name must be less than 255 characters"
	}

	if strings.TrimSpace(b.Email) == "" {
		verr.Fields["email"] = "buyer email is required"
	} else if !buyerEmailRegex.MatchString(b.Email) {
		verr.Fields["email"] = "buyer email format is invalid"
	}

	if strings.TrimSpace(b.Document) == "" {
		verr.Fields["document"] = "buyer document number is required"
	}

	if len(verr.Fields) > 0 {
		return verr
	}

	return nil
}
