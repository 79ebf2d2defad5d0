package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Cart holds the organizer's current ticket-quantity selections for one
// event, keyed by ticket type ID. Entries with quantity zero are
// equivalent to absent entries.
type Cart struct {
	Quantities map[int]int `json:"quantities"`
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{Quantities: make(map[int]int)}
}

// MalformedCartError indicates that a serialized cart could not be
// decoded into a mapping from ticket type IDs to non-negative quantities.
type MalformedCartError struct {
	Reason string
}

func (e *MalformedCartError) Error() string {
	return fmt.Sprintf("malformed cart: %s", e.Reason)
}

// SetQuantity replaces the quantity for a ticket type. Other entries are
// unaffected. Quantities at or below zero remove the entry, since a zero
// quantity and an absent entry mean the same thing.
func (c *Cart) SetQuantity(ticketTypeID, quantity int) {
	if c.Quantities == nil {
		c.Quantities = make(map[int]int)
	}
	if quantity <= 0 {
		delete(c.Quantities, ticketTypeID)
		return
	}
	c.Quantities[ticketTypeID] = quantity
}

// Quantity returns the selected quantity for a ticket type, zero when absent
func (c *Cart) Quantity(ticketTypeID int) int {
	return c.Quantities[ticketTypeID]
}

// TotalQuantity returns the total number of selected tickets
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, qty := range c.Quantities {
		total += qty
	}
	return total
}

// IsEmpty returns true if no ticket type has a positive quantity
func (c *Cart) IsEmpty() bool {
	return c.TotalQuantity() == 0
}

// TicketTypeIDs returns the ticket type IDs with a positive quantity, ascending
func (c *Cart) TicketTypeIDs() []int {
	ids := make([]int, 0, len(c.Quantities))
	for id, qty := range c.Quantities {
		if qty > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Serialize encodes the cart as a compact JSON object mapping ticket type
// IDs to quantities, safe to carry in a URL query parameter. Zero-quantity
// entries are omitted. The encoding round-trips exactly through
// DeserializeCart.
func (c *Cart) Serialize() string {
	entries := make(map[string]int, len(c.Quantities))
	for id, qty := range c.Quantities {
		if qty > 0 {
			entries[strconv.Itoa(id)] = qty
		}
	}

	// Marshaling a map of string keys to ints cannot fail.
	data, _ := json.Marshal(entries)
	return string(data)
}

// DeserializeCart decodes a cart previously produced by Serialize. The
// input is untrusted navigation state: non-integer keys, negative or
// fractional quantities, and anything that is not a flat JSON object are
// rejected with a MalformedCartError rather than clamped.
func DeserializeCart(text string) (*Cart, error) {
	var entries map[string]int
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, &MalformedCartError{Reason: err.Error()}
	}
	if entries == nil {
		// "null" decodes without error but is not a quantity mapping.
		return nil, &MalformedCartError{Reason: "expected a JSON object"}
	}

	cart := NewCart()
	for key, qty := range entries {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, &MalformedCartError{Reason: fmt.Sprintf("ticket type key %q is not an integer", key)}
		}
		if qty < 0 {
			return nil, &MalformedCartError{Reason: fmt.Sprintf("negative quantity %d for ticket type %d", qty, id)}
		}
		if qty > 0 {
			cart.Quantities[id] = qty
		}
	}

	return cart, nil
}
