package models

import (
	"errors"
	"strings"
	"time"
)

// EventStatus represents the status of an event
type EventStatus string

const (
	EventActive    EventStatus = "active"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// Event represents an event managed by the organizer, as published by the
// ticketing API.
type Event struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Date        time.Time   `json:"date"`
	Status      EventStatus `json:"status"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("event name is required")
	}

	if len(req.Name) > 100 {
		return errors.New("event name must be less than 100 characters")
	}

	if strings.TrimSpace(req.Location) == "" {
		return errors.New("event location is required")
	}

	if req.Date.IsZero() {
		return errors.New("event date is required")
	}

	return nil
}

// IsActive returns true if tickets can be sold for the event
func (e *Event) IsActive() bool {
	return e.Status == EventActive
}
