package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"organizer-dashboard/internal/models"

	"github.com/shopspring/decimal"
)

// PurchaseBatchError indicates that one or more unit purchases in a
// checkout batch failed. Detail carries the first failing response's
// message in request order. Units that succeeded before or alongside the
// failure are NOT rolled back: a partial sale is possible and is left for
// the organizer to reconcile through the sales list.
type PurchaseBatchError struct {
	Total  int
	Failed int
	Detail string
	Err    error // first failure, in request order
}

func (e *PurchaseBatchError) Error() string {
	return fmt.Sprintf("%d of %d ticket purchases failed: %s", e.Failed, e.Total, e.Detail)
}

func (e *PurchaseBatchError) Unwrap() error {
	return e.Err
}

// CheckoutResult represents the outcome of a successful checkout
type CheckoutResult struct {
	Summary *models.OrderSummary `json:"summary"`
	Sales   []*models.Sale       `json:"sales"`
}

// OrderService reconciles carts against the live catalog and drives the
// batch purchase submission
type OrderService struct {
	api TicketingAPI
}

// NewOrderService creates a new order service
func NewOrderService(api TicketingAPI) *OrderService {
	return &OrderService{api: api}
}

// Reconcile combines a cart with the authoritative catalog into an order
// summary. Every line item is priced from the catalog's current price;
// any price the cart traveled with is ignored by construction. Cart
// entries referencing ticket types no longer in the catalog are dropped
// silently so a stale selection never blocks checkout. Line items follow
// catalog order, and an empty summary (total zero) is a valid result.
func Reconcile(cart *models.Cart, catalog []*models.TicketType) *models.OrderSummary {
	summary := &models.OrderSummary{Total: decimal.Zero}

	if cart == nil {
		return summary
	}

	for _, ticketType := range catalog {
		quantity := cart.Quantity(ticketType.ID)
		if quantity <= 0 {
			continue
		}

		subtotal := ticketType.Price.Mul(decimal.NewFromInt(int64(quantity)))
		summary.Items = append(summary.Items, models.OrderLineItem{
			TicketTypeID: ticketType.ID,
			Name:         ticketType.Name,
			Quantity:     quantity,
			UnitPrice:    ticketType.Price,
			Subtotal:     subtotal,
		})
		summary.Total = summary.Total.Add(subtotal)
	}

	return summary
}

// ToPurchaseRequests expands a summary into one single-ticket purchase
// request per unit, since the sale endpoint accepts one ticket per call.
// A line item of quantity Q yields exactly Q requests, all carrying the
// same ticket type and buyer. The flattening follows summary order; the
// API treats each request independently and needs no particular ordering.
func ToPurchaseRequests(summary *models.OrderSummary, buyer models.BuyerInfo) []*models.SaleCreateRequest {
	var requests []*models.SaleCreateRequest
	for _, item := range summary.Items {
		for i := 0; i < item.Quantity; i++ {
			requests = append(requests, &models.SaleCreateRequest{
				BuyerName:  buyer.Name,
				BuyerEmail: buyer.Email,
				ProductID:  item.TicketTypeID,
			})
		}
	}
	return requests
}

// PreviewOrder re-fetches the catalog and reconciles the cart against it.
// This is what the buyer-details screen renders: prices always come from
// the server, never from the navigation state that carried the cart.
func (s *OrderService) PreviewOrder(ctx context.Context, eventID int, cart *models.Cart) (*models.OrderSummary, error) {
	catalog, err := s.api.ListTicketTypes(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return Reconcile(cart, catalog), nil
}

// batchResult holds the settled outcome of one unit purchase
type batchResult struct {
	sale *models.Sale
	err  error
}

// SubmitBatch issues every purchase request concurrently and waits for all
// of them to settle before classifying the outcome. There is no partial
// reporting, no retry, no rollback and no cancellation once the batch is
// in flight; if any unit fails, the whole batch reports the first failure
// while the succeeded units stay sold on the API side.
func (s *OrderService) SubmitBatch(ctx context.Context, requests []*models.SaleCreateRequest) ([]*models.Sale, error) {
	if len(requests) == 0 {
		return nil, nil
	}

	results := make([]batchResult, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req *models.SaleCreateRequest) {
			defer wg.Done()
			sale, err := s.api.CreateSale(ctx, req)
			results[i] = batchResult{sale: sale, err: err}
		}(i, req)
	}
	wg.Wait()

	failed := 0
	var firstErr error
	for _, result := range results {
		if result.err != nil {
			failed++
			if firstErr == nil {
				firstErr = result.err
			}
		}
	}

	if firstErr != nil {
		return nil, &PurchaseBatchError{
			Total:  len(requests),
			Failed: failed,
			Detail: failureDetail(firstErr),
			Err:    firstErr,
		}
	}

	sales := make([]*models.Sale, len(results))
	for i, result := range results {
		sales[i] = result.sale
	}
	return sales, nil
}

// Checkout validates the buyer, reconciles the cart against a fresh
// catalog and submits the expanded batch
func (s *OrderService) Checkout(ctx context.Context, eventID int, cart *models.Cart, buyer models.BuyerInfo) (*CheckoutResult, error) {
	if err := buyer.Validate(); err != nil {
		return nil, err
	}

	summary, err := s.PreviewOrder(ctx, eventID, cart)
	if err != nil {
		return nil, err
	}

	if summary.IsEmpty() {
		return nil, fmt.Errorf("no tickets selected: %w", models.ErrInvalidInput)
	}

	sales, err := s.SubmitBatch(ctx, ToPurchaseRequests(summary, buyer))
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{Summary: summary, Sales: sales}, nil
}

// failureDetail extracts the user-facing reason from a unit failure,
// falling back to a generic message when the response was unparsable
func failureDetail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return "one of the ticket purchases failed"
}
