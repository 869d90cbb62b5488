// Package order converts a cart snapshot into a remote order and tracks
// that order's status. Status transitions are owned by the backend; this
// package only reflects the last polled value.
package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MuriellekPINSO/qualiwo-go/internal/api"
	"github.com/MuriellekPINSO/qualiwo-go/internal/cart"
	"github.com/MuriellekPINSO/qualiwo-go/internal/domain"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to submit")
	ErrNotCancellable = errors.New("order is already in a terminal status")
)

// Backend is the slice of the API client this package consumes.
type Backend interface {
	CreateOrder(ctx context.Context, req *api.CreateOrderRequest) (*api.CreateOrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type Service struct {
	backend Backend
	sfg     singleflight.Group // several chat widgets may track one order
	breaker *gobreaker.CircuitBreaker[*domain.Order]
}

func NewService(backend Backend) *Service {
	breaker := gobreaker.NewCircuitBreaker[*domain.Order](gobreaker.Settings{
		Name:    "order-refresh",
		Timeout: 30 * time.Second,
	})
	return &Service{
		backend: backend,
		breaker: breaker,
	}
}

// Submit serializes the cart snapshot into a create request. On success the
// caller must clear the cart; on failure the cart stays intact and the user
// may retry.
func (s *Service) Submit(ctx context.Context, snapshot []cart.Line) (*domain.Order, error) {
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	req := &api.CreateOrderRequest{
		CartItems: make([]api.CartItemDTO, 0, len(snapshot)),
	}
	for _, line := range snapshot {
		req.CartItems = append(req.CartItems, api.CartItemDTO{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Product.Price,
		})
		req.TotalAmount += line.Subtotal()
	}

	resp, err := s.backend.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	created := resp.Order
	if created.ID == "" {
		created.ID = resp.OrderID
	}
	if created.OrderNumber == "" {
		created.OrderNumber = resp.OrderNumber
	}
	return &created, nil
}

// Cancel asks the backend to move the order to cancelled. Terminal orders
// are rejected locally without a network round trip. On success the local
// status flips to cancelled immediately, ahead of the next poll.
func (s *Service) Cancel(ctx context.Context, o *domain.Order) error {
	if o.Status.IsTerminal() {
		return ErrNotCancellable
	}
	if err := s.backend.UpdateOrderStatus(ctx, o.ID, domain.OrderStatusCancelled); err != nil {
		return fmt.Errorf("cancel order failed: %w", err)
	}
	o.Status = domain.OrderStatusCancelled
	return nil
}

// Refresh fetches the current order snapshot. Concurrent refreshes for the
// same order are collapsed into one request, and repeated failures trip a
// circuit breaker so a flapping backend is not hammered every tick. Callers
// on the polling path treat any error as silent and transient.
func (s *Service) Refresh(ctx context.Context, orderID string) (*domain.Order, error) {
	v, err, _ := s.sfg.Do(orderID, func() (interface{}, error) {
		return s.breaker.Execute(func() (*domain.Order, error) {
			return s.backend.GetOrder(ctx, orderID)
		})
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Order), nil
}

// CancelFailureMessage maps a Cancel error onto the user-facing reason.
// A 400 carries the server's own explanation when present.
func CancelFailureMessage(err error) string {
	switch api.StatusOf(err) {
	case http.StatusBadRequest:
		if msg := api.MessageOf(err); msg != "" {
			return msg
		}
		return "Cette commande ne peut pas être annulée"
	case http.StatusForbidden:
		return "Vous n'avez pas la permission d'annuler cette commande"
	case http.StatusNotFound:
		return "Commande introuvable"
	default:
		return "Erreur lors de l'annulation"
	}
}
