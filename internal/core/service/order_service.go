package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marketloop/storefront-api/internal/core/domain"
	"github.com/marketloop/storefront-api/internal/core/ports"
)

// OrderService implements order fulfillment state changes and the admin
// order listing.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// SetStatus moves the order to status. There is no forward-only workflow:
// a Shipped order may go back to Processing, a Delivered one to Cancelled.
// An unknown order id yields (nil, nil) — callers treat absence as an empty
// result, not a failure.
func (s *OrderService) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ValidationError{Message: fmt.Sprintf("invalid order status %q", status)}
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("set order status: %w", err)
	}
	if order == nil {
		s.log.Debug().Str("order_id", orderID).Msg("status update for unknown order")
		return nil, nil
	}

	s.log.Info().Str("order_id", orderID).Str("status", string(status)).Msg("order status updated")
	return order, nil
}

// ListAll returns every order with buyer and product associations, newest
// first.
func (s *OrderService) ListAll(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
