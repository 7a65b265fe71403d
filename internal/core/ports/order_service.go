package ports

import (
	"context"

	"github.com/marketloop/storefront-api/internal/core/domain"
)

// OrderService defines the fulfillment use-cases.
type OrderService interface {
	// SetStatus moves an order to the given status. Any enumerated status
	// may follow any other. Returns (nil, nil) when the order id is unknown.
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	// ListAll returns every order, newest first, for the admin dashboard.
	ListAll(ctx context.Context) ([]*domain.Order, error)
}
