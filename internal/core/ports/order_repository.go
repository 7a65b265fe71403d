package ports

import (
	"context"

	"github.com/marketloop/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// UpdateStatus sets the order's status and returns the updated order.
	// A missing order id yields (nil, nil): absence is a legitimate empty
	// result for callers, not an error.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	// ListAll returns every order with its buyer and product associations,
	// newest first.
	ListAll(ctx context.Context) ([]*domain.Order, error)
}
