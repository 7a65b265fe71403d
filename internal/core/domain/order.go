package domain

import "time"

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

// The status strings are stored as-is and surface verbatim in the API.
const (
	StatusNotProcess OrderStatus = "Not Process"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// orderStatuses is the closed set of valid states. There is deliberately no
// transition table: an authorized actor may move an order from any state to
// any other (Shipped back to Processing, Delivered to Cancelled, and so on).
var orderStatuses = map[OrderStatus]struct{}{
	StatusNotProcess: {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Valid reports whether s is one of the enumerated order statuses.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// OrderProduct is the lightweight product view embedded in order listings.
type OrderProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Buyer identifies the account that placed an order.
type Buyer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Order is owned by the order store. Only its status is mutated here; the
// rest is written at checkout, outside this service.
type Order struct {
	ID        string         `json:"id"`
	Buyer     Buyer          `json:"buyer"`
	Products  []OrderProduct `json:"products"`
	Status    OrderStatus    `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}
