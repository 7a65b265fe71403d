package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marketloop/storefront-api/internal/api/metrics"
	"github.com/marketloop/storefront-api/internal/core/domain"
	"github.com/marketloop/storefront-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order fulfillment operations.
type OrderHandler struct {
	service ports.OrderService
	log     zerolog.Logger
}

func NewOrderHandler(service ports.OrderService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{service: service, log: log}
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Not Process' 'Processing' 'Shipped' 'Delivered' 'Cancelled'"`
}

// SetStatus moves an order to a new fulfillment state. Any enumerated state
// may follow any other. An unknown order id yields 200 with a JSON null body,
// which callers treat as an empty result.
//
// @Summary      Update an order's fulfillment status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string              true  "Order id"
// @Param        body      body      orderStatusRequest  true  "New status"
// @Success      200       {object}  domain.Order
// @Failure      400       {object}  messageResponse
// @Failure      403       {object}  messageResponse
// @Failure      422       {object}  messageResponse
// @Failure      500       {object}  messageResponse
// @Router       /api/orders/{order_id}/status [put]
func (h *OrderHandler) SetStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, messageResponse{Message: err.Error()})
	}

	orderID := c.Param("order_id")
	order, err := h.service.SetStatus(c.Request().Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			return c.JSON(http.StatusUnprocessableEntity, messageResponse{Message: ve.Message})
		}
		h.log.Error().Err(err).Str("order_id", orderID).Msg("order status update failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error While Updateing Order"})
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(req.Status).Inc()
	if order == nil {
		// Absent order is a legitimate empty result, not an error.
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, order)
}

// ListAll returns every order with buyer and product associations, newest
// first.
//
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("order listing failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error WHile Geting Orders"})
	}
	return c.JSON(http.StatusOK, orders)
}
