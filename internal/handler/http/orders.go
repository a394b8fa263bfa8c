package http

import (
	"log/slog"
	"net/http"

	"github.com/shopsphere/storefront/internal/domain"
	"github.com/shopsphere/storefront/internal/gateway"
	"github.com/shopsphere/storefront/internal/service"
	"github.com/shopsphere/storefront/pkg/httputil"
	"github.com/shopsphere/storefront/pkg/validator"

	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

// OrderHandler exposes checkout and order history. All routes here run behind
// the session guard.
type OrderHandler struct {
	carts   *service.CartService
	backend *gateway.Client
	logger  *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(carts *service.CartService, backend *gateway.Client, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		carts:   carts,
		backend: backend,
		logger:  logger,
	}
}

type checkoutRequest struct {
	ShippingAddress shippingAddressInput `json:"shipping_address" validate:"required"`
}

type shippingAddressInput struct {
	FullName   string `json:"full_name" validate:"required,max=200"`
	Address    string `json:"address" validate:"required,max=500"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,max=30"`
}

// Checkout submits the current cart as an order. Line items are derived from
// the cart at submit time; on success the cart is cleared.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	var req checkoutRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.Get(r.Context(), profileID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if cart.IsEmpty() {
		httputil.WriteError(w, r, apperrors.InvalidInput("cart is empty"), h.logger)
		return
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, li := range cart.Items {
		items = append(items, domain.OrderItem{ProductID: li.ProductID, Qty: li.Quantity})
	}

	order, err := h.backend.CreateOrder(r.Context(), sess.Token, items, domain.ShippingAddress{
		FullName:   req.ShippingAddress.FullName,
		Address:    req.ShippingAddress.Address,
		City:       req.ShippingAddress.City,
		PostalCode: req.ShippingAddress.PostalCode,
		Country:    req.ShippingAddress.Country,
		Phone:      req.ShippingAddress.Phone,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// The order is placed; a failure clearing the cart must not undo that.
	if err := h.carts.Clear(r.Context(), profileID(r)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to clear cart after checkout",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// List returns the authenticated user's own orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	orders, err := h.backend.MyOrders(r.Context(), sess.Token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}
