package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopsphere/storefront/internal/domain"
	"github.com/shopsphere/storefront/internal/gateway"
	"github.com/shopsphere/storefront/internal/service"
	"github.com/shopsphere/storefront/pkg/httputil"
	"github.com/shopsphere/storefront/pkg/validator"

	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

// CartHandler exposes the per-profile cart. The cart works with or without a
// session; it belongs to the browser profile, not the account.
type CartHandler struct {
	carts   *service.CartService
	backend *gateway.Client
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *service.CartService, backend *gateway.Client, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		backend: backend,
		logger:  logger,
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,gte=1,lte=100"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"lte=100"`
}

// cartView is the cart plus its derived totals. Totals are recomputed from
// the line items on every read, never stored.
type cartView struct {
	Items      []domain.LineItem `json:"items"`
	ItemCount  int               `json:"item_count"`
	TotalPrice int64             `json:"total_price"`
}

func newCartView(cart *domain.Cart) cartView {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	totals := cart.Totals()
	return cartView{
		Items:      items,
		ItemCount:  totals.ItemCount,
		TotalPrice: totals.TotalPrice,
	}
}

// Get returns the cart with derived totals.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Get(r.Context(), profileID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart)})
}

// AddItem adds a product to the cart. The product's name, price, image and
// stock ceiling are snapshotted from the catalog at add time.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.backend.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), profileID(r), service.AddItemInput{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  req.Quantity,
		Stock:     product.CountInStock,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart)})
}

// SetQuantity sets a line item's quantity. Zero or negative removes the item.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id is required"), h.logger)
		return
	}

	var req setQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.SetQuantity(r.Context(), profileID(r), productID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart)})
}

// RemoveItem deletes a line item from the cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id is required"), h.logger)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), profileID(r), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(cart)})
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), profileID(r)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
