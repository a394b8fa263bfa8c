package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopsphere/storefront/internal/domain"
	"github.com/shopsphere/storefront/internal/gateway"
	"github.com/shopsphere/storefront/pkg/httputil"
	"github.com/shopsphere/storefront/pkg/validator"

	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

// AdminHandler exposes catalog management and order administration. All
// routes here run behind the admin guard; the backend enforces authorization
// a second time on its side.
type AdminHandler struct {
	backend *gateway.Client
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(backend *gateway.Client, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{backend: backend, logger: logger}
}

type createProductRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	Brand        string `json:"brand" validate:"max=100"`
	Category     string `json:"category" validate:"max=100"`
	Price        int64  `json:"price" validate:"gte=0"`
	CountInStock int    `json:"count_in_stock" validate:"gte=0"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Shipped Delivered"`
}

// CreateProduct creates a catalog entry via the backend.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		httputil.WriteError(w, r, apperrors.Forbidden("admin access required"), h.logger)
		return
	}

	var req createProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.backend.CreateProduct(r.Context(), sess.Token, domain.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Brand:        req.Brand,
		Category:     req.Category,
		Price:        req.Price,
		CountInStock: req.CountInStock,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// DeleteProduct removes a catalog entry via the backend.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		httputil.WriteError(w, r, apperrors.Forbidden("admin access required"), h.logger)
		return
	}

	id := chi.URLParam(r, "productID")
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id is required"), h.logger)
		return
	}

	if err := h.backend.DeleteProduct(r.Context(), sess.Token, id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOrders returns every order in the system.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		httputil.WriteError(w, r, apperrors.Forbidden("admin access required"), h.logger)
		return
	}

	orders, err := h.backend.ListOrders(r.Context(), sess.Token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// UpdateOrderStatus sets an order's fulfillment status.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		httputil.WriteError(w, r, apperrors.Forbidden("admin access required"), h.logger)
		return
	}

	id := chi.URLParam(r, "orderID")
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("order id is required"), h.logger)
		return
	}

	var req updateOrderStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.backend.UpdateOrderStatus(r.Context(), sess.Token, id, req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
