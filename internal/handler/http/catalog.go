package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopsphere/storefront/internal/gateway"
	"github.com/shopsphere/storefront/pkg/httputil"

	apperrors "github.com/shopsphere/storefront/pkg/errors"
)

// CatalogHandler proxies public catalog reads to the backend.
type CatalogHandler struct {
	backend *gateway.Client
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(backend *gateway.Client, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{backend: backend, logger: logger}
}

// List returns the full catalog.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.backend.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Get returns a single product.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id is required"), h.logger)
		return
	}

	product, err := h.backend.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
