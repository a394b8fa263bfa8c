package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopsphere/storefront/internal/domain"
)

// rawProduct mirrors the backend's product shape. The identifier has appeared
// as both `_id` and `id`; price is a decimal number.
type rawProduct struct {
	ID           string  `json:"_id"`
	AltID        string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
}

func (p rawProduct) normalize() domain.Product {
	id := p.ID
	if id == "" {
		id = p.AltID
	}
	return domain.Product{
		ID:           id,
		Name:         p.Name,
		Description:  p.Description,
		ImageURL:     p.Image,
		Brand:        p.Brand,
		Category:     p.Category,
		Price:        toMinorUnits(p.Price),
		CountInStock: p.CountInStock,
	}
}

type createProductRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	CountInStock int     `json:"countInStock"`
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var raw []rawProduct
	if err := c.doJSON(ctx, http.MethodGet, "/products", "", nil, &raw); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, p.normalize())
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var raw rawProduct
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &raw); err != nil {
		return nil, err
	}

	product := raw.normalize()
	return &product, nil
}

// CreateProduct creates a catalog entry. Requires an admin token.
func (c *Client) CreateProduct(ctx context.Context, token string, input domain.ProductInput) (*domain.Product, error) {
	var raw rawProduct
	err := c.doJSON(ctx, http.MethodPost, "/products", token, createProductRequest{
		Name:         input.Name,
		Description:  input.Description,
		Image:        input.ImageURL,
		Brand:        input.Brand,
		Category:     input.Category,
		Price:        toDecimal(input.Price),
		CountInStock: input.CountInStock,
	}, &raw)
	if err != nil {
		return nil, err
	}

	product := raw.normalize()
	return &product, nil
}

// DeleteProduct removes a catalog entry. Requires an admin token.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), token, nil, nil)
}
