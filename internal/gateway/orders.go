package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/shopsphere/storefront/internal/domain"
)

// rawOrder mirrors the backend's order shape. The user reference has appeared
// both as a plain id string and as an embedded user object.
type rawOrder struct {
	ID              string                 `json:"_id"`
	AltID           string                 `json:"id"`
	User            json.RawMessage        `json:"user"`
	OrderItems      []domain.OrderItem     `json:"orderItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	Status          string                 `json:"status"`
	TotalPrice      float64                `json:"totalPrice"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func (o rawOrder) normalize() domain.Order {
	id := o.ID
	if id == "" {
		id = o.AltID
	}
	return domain.Order{
		ID:              id,
		UserID:          userID(o.User),
		Items:           o.OrderItems,
		ShippingAddress: o.ShippingAddress,
		Status:          o.Status,
		TotalPrice:      toMinorUnits(o.TotalPrice),
		CreatedAt:       o.CreatedAt,
	}
}

// userID extracts the user reference whether the backend sent a bare id
// string or a populated user object.
func userID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var id string
	if json.Unmarshal(raw, &id) == nil {
		return id
	}

	var user struct {
		ID    string `json:"_id"`
		AltID string `json:"id"`
	}
	if json.Unmarshal(raw, &user) == nil {
		if user.ID != "" {
			return user.ID
		}
		return user.AltID
	}

	return ""
}

type createOrderRequest struct {
	OrderItems      []domain.OrderItem     `json:"orderItems"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder submits an order on behalf of the authenticated user.
func (c *Client) CreateOrder(ctx context.Context, token string, items []domain.OrderItem, addr domain.ShippingAddress) (*domain.Order, error) {
	var raw rawOrder
	err := c.doJSON(ctx, http.MethodPost, "/orders", token, createOrderRequest{
		OrderItems:      items,
		ShippingAddress: addr,
	}, &raw)
	if err != nil {
		return nil, err
	}

	order := raw.normalize()
	return &order, nil
}

// MyOrders fetches the authenticated user's own orders.
func (c *Client) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var raw []rawOrder
	if err := c.doJSON(ctx, http.MethodGet, "/orders/my", token, nil, &raw); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, o := range raw {
		orders = append(orders, o.normalize())
	}
	return orders, nil
}

// ListOrders fetches all orders. Requires an admin token.
func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var raw []rawOrder
	if err := c.doJSON(ctx, http.MethodGet, "/orders", token, nil, &raw); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, o := range raw {
		orders = append(orders, o.normalize())
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's fulfillment status. Requires an admin
// token.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) (*domain.Order, error) {
	var raw rawOrder
	err := c.doJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(orderID)+"/status", token, updateStatusRequest{
		Status: status,
	}, &raw)
	if err != nil {
		return nil, err
	}

	order := raw.normalize()
	return &order, nil
}
