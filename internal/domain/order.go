package domain

import "time"

// Order status values as used by the remote backend.
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

// ValidOrderStatus checks whether the given status is one the backend accepts.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// OrderItem is a single line of an order as submitted to the backend.
type OrderItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// ShippingAddress is the delivery address collected at checkout.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Order is an order record as returned by the remote backend, normalized at
// the gateway boundary.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id,omitempty"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Status          string          `json:"status"`
	TotalPrice      int64           `json:"total_price"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
}
