package domain

// LineItem is a single cart line, keyed by product ID. Stock is the ceiling
// snapshot captured when the item was first added; 0 means the product
// reported no ceiling and quantity is uncapped.
type LineItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url,omitempty"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"`
}

// Cart holds the in-progress purchase selection for one browser profile.
// It exists independently of any session and survives login/logout.
type Cart struct {
	ProfileID string     `json:"profile_id"`
	Items     []LineItem `json:"items"`
}

// Totals are the derived cart aggregates. They are recomputed on every read
// and never stored.
type Totals struct {
	ItemCount  int   `json:"item_count"`
	TotalPrice int64 `json:"total_price"`
}

// NewCart creates an empty cart for the given profile.
func NewCart(profileID string) *Cart {
	return &Cart{
		ProfileID: profileID,
		Items:     []LineItem{},
	}
}

// Totals computes the derived item count and total price.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, item := range c.Items {
		t.ItemCount += item.Quantity
		t.TotalPrice += item.Price * int64(item.Quantity)
	}
	return t
}

// FindItem returns the index of the line item with the given product ID, or
// -1 if not present.
func (c *Cart) FindItem(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
