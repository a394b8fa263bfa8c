package domain

// Product is the canonical catalog record as served by the remote backend,
// normalized at the gateway boundary. Price is in minor currency units.
// CountInStock 0 means the backend reported no stock ceiling.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Brand        string `json:"brand,omitempty"`
	Category     string `json:"category,omitempty"`
	Price        int64  `json:"price"`
	CountInStock int    `json:"count_in_stock"`
}

// ProductInput holds the fields an admin supplies when creating a product.
type ProductInput struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image"`
	Brand        string `json:"brand"`
	Category     string `json:"category"`
	Price        int64  `json:"price"`
	CountInStock int    `json:"countInStock"`
}
