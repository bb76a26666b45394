package model

// DateLayout is the calendar date format used for lastUpdated and createdAt.
const DateLayout = "2006-01-02"

// Product represents one stocked item in the catalog.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" validate:"required"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	MinQuantity int     `json:"minQuantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Supplier    string  `json:"supplier"`
	LastUpdated string  `json:"lastUpdated" validate:"omitempty,datetime=2006-01-02"`
}

// EntityID returns the product id.
func (p Product) EntityID() string {
	return p.ID
}

// WithEntityID returns a copy of the product carrying id.
func (p Product) WithEntityID(id string) Product {
	p.ID = id
	return p
}

// IsLowStock reports whether quantity is below the reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity < p.MinQuantity
}

// IsOutOfStock reports whether no units are on hand.
func (p Product) IsOutOfStock() bool {
	return p.Quantity == 0
}
