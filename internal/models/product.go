package models

// LowStockThreshold is the quantity below which a product is flagged as low stock.
const LowStockThreshold = 30

// Product represents a product entity in the supermarket catalogue.
type Product struct {
	ID          int     `json:"id"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	LowStock    bool    `json:"lowStock,omitempty"`
}

// IsLowStock reports whether the product is below LowStockThreshold.
func (p Product) IsLowStock() bool {
	return p.Quantity < LowStockThreshold
}

// WithStockFlag returns a copy of p with LowStock derived from the current quantity.
// Negative quantities are normalised to zero first.
func (p Product) WithStockFlag() Product {
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	p.LowStock = p.IsLowStock()
	return p
}
