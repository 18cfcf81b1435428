package models

// MaxLineQuantity caps the units held in one cart line. Adds past it saturate.
const MaxLineQuantity = 1_000_000

// CartLineItem is one product-quantity pairing in a cart. Name, price and image are
// captured when the product is first added and are not refreshed afterwards.
type CartLineItem struct {
	ProductID   int     `json:"id"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
}

func (i CartLineItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is an ordered list of line items with at most one line per product.
// All operations return a new Cart and leave the receiver untouched.
type Cart struct {
	Lines []CartLineItem `json:"items"`
}

// Items returns a copy of the line items; never nil.
func (c Cart) Items() []CartLineItem {
	out := make([]CartLineItem, len(c.Lines))
	copy(out, c.Lines)
	return out
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the number of line items, not the number of units.
func (c Cart) Count() int {
	return len(c.Lines)
}

// Find returns the line item for productID, if any.
func (c Cart) Find(productID int) (CartLineItem, bool) {
	for _, it := range c.Lines {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartLineItem{}, false
}

// Add merges item into the cart: an existing line for the same product has its
// quantity increased, otherwise item is appended. Quantities are kept within
// 1..MaxLineQuantity.
func (c Cart) Add(item CartLineItem) Cart {
	item.Quantity = clampQuantity(item.Quantity)
	lines := c.Items()
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			// Both terms are at most MaxLineQuantity, so the sum cannot overflow.
			lines[i].Quantity = clampQuantity(clampQuantity(lines[i].Quantity) + item.Quantity)
			return Cart{Lines: lines}
		}
	}
	return Cart{Lines: append(lines, item)}
}

func clampQuantity(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxLineQuantity:
		return MaxLineQuantity
	}
	return n
}

// Remove drops the line for productID. Unknown ids leave the cart unchanged.
func (c Cart) Remove(productID int) Cart {
	lines := make([]CartLineItem, 0, len(c.Lines))
	for _, it := range c.Lines {
		if it.ProductID != productID {
			lines = append(lines, it)
		}
	}
	return Cart{Lines: lines}
}

func (c Cart) Total() float64 {
	var total float64
	for _, it := range c.Lines {
		total += it.Subtotal()
	}
	return total
}
