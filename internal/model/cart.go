package model

// CartLine is one product's entry in a cart. UnitPrice is captured when the
// line is first created and is not re-read from the catalogue afterwards, so
// the cart total stays stable even if the catalogue price changes mid-session.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns the line's contribution to the cart total.
func (l *CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartResponse is the API view of a cart: its lines plus the derived total.
type CartResponse struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}
