package domain

// CartItem is a single line in the working cart. Lines are owned by the
// cart service and only ever mutated through its add/update/remove calls.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Notes     string  `json:"notes,omitempty"`
}

// Customer is optionally attached to a cart and copied by value into the
// committed transaction, so later edits never leak into recorded sales.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// CartSnapshot is a deep copy of the cart taken at commit time.
type CartSnapshot struct {
	Items    []CartItem `json:"items"`
	Customer *Customer  `json:"customer,omitempty"`
	Subtotal float64    `json:"subtotal"`
}
