package models

// CartItem references a product with a desired quantity (always >= 1).
type CartItem struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

// Cart is owned by exactly one user. It is emptied, never deleted, when
// converted into an order.
type Cart struct {
	ID     int        `json:"id"`
	UserID int        `json:"user_id"`
	Items  []CartItem `json:"items"`
}
