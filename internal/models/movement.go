package models

// Movement records a signed stock delta for a product. Reservations log
// negative deltas, releases positive ones.
type Movement struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}
