package models

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Terminal reports whether no further transitions or item edits are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
)

// OrderItem is an immutable snapshot line: product reference plus quantity.
// Prices are not stored per line; totals are computed at creation time.
type OrderItem struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

// Order is created from a cart (or directly from a product list) and owns
// its item snapshot exclusively.
type Order struct {
	ID              int           `json:"id"`
	OrderNumber     string        `json:"order_number"`
	UserID          int           `json:"user_id"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	FinalAmount     float64       `json:"final_amount"`
	DealerPriceUsed bool          `json:"dealer_price_used"`
	OrderStatus     OrderStatus   `json:"order_status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	InvoiceNumber   string        `json:"invoice_number"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
