package models

import "time"

type BillItem struct {
	ProductID int     `json:"product_id"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
}

// Bill is a 1:1 companion record to an order. Admins may override every
// figure on it without mutating the original order.
type Bill struct {
	ID              int        `json:"id"`
	OrderID         int        `json:"order_id"`
	Items           []BillItem `json:"items"`
	CustomerName    string     `json:"customer_name,omitempty"`
	CustomerPhone   string     `json:"customer_phone,omitempty"`
	CustomerAddress string     `json:"customer_address,omitempty"`
	Subtotal        float64    `json:"subtotal"`
	Discount        float64    `json:"discount"`
	ShippingCharge  float64    `json:"shipping_charge"`
	TotalAmount     float64    `json:"total_amount"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
