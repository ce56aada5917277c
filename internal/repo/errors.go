package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrCartNotFound    = errors.New("cart not found")
	ErrBillNotFound    = errors.New("bill not found")
	ErrUserNotFound    = errors.New("user not found")

	// ErrDuplicatedValueUnique is returned when a write violates a uniqueness
	// constraint (email, phone, invoice number, order number).
	ErrDuplicatedValueUnique = errors.New("unique constraint violation")

	// ErrInvalidStockChange is returned when an adjustment would drive
	// stock_qty below zero.
	ErrInvalidStockChange = errors.New("stock quantity cannot be negative")
)
