package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an operation is not legal in the
	// order's current status.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrEmptyCart is returned when a cart has no items, or none of its items
	// reference a product that still exists.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrForbidden is returned when the acting role may not run the operation.
	ErrForbidden = errors.New("operation not permitted for role")

	// ErrInvoiceNumberRequired is returned for an empty (after trimming)
	// invoice number candidate.
	ErrInvoiceNumberRequired = errors.New("invoice number is required")

	// ErrDuplicateInvoiceNumber is returned when another order already holds
	// the candidate invoice number.
	ErrDuplicateInvoiceNumber = errors.New("invoice number already in use")

	// ErrInvalidQuantity is returned for item lines with qty < 1.
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
)

// InsufficientStockError reports the line that could not be reserved. Any
// lines already decremented in the same call have been rolled back.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}
