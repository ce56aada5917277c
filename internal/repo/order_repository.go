package repo

import "github.com/rogerio-castellano/order-tracker/internal/models"

// OrderRepository defines the interface for order data operations.
type OrderRepository interface {
	Create(order models.Order) (models.Order, error)
	GetByID(id int) (models.Order, error)
	GetAll() ([]models.Order, error)
	GetByUserID(userID int) ([]models.Order, error)
	Update(order models.Order) (models.Order, error)
	Delete(id int) error
	// InvoiceNumberInUse reports whether another order already carries the
	// given non-empty invoice number.
	InvoiceNumberInUse(invoiceNumber string, excludeOrderID int) (bool, error)
}
