package repo

import "github.com/rogerio-castellano/order-tracker/internal/models"

// BillRepository defines the interface for bill data operations. A bill is
// keyed by its order; Save upserts.
type BillRepository interface {
	GetByOrderID(orderID int) (models.Bill, error)
	Save(bill models.Bill) (models.Bill, error)
	DeleteByOrderID(orderID int) error
}
