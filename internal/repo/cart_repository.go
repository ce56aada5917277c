package repo

import "github.com/rogerio-castellano/order-tracker/internal/models"

// CartRepository defines the interface for cart data operations. Each user
// owns at most one cart; Save upserts by user id, Clear empties the item list
// without deleting the cart record.
type CartRepository interface {
	GetByUserID(userID int) (models.Cart, error)
	Save(cart models.Cart) (models.Cart, error)
	Clear(userID int) error
}
