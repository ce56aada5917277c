package repo

import (
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

// MovementRepository records the signed stock deltas produced by the
// inventory ledger (reservations, releases, manual adjustments).
type MovementRepository interface {
	Log(productID int, delta int, reason string) error
	GetByProductID(productID int, since, until *time.Time, limit, offset *int) ([]models.Movement, int, error)
}
