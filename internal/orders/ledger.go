package orders

import (
	"errors"
	"log"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

// Ledger is the only component allowed to change product stock. Every
// mutation goes through the repository's atomic AdjustStock, which keeps the
// alert level consistent with the remaining quantity, and every mutation is
// logged as a signed movement.
type Ledger struct {
	products  repo.ProductRepository
	movements repo.MovementRepository
}

func NewLedger(products repo.ProductRepository, movements repo.MovementRepository) *Ledger {
	return &Ledger{products: products, movements: movements}
}

// Reserve decrements stock for every line, all or nothing. If any line
// exceeds the available quantity, lines already decremented in this call are
// restored before the error is returned.
func (l *Ledger) Reserve(items []models.OrderItem, reason string) error {
	for i, item := range items {
		_, err := l.products.AdjustStock(item.ProductID, -item.Qty)
		if err == nil {
			continue
		}

		// Roll back the lines reserved so far.
		for _, done := range items[:i] {
			if _, rbErr := l.products.AdjustStock(done.ProductID, done.Qty); rbErr != nil {
				log.Printf("⚠️ failed to roll back reservation of %d x product %d: %v",
					done.Qty, done.ProductID, rbErr)
			}
		}

		if errors.Is(err, repo.ErrInvalidStockChange) {
			available := 0
			if p, getErr := l.products.GetByID(item.ProductID); getErr == nil {
				available = p.StockQty
			}
			return &InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Qty,
				Available: available,
			}
		}
		return err
	}

	for _, item := range items {
		l.logMovement(item.ProductID, -item.Qty, reason)
	}
	return nil
}

// Release restores stock for every line (edit revert, order delete).
func (l *Ledger) Release(items []models.OrderItem, reason string) error {
	for _, item := range items {
		_, err := l.products.AdjustStock(item.ProductID, item.Qty)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				// Product removed after the order was placed; nothing to restore.
				continue
			}
			return err
		}
		l.logMovement(item.ProductID, item.Qty, reason)
	}
	return nil
}

// Adjust applies a manual admin delta through the same path as reservations
// so the alert level invariant holds everywhere.
func (l *Ledger) Adjust(productID int, delta int, reason string) (models.Product, error) {
	p, err := l.products.AdjustStock(productID, delta)
	if err != nil {
		return models.Product{}, err
	}
	l.logMovement(productID, delta, reason)
	if p.AlertLevel == models.AlertCritical {
		log.Printf("⚠️ ALERT: Product %d (%s) stock is CRITICAL: qty=%d", p.ID, p.Name, p.StockQty)
	}
	return p, nil
}

func (l *Ledger) logMovement(productID, delta int, reason string) {
	if l.movements == nil {
		return
	}
	if err := l.movements.Log(productID, delta, reason); err != nil {
		log.Printf("failed to log movement for product %d: %v", productID, err)
	}
}
