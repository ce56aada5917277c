package repo

import "github.com/rogerio-castellano/order-tracker/internal/models"

// ProductRepository defines the interface for product data operations.
//
// AdjustStock is the only mutation path for stock_qty: it applies the delta
// atomically, refuses to go below zero, and keeps alert_level in sync with
// models.AlertLevelFor. Update deliberately does not touch stock_qty.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	Filter(pf ProductFilter) ([]models.Product, int, error)
	AdjustStock(id int, delta int) (models.Product, error)
}
