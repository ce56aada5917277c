package models

// AlertLevel categorizes remaining stock for restock monitoring.
type AlertLevel string

const (
	AlertNone     AlertLevel = "NONE"
	AlertWarning  AlertLevel = "WARNING"
	AlertLow      AlertLevel = "LOW"
	AlertCritical AlertLevel = "CRITICAL"
)

// AlertLevelFor derives the alert level from the remaining stock quantity.
// It is the single source of truth for the thresholds; stock mutations go
// through the inventory ledger so the stored level never drifts from it.
func AlertLevelFor(stockQty int) AlertLevel {
	switch {
	case stockQty < 5:
		return AlertCritical
	case stockQty < 20:
		return AlertLow
	case stockQty < 50:
		return AlertWarning
	default:
		return AlertNone
	}
}

type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// Product represents a catalog entry with separate retail and dealer prices.
type Product struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	SKU         string        `json:"sku,omitempty"`
	Category    string        `json:"category,omitempty"`
	Description string        `json:"description,omitempty"`
	ImageURL    string        `json:"image_url,omitempty"`
	RetailPrice float64       `json:"retail_price"`
	DealerPrice float64       `json:"dealer_price"`
	StockQty    int           `json:"stock_qty"`
	AlertLevel  AlertLevel    `json:"alert_level"`
	Status      ProductStatus `json:"status"`
	CreatedAt   string        `json:"created_at,omitempty"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
}
