package repo

type TopProduct struct {
	Name       string `json:"name"`
	OrderedQty int    `json:"ordered_qty"`
}

type Metrics struct {
	TotalProducts      int        `json:"total_products"`
	LowStockCount      int        `json:"low_stock_count"`
	CriticalStockCount int        `json:"critical_stock_count"`
	TotalOrders        int        `json:"total_orders"`
	PendingOrders      int        `json:"pending_orders"`
	Revenue            float64    `json:"revenue"`
	TopProduct         TopProduct `json:"top_product"`
}

// MetricsRepository aggregates dashboard figures. Revenue is the sum of
// final_amount over non-cancelled orders.
type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
