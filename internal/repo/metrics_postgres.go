package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE alert_level IN ('LOW', 'CRITICAL')),
		       COUNT(*) FILTER (WHERE alert_level = 'CRITICAL')
		FROM products`).
		Scan(&m.TotalProducts, &m.LowStockCount, &m.CriticalStockCount)
	if err != nil {
		return m, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE order_status = 'PENDING'),
		       COALESCE(SUM(final_amount) FILTER (WHERE order_status <> 'CANCELLED'), 0)
		FROM orders`).
		Scan(&m.TotalOrders, &m.PendingOrders, &m.Revenue)
	if err != nil {
		return m, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT p.name, SUM((item->>'qty')::int) AS ordered_qty
		FROM orders o,
		     jsonb_array_elements(o.items) AS item
		JOIN products p ON p.id = (item->>'product_id')::int
		WHERE o.order_status <> 'CANCELLED'
		GROUP BY p.name
		ORDER BY ordered_qty DESC
		LIMIT 1`).
		Scan(&m.TopProduct.Name, &m.TopProduct.OrderedQty)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return m, err
	}

	return m, nil
}
