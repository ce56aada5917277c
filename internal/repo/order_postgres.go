package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	models "github.com/rogerio-castellano/order-tracker/internal/models"
)

// PostgresOrderRepository stores orders with the item snapshot as a jsonb
// column. A partial unique index enforces invoice number uniqueness:
//
//	CREATE UNIQUE INDEX orders_invoice_number_key
//	    ON orders (invoice_number) WHERE invoice_number <> '';
type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

const orderColumns = `id, order_number, user_id, items, total_amount, final_amount, dealer_price_used, order_status, payment_status, invoice_number, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (models.Order, error) {
	var o models.Order
	var items []byte
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &items, &o.TotalAmount, &o.FinalAmount,
		&o.DealerPriceUsed, &o.OrderStatus, &o.PaymentStatus, &o.InvoiceNumber, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return models.Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *PostgresOrderRepository) Create(o models.Order) (models.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return models.Order{}, err
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	o.UpdatedAt = o.CreatedAt

	query := `INSERT INTO orders (order_number, user_id, items, total_amount, final_amount, dealer_price_used, order_status, payment_status, invoice_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = r.db.QueryRowContext(ctx, query, o.OrderNumber, o.UserID, items, o.TotalAmount, o.FinalAmount,
		o.DealerPriceUsed, o.OrderStatus, o.PaymentStatus, o.InvoiceNumber, o.CreatedAt, o.UpdatedAt).Scan(&o.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.Order{}, ErrDuplicatedValueUnique
	}
	return o, err
}

func (r *PostgresOrderRepository) GetByID(id int) (models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	return o, err
}

func (r *PostgresOrderRepository) GetAll() ([]models.Order, error) {
	return r.query(`SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`)
}

func (r *PostgresOrderRepository) GetByUserID(userID int) ([]models.Order, error) {
	return r.query(`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresOrderRepository) query(query string, args ...any) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresOrderRepository) Update(o models.Order) (models.Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return models.Order{}, err
	}
	o.UpdatedAt = time.Now().UTC()

	query := `UPDATE orders SET items = $1, total_amount = $2, final_amount = $3, order_status = $4,
		payment_status = $5, invoice_number = $6, updated_at = $7 WHERE id = $8`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, items, o.TotalAmount, o.FinalAmount, o.OrderStatus,
		o.PaymentStatus, o.InvoiceNumber, o.UpdatedAt, o.ID)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") {
			return models.Order{}, ErrDuplicatedValueUnique
		}
		return models.Order{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (r *PostgresOrderRepository) Delete(id int) error {
	query := `DELETE FROM orders WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) InvoiceNumberInUse(invoiceNumber string, excludeOrderID int) (bool, error) {
	if invoiceNumber == "" {
		return false, nil
	}
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE invoice_number = $1 AND id <> $2)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var inUse bool
	err := r.db.QueryRowContext(ctx, query, invoiceNumber, excludeOrderID).Scan(&inUse)
	return inUse, err
}
