package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	models "github.com/rogerio-castellano/order-tracker/internal/models"
)

type PostgresBillRepository struct {
	db *sql.DB
}

func NewPostgresBillRepository(db *sql.DB) *PostgresBillRepository {
	return &PostgresBillRepository{db: db}
}

func (r *PostgresBillRepository) GetByOrderID(orderID int) (models.Bill, error) {
	query := `SELECT id, order_id, items, customer_name, customer_phone, customer_address,
		subtotal, discount, shipping_charge, total_amount, created_at, updated_at
		FROM bills WHERE order_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var b models.Bill
	var items []byte
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&b.ID, &b.OrderID, &items,
		&b.CustomerName, &b.CustomerPhone, &b.CustomerAddress,
		&b.Subtotal, &b.Discount, &b.ShippingCharge, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bill{}, ErrBillNotFound
	}
	if err != nil {
		return models.Bill{}, err
	}
	if err := json.Unmarshal(items, &b.Items); err != nil {
		return models.Bill{}, err
	}
	return b, nil
}

// Save upserts by order id; bills has a unique constraint on order_id.
func (r *PostgresBillRepository) Save(b models.Bill) (models.Bill, error) {
	items, err := json.Marshal(b.Items)
	if err != nil {
		return models.Bill{}, err
	}
	now := time.Now().UTC()

	query := `INSERT INTO bills (order_id, items, customer_name, customer_phone, customer_address,
		subtotal, discount, shipping_charge, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (order_id) DO UPDATE SET
			items = EXCLUDED.items,
			customer_name = EXCLUDED.customer_name,
			customer_phone = EXCLUDED.customer_phone,
			customer_address = EXCLUDED.customer_address,
			subtotal = EXCLUDED.subtotal,
			discount = EXCLUDED.discount,
			shipping_charge = EXCLUDED.shipping_charge,
			total_amount = EXCLUDED.total_amount,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = r.db.QueryRowContext(ctx, query, b.OrderID, items, b.CustomerName, b.CustomerPhone,
		b.CustomerAddress, b.Subtotal, b.Discount, b.ShippingCharge, b.TotalAmount, now).
		Scan(&b.ID, &b.CreatedAt)
	b.UpdatedAt = now
	return b, err
}

func (r *PostgresBillRepository) DeleteByOrderID(orderID int) error {
	query := `DELETE FROM bills WHERE order_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, orderID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrBillNotFound
	}
	return nil
}
