package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	models "github.com/rogerio-castellano/order-tracker/internal/models"
)

type PostgresCartRepository struct {
	db *sql.DB
}

func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) GetByUserID(userID int) (models.Cart, error) {
	query := `SELECT id, user_id, items FROM carts WHERE user_id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c models.Cart
	var items []byte
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.ID, &c.UserID, &items)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Cart{}, ErrCartNotFound
	}
	if err != nil {
		return models.Cart{}, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return models.Cart{}, err
	}
	return c, nil
}

// Save upserts the user's cart; carts has a unique constraint on user_id.
func (r *PostgresCartRepository) Save(cart models.Cart) (models.Cart, error) {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return models.Cart{}, err
	}

	query := `INSERT INTO carts (user_id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
		RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = r.db.QueryRowContext(ctx, query, cart.UserID, items, time.Now().UTC()).Scan(&cart.ID)
	return cart, err
}

func (r *PostgresCartRepository) Clear(userID int) error {
	query := `UPDATE carts SET items = '[]'::jsonb, updated_at = $1 WHERE user_id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrCartNotFound
	}
	return nil
}
