package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	models "github.com/rogerio-castellano/order-tracker/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, sku, category, description, image_url, retail_price, dealer_price, stock_qty, alert_level, status`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Description, &p.ImageURL,
		&p.RetailPrice, &p.DealerPrice, &p.StockQty, &p.AlertLevel, &p.Status)
	return p, err
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	if p.Status == "" {
		p.Status = models.ProductActive
	}
	p.AlertLevel = models.AlertLevelFor(p.StockQty)

	query := `INSERT INTO products (name, sku, category, description, image_url, retail_price, dealer_price, stock_qty, alert_level, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Name, p.SKU, p.Category, p.Description, p.ImageURL,
		p.RetailPrice, p.DealerPrice, p.StockQty, p.AlertLevel, p.Status, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, err
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Update writes the catalog fields only; stock_qty and alert_level belong to
// AdjustStock.
func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, sku = $2, category = $3, description = $4, image_url = $5,
		retail_price = $6, dealer_price = $7, status = $8, updated_at = $9 WHERE id = $10`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Name, p.SKU, p.Category, p.Description, p.ImageURL,
		p.RetailPrice, p.DealerPrice, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.GetByID(p.ID)
}

func (r *PostgresProductRepository) Delete(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	row := r.db.QueryRowContext(ctx, countQuery, args...)
	if err := row.Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions + ` ORDER BY id`

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, totalCount, rows.Err()
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Name+"%")
		argIdx++
	}
	if pf.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}
	if pf.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, pf.Status)
		argIdx++
	}
	if pf.MinPrice != nil {
		query += fmt.Sprintf(" AND retail_price >= $%d", argIdx)
		args = append(args, *pf.MinPrice)
		argIdx++
	}
	if pf.MaxPrice != nil {
		query += fmt.Sprintf(" AND retail_price <= $%d", argIdx)
		args = append(args, *pf.MaxPrice)
		argIdx++
	}
	if pf.MinQty != nil {
		query += fmt.Sprintf(" AND stock_qty >= $%d", argIdx)
		args = append(args, *pf.MinQty)
		argIdx++
	}
	if pf.MaxQty != nil {
		query += fmt.Sprintf(" AND stock_qty <= $%d", argIdx)
		args = append(args, *pf.MaxQty)
		argIdx++
	}

	return query, args, argIdx
}

// AdjustStock applies a signed delta atomically; the WHERE guard rejects any
// change that would leave stock_qty negative. The alert level is derived from
// the new quantity in the same statement so readers never observe a stale one.
func (r *PostgresProductRepository) AdjustStock(productID int, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET stock_qty = stock_qty + $1,
		    alert_level = CASE
		        WHEN stock_qty + $1 < 5 THEN 'CRITICAL'
		        WHEN stock_qty + $1 < 20 THEN 'LOW'
		        WHEN stock_qty + $1 < 50 THEN 'WARNING'
		        ELSE 'NONE'
		    END,
		    updated_at = $2
		WHERE id = $3 AND stock_qty + $1 >= 0
		RETURNING ` + productColumns + `
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, delta, time.Now().UTC().Format(time.RFC3339), productID))
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a missing product from an underflow.
		if _, getErr := r.GetByID(productID); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidStockChange
	}
	return p, err
}
