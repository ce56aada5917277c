package repo

import (
	"context"
	"database/sql"
	"time"
)

// PostgresSequenceRepository allocates numbers with a single atomic upsert,
// never with "count rows + 1".
type PostgresSequenceRepository struct {
	db *sql.DB
}

func NewPostgresSequenceRepository(db *sql.DB) *PostgresSequenceRepository {
	return &PostgresSequenceRepository{db: db}
}

func (r *PostgresSequenceRepository) Next(name string) (int, error) {
	query := `INSERT INTO sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var value int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)
	return value, err
}
