package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the menus repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new menus repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListByGenre returns all menu rows for one genre, ordered by id.
func (r *Repo) ListByGenre(ctx context.Context, genre, nameFilter string) ([]MenuRow, error) {
	query := `
		SELECT id, name, price, image_path, genre, category, is_featured
		FROM menus
		WHERE genre = $1`
	args := []interface{}{genre}

	if nameFilter != "" {
		query += ` AND name ILIKE '%' || $2 || '%'`
		args = append(args, nameFilter)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menus by genre: %w", err)
	}
	defer rows.Close()

	var menus []MenuRow
	for rows.Next() {
		var row MenuRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Price, &row.ImagePath,
			&row.Genre, &row.Category, &row.IsFeatured,
		); err != nil {
			return nil, fmt.Errorf("scan menu row: %w", err)
		}
		menus = append(menus, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu rows: %w", err)
	}
	return menus, nil
}
