package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"machikado_backend/platform/apperr"
)

const addressNotFoundMessage = "address not found"

// Repo implements the addresses repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new addresses repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListByUser returns all addresses saved by the user, ordered by id.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]AddressRow, error) {
	query := `
		SELECT id, name, address_text, latitude, longitude, user_id
		FROM addresses
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []AddressRow
	for rows.Next() {
		var row AddressRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.AddressText,
			&row.Latitude, &row.Longitude, &row.UserID,
		); err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}
	return addresses, nil
}

// Insert stores a new address and returns it with the assigned id.
func (r *Repo) Insert(ctx context.Context, params InsertParams) (AddressRow, error) {
	query := `
		INSERT INTO addresses (user_id, name, address_text, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, address_text, latitude, longitude, user_id`

	var row AddressRow
	if err := r.pool.QueryRow(ctx, query,
		params.UserID, params.Name, params.AddressText, params.Latitude, params.Longitude,
	).Scan(&row.ID, &row.Name, &row.AddressText, &row.Latitude, &row.Longitude, &row.UserID); err != nil {
		return AddressRow{}, fmt.Errorf("insert address: %w", err)
	}
	return row, nil
}

// Delete removes the user's address.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, addressID int64) error {
	query := `DELETE FROM addresses WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, addressID, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(addressNotFoundMessage)
	}
	return nil
}

// SetSelected marks the address as the user's current selection. Ownership
// is enforced in the statement itself: selecting another user's address
// affects zero rows.
func (r *Repo) SetSelected(ctx context.Context, userID uuid.UUID, addressID int64) error {
	query := `
		INSERT INTO profiles (id, selected_address_id)
		SELECT a.user_id, a.id
		FROM addresses a
		WHERE a.id = $2 AND a.user_id = $1
		ON CONFLICT (id) DO UPDATE SET selected_address_id = EXCLUDED.selected_address_id`

	result, err := r.pool.Exec(ctx, query, userID, addressID)
	if err != nil {
		return fmt.Errorf("set selected address: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(addressNotFoundMessage)
	}
	return nil
}

// GetSelected returns the user's selected address, or nil when nothing is
// selected. A missing profile row and a NULL selection are the same state.
func (r *Repo) GetSelected(ctx context.Context, userID uuid.UUID) (*AddressRow, error) {
	query := `
		SELECT a.id, a.name, a.address_text, a.latitude, a.longitude, a.user_id
		FROM profiles p
		JOIN addresses a ON a.id = p.selected_address_id
		WHERE p.id = $1`

	var row AddressRow
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&row.ID, &row.Name, &row.AddressText,
		&row.Latitude, &row.Longitude, &row.UserID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get selected address: %w", err)
	}
	return &row, nil
}
