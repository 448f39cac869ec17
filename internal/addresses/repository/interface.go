package repository

import (
	"context"

	"github.com/google/uuid"
)

// AddressRow is a raw addresses table row.
type AddressRow struct {
	ID          int64
	Name        string
	AddressText string
	Latitude    float64
	Longitude   float64
	UserID      uuid.UUID
}

// InsertParams carries the fields for a new address.
type InsertParams struct {
	UserID      uuid.UUID
	Name        string
	AddressText string
	Latitude    float64
	Longitude   float64
}

// Repository defines persistence operations for the address book. All
// operations are scoped to one user.
type Repository interface {
	// ListByUser returns all addresses saved by the user, ordered by id.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]AddressRow, error)

	// Insert stores a new address and returns it with the assigned id.
	Insert(ctx context.Context, params InsertParams) (AddressRow, error)

	// Delete removes the user's address. Returns apperr.NotFound when the
	// address does not exist or belongs to another user. The profile's
	// selection is cleared by the schema when the selected address goes away.
	Delete(ctx context.Context, userID uuid.UUID, addressID int64) error

	// SetSelected marks the address as the user's current selection,
	// creating the profile row when missing. Returns apperr.NotFound when
	// the address does not belong to the user.
	SetSelected(ctx context.Context, userID uuid.UUID, addressID int64) error

	// GetSelected returns the user's selected address, or nil when the user
	// has no selection.
	GetSelected(ctx context.Context, userID uuid.UUID) (*AddressRow, error)
}
