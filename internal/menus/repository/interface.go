package repository

import "context"

// MenuRow is a raw menus table row.
type MenuRow struct {
	ID         int64
	Name       string
	Price      int
	ImagePath  string
	Genre      string
	Category   string
	IsFeatured bool
}

// Repository defines persistence operations for menus.
type Repository interface {
	// ListByGenre returns all rows for a genre, optionally narrowed by a
	// case-insensitive substring match on the menu name. Rows come back
	// ordered by id so category grouping is deterministic.
	ListByGenre(ctx context.Context, genre, nameFilter string) ([]MenuRow, error)
}
