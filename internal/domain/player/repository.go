package player

import "context"

// Repository stores the shared player database built from an admin upload.
type Repository interface {
	// ReplaceAll swaps the whole database for players, keeping their order.
	ReplaceAll(ctx context.Context, players []Player) error
	// Search matches names case-insensitively. limit <= 0 means no limit.
	Search(ctx context.Context, query string, limit int) ([]Player, error)
	GetByUID(ctx context.Context, uid string) (Player, bool, error)
	Count(ctx context.Context) (int, error)
}
