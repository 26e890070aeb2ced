package season

import "context"

// Repository persists story-mode seasons.
type Repository interface {
	Create(ctx context.Context, s Season) error
	// List returns seasons newest first.
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, id string) (Season, bool, error)
	// Delete reports whether a season was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
