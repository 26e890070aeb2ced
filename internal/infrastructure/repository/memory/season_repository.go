package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gamehubfc/managerhub/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[string]season.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{items: make(map[string]season.Season)}
}

func (r *SeasonRepository) Create(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("season %s already exists", s.ID)
	}
	r.items[s.ID] = s.Clone()
	return nil
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	out := make([]season.Season, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s.Clone())
	}
	r.mu.RUnlock()

	sortNewestFirst(out)
	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return season.Season{}, false, nil
	}
	return s.Clone(), true, nil
}

func (r *SeasonRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// sortNewestFirst orders by CreatedAt descending, then ID for a stable
// result when timestamps collide.
func sortNewestFirst(items []season.Season) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}
