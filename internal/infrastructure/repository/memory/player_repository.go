package memory

import (
	"context"
	"sync"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

// PlayerRepository keeps the player database in upload order.
type PlayerRepository struct {
	mu    sync.RWMutex
	items []player.Player
	byUID map[string]int
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{byUID: make(map[string]int)}
}

func (r *PlayerRepository) ReplaceAll(_ context.Context, players []player.Player) error {
	items := player.CloneAll(players)
	byUID := make(map[string]int, len(items))
	for i, p := range items {
		if p.UID == "" {
			continue
		}
		if _, dup := byUID[p.UID]; !dup {
			byUID[p.UID] = i
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	r.byUID = byUID
	return nil
}

func (r *PlayerRepository) Search(_ context.Context, query string, limit int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, min(len(r.items), max(limit, 0)))
	for _, p := range r.items {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p.MatchesName(query) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// GetByUID returns the first player uploaded with uid.
func (r *PlayerRepository) GetByUID(_ context.Context, uid string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byUID[uid]
	if !ok {
		return player.Player{}, false, nil
	}
	return r.items[idx].Clone(), true, nil
}

func (r *PlayerRepository) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}
