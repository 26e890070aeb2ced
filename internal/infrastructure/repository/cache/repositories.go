// Package cache decorates repositories with an in-process read cache.
// Writes go straight through and invalidate the affected keys.
package cache

import (
	"context"
	"time"

	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/domain/season"
	basecache "github.com/gamehubfc/managerhub/internal/platform/cache"
)

const (
	seasonListKey   = "season:list"
	seasonIDPrefix  = "season:id:"
	playerUIDPrefix = "player:uid:"
	playerCountKey  = "player:count"
)

type lookup[T any] struct {
	value  T
	exists bool
}

type SeasonRepository struct {
	next  season.Repository
	lists *basecache.Store[[]season.Season]
	items *basecache.Store[lookup[season.Season]]
}

func NewSeasonRepository(next season.Repository, ttl time.Duration) *SeasonRepository {
	return &SeasonRepository{
		next:  next,
		lists: basecache.NewStore[[]season.Season](ttl),
		items: basecache.NewStore[lookup[season.Season]](ttl),
	}
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	if err := r.next.Create(ctx, s); err != nil {
		return err
	}
	r.lists.Delete(ctx, seasonListKey)
	r.items.Delete(ctx, seasonIDPrefix+s.ID)
	return nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	items, err := r.lists.GetOrLoad(ctx, seasonListKey, r.next.List)
	if err != nil {
		return nil, err
	}
	return cloneSeasons(items), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, seasonIDPrefix+id, func(ctx context.Context) (lookup[season.Season], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		return lookup[season.Season]{value: item, exists: exists}, err
	})
	if err != nil {
		return season.Season{}, false, err
	}
	return cached.value.Clone(), cached.exists, nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	r.lists.Delete(ctx, seasonListKey)
	r.items.Delete(ctx, seasonIDPrefix+id)
	return deleted, nil
}

func cloneSeasons(items []season.Season) []season.Season {
	out := make([]season.Season, len(items))
	for i, s := range items {
		out[i] = s.Clone()
	}
	return out
}

// PlayerRepository caches point lookups. Searches always hit the backend.
type PlayerRepository struct {
	next   player.Repository
	byUID  *basecache.Store[lookup[player.Player]]
	counts *basecache.Store[int]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next:   next,
		byUID:  basecache.NewStore[lookup[player.Player]](ttl),
		counts: basecache.NewStore[int](ttl),
	}
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	if err := r.next.ReplaceAll(ctx, players); err != nil {
		return err
	}
	r.byUID.DeletePrefix(ctx, playerUIDPrefix)
	r.counts.Delete(ctx, playerCountKey)
	return nil
}

func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]player.Player, error) {
	return r.next.Search(ctx, query, limit)
}

func (r *PlayerRepository) GetByUID(ctx context.Context, uid string) (player.Player, bool, error) {
	cached, err := r.byUID.GetOrLoad(ctx, playerUIDPrefix+uid, func(ctx context.Context) (lookup[player.Player], error) {
		item, exists, err := r.next.GetByUID(ctx, uid)
		return lookup[player.Player]{value: item, exists: exists}, err
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value.Clone(), cached.exists, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	return r.counts.GetOrLoad(ctx, playerCountKey, r.next.Count)
}
