package filestore

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/cockroachdb/errors"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

const playersFile = "players.json"

type playerDatabase struct {
	Players []player.Player `json:"players"`
}

// PlayerRepository stores the whole player database in a single data file
// and serves reads from memory once loaded.
type PlayerRepository struct {
	dataDir string
	store   *storage.Storage

	mu     sync.RWMutex
	loaded bool
	items  []player.Player
}

func NewPlayerRepository(dataDir string, store *storage.Storage) *PlayerRepository {
	return &PlayerRepository{dataDir: dataDir, store: store}
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc := playerDatabase{Players: player.CloneAll(players)}
	if doc.Players == nil {
		doc.Players = []player.Player{}
	}
	if err := r.store.SaveDataFile(playersFile, &doc); err != nil {
		return errors.Wrap(err, "save player database")
	}
	r.items = doc.Players
	r.loaded = true
	return nil
}

func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]player.Player, error) {
	items, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, min(len(items), max(limit, 0)))
	for _, p := range items {
		if !p.MatchesName(query) {
			continue
		}
		out = append(out, p.Clone())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *PlayerRepository) GetByUID(ctx context.Context, uid string) (player.Player, bool, error) {
	items, err := r.snapshot(ctx)
	if err != nil {
		return player.Player{}, false, err
	}
	for _, p := range items {
		if uid != "" && p.UID == uid {
			return p.Clone(), true, nil
		}
	}
	return player.Player{}, false, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	items, err := r.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// snapshot returns the loaded slice. Callers must clone before handing
// players out.
func (r *PlayerRepository) snapshot(ctx context.Context) ([]player.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	if r.loaded {
		items := r.items
		r.mu.RUnlock()
		return items, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.items, nil
	}

	exists, err := fileExists(filepath.Join(r.dataDir, playersFile))
	if err != nil {
		return nil, err
	}
	var doc playerDatabase
	if exists {
		if err := r.store.ReadDataFile(playersFile, &doc); err != nil {
			return nil, errors.Wrap(err, "read player database")
		}
	}
	r.items = doc.Players
	r.loaded = true
	return r.items, nil
}
