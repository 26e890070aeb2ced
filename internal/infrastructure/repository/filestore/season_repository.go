package filestore

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/cockroachdb/errors"

	"github.com/gamehubfc/managerhub/internal/domain/season"
)

const seasonsDir = "seasons"

// SeasonRepository keeps one data file per season under seasons/.
type SeasonRepository struct {
	dataDir string
	store   *storage.Storage
	mu      sync.RWMutex
}

func NewSeasonRepository(dataDir string, store *storage.Storage) *SeasonRepository {
	return &SeasonRepository{dataDir: dataDir, store: store}
}

func seasonFile(id string) string {
	return filepath.Join(seasonsDir, url.PathEscape(id)+".json")
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := seasonFile(s.ID)
	exists, err := fileExists(filepath.Join(r.dataDir, name))
	if err != nil {
		return err
	}
	if exists {
		return errors.Newf("season %s already exists", s.ID)
	}
	if err := os.MkdirAll(filepath.Join(r.dataDir, seasonsDir), 0o755); err != nil {
		return errors.Wrap(err, "create seasons dir")
	}

	s = s.Clone()
	s.CreatedAt = s.CreatedAt.UTC()
	if err := r.store.SaveDataFile(name, &s); err != nil {
		return errors.Wrapf(err, "save season %s", s.ID)
	}
	return nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(r.dataDir, seasonsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []season.Season{}, nil
		}
		return nil, errors.Wrap(err, "read seasons dir")
	}

	out := make([]season.Season, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var s season.Season
		if err := r.store.ReadDataFile(filepath.Join(seasonsDir, entry.Name()), &s); err != nil {
			return nil, errors.Wrapf(err, "read season file %s", entry.Name())
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	if err := ctx.Err(); err != nil {
		return season.Season{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name := seasonFile(id)
	exists, err := fileExists(filepath.Join(r.dataDir, name))
	if err != nil || !exists {
		return season.Season{}, false, err
	}

	var s season.Season
	if err := r.store.ReadDataFile(name, &s); err != nil {
		return season.Season{}, false, errors.Wrapf(err, "read season %s", id)
	}
	return s, true, nil
}

func (r *SeasonRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(filepath.Join(r.dataDir, seasonFile(id)))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Wrapf(err, "remove season %s", id)
}
