package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

type PlayerServiceConfig struct {
	AvatarBaseURL string
	// DefaultLimit applies to searches without a query.
	DefaultLimit int
	MaxLimit     int
}

// PlayerService manages the shared player database.
type PlayerService struct {
	ingestion *IngestionService
	repo      player.Repository
	cfg       PlayerServiceConfig
}

func NewPlayerService(ingestion *IngestionService, repo player.Repository, cfg PlayerServiceConfig) *PlayerService {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 500
	}
	return &PlayerService{
		ingestion: ingestion,
		repo:      repo,
		cfg:       cfg,
	}
}

type LoadDatabaseResult struct {
	Players int `json:"players"`
}

// LoadDatabase replaces the whole database with the players of an export.
func (s *PlayerService) LoadDatabase(ctx context.Context, html []byte) (LoadDatabaseResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.LoadDatabase")
	defer span.End()

	players, err := s.ingestion.ParseUpload(ctx, SourceDatabase, html)
	if err != nil {
		return LoadDatabaseResult{}, err
	}
	if err := s.repo.ReplaceAll(ctx, players); err != nil {
		return LoadDatabaseResult{}, fmt.Errorf("replace player database: %w", err)
	}
	return LoadDatabaseResult{Players: len(players)}, nil
}

// Search matches names case-insensitively. Without a query the first
// DefaultLimit players are returned; with a query every match is returned
// unless limit is set. limit is capped at MaxLimit.
func (s *PlayerService) Search(ctx context.Context, query string, limit int) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}
	if limit == 0 && query == "" {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	players, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) Profile(ctx context.Context, uid string) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Profile")
	defer span.End()

	uid = strings.TrimSpace(uid)
	if uid == "" {
		return PlayerProfile{}, fmt.Errorf("%w: player uid is required", ErrInvalidInput)
	}

	p, exists, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return PlayerProfile{}, fmt.Errorf("get player by uid: %w", err)
	}
	if !exists {
		return PlayerProfile{}, fmt.Errorf("%w: player=%s", ErrNotFound, uid)
	}
	return BuildProfile(p, s.cfg.AvatarBaseURL), nil
}

func (s *PlayerService) Count(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Count")
	defer span.End()

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}
