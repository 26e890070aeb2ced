package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gamehubfc/managerhub/internal/domain/lineup"
	"github.com/gamehubfc/managerhub/internal/domain/season"
	"github.com/gamehubfc/managerhub/internal/platform/id"
)

// ExportFetcher downloads an export document from a remote URL.
type ExportFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type SeasonServiceConfig struct {
	AvatarBaseURL string
	ImportWorkers int
}

// SeasonService runs story mode: upload, browse and analyse seasons.
type SeasonService struct {
	ingestion *IngestionService
	repo      season.Repository
	ids       id.Generator
	fetcher   ExportFetcher
	cfg       SeasonServiceConfig
	now       func() time.Time
}

func NewSeasonService(
	ingestion *IngestionService,
	repo season.Repository,
	ids id.Generator,
	fetcher ExportFetcher,
	cfg SeasonServiceConfig,
) *SeasonService {
	if cfg.ImportWorkers <= 0 {
		cfg.ImportWorkers = 4
	}
	return &SeasonService{
		ingestion: ingestion,
		repo:      repo,
		ids:       ids,
		fetcher:   fetcher,
		cfg:       cfg,
		now:       time.Now,
	}
}

type CreateSeasonInput struct {
	Name     string
	Trophies season.Trophies
	// HTML is the export document. SourceURL is fetched when HTML is empty.
	HTML      []byte
	SourceURL string
}

func (s *SeasonService) Create(ctx context.Context, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Create")
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return season.Season{}, fmt.Errorf("%w: season name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > season.MaxNameLength {
		return season.Season{}, fmt.Errorf("%w: season name must be at most %d characters", ErrInvalidInput, season.MaxNameLength)
	}

	html, err := s.document(ctx, input)
	if err != nil {
		return season.Season{}, err
	}

	players, err := s.ingestion.ParseUpload(ctx, SourceSeason, html)
	if err != nil {
		return season.Season{}, err
	}

	seasonID, err := s.ids.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	item := season.Season{
		ID:        seasonID,
		Name:      name,
		Trophies:  input.Trophies,
		Players:   players,
		CreatedAt: s.now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("create season: %w", err)
	}
	return item, nil
}

func (s *SeasonService) document(ctx context.Context, input CreateSeasonInput) ([]byte, error) {
	if len(input.HTML) > 0 {
		return input.HTML, nil
	}
	url := strings.TrimSpace(input.SourceURL)
	if url == "" {
		return nil, fmt.Errorf("%w: export html or source url is required", ErrInvalidInput)
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: remote exports are disabled", ErrInvalidInput)
	}
	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDependencyUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetch export: %v", ErrDependencyUnavailable, err)
	}
	return html, nil
}

// SeasonListItem is a season without its player rows.
type SeasonListItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Trophies  season.Trophies `json:"trophies"`
	CreatedAt time.Time       `json:"createdAt"`
	Summary   season.Summary  `json:"summary"`
}

func (s *SeasonService) List(ctx context.Context) ([]SeasonListItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]SeasonListItem, 0, len(items))
	for _, item := range items {
		out = append(out, SeasonListItem{
			ID:        item.ID,
			Name:      item.Name,
			Trophies:  item.Trophies,
			CreatedAt: item.CreatedAt,
			Summary:   season.Summarize(item),
		})
	}
	return out, nil
}

func (s *SeasonService) Get(ctx context.Context, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get")
	defer span.End()

	return s.get(ctx, seasonID)
}

func (s *SeasonService) get(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}

func (s *SeasonService) Delete(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Delete")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	deleted, err := s.repo.Delete(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("delete season: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return nil
}

func (s *SeasonService) Summary(ctx context.Context, seasonID string) (season.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Summary")
	defer span.End()

	item, err := s.get(ctx, seasonID)
	if err != nil {
		return season.Summary{}, err
	}
	return season.Summarize(item), nil
}

type BestElevenView struct {
	SeasonID  string              `json:"seasonId"`
	Formation string              `json:"formation"`
	Slots     []lineup.Assignment `json:"slots"`
}

func (s *SeasonService) BestEleven(ctx context.Context, seasonID, formationName string) (BestElevenView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.BestEleven")
	defer span.End()

	formation, err := lineup.FormationByName(formationName)
	if err != nil {
		return BestElevenView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, err := s.get(ctx, seasonID)
	if err != nil {
		return BestElevenView{}, err
	}
	return BestElevenView{
		SeasonID:  item.ID,
		Formation: formation.Name,
		Slots:     lineup.BestEleven(item.Players, formation),
	}, nil
}

// PlayerProfile addresses a season player by upload position, since UIDs
// are optional in exports.
func (s *SeasonService) PlayerProfile(ctx context.Context, seasonID string, index int) (PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.PlayerProfile")
	defer span.End()

	if index < 0 {
		return PlayerProfile{}, fmt.Errorf("%w: player index must be >= 0", ErrInvalidInput)
	}
	item, err := s.get(ctx, seasonID)
	if err != nil {
		return PlayerProfile{}, err
	}
	p, ok := item.PlayerAt(index)
	if !ok {
		return PlayerProfile{}, fmt.Errorf("%w: player index %d in season=%s", ErrNotFound, index, item.ID)
	}
	return BuildProfile(p, s.cfg.AvatarBaseURL), nil
}

// isClientError reports errors caused by the caller's input.
func isClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound)
}
