package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gamehubfc/managerhub/internal/domain/season"
	"github.com/gamehubfc/managerhub/internal/infrastructure/repository/memory"
	seasonmock "github.com/gamehubfc/managerhub/internal/mocks/domain/season"
)

type stubFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	return f.body, f.err
}

func newSeasonService(repo season.Repository, fetcher ExportFetcher) *SeasonService {
	service := NewSeasonService(NewIngestionService(nil, nil, nil), repo, &sequenceIDs{}, fetcher, SeasonServiceConfig{
		AvatarBaseURL: "https://faces.example/",
		ImportWorkers: 2,
	})
	service.now = fixedClock{at: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}.now
	return service
}

func TestSeasonService_CreateAndBrowse(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	service := newSeasonService(memory.NewSeasonRepository(), nil)

	created, err := service.Create(ctx, CreateSeasonInput{
		Name:     "  2025/26 Treble  ",
		Trophies: season.Trophies{League: true, DomesticCup: true},
		HTML:     sampleExport(),
	})
	if err != nil {
		t.Fatalf("create season: %v", err)
	}
	if created.ID != "season-1" || created.Name != "2025/26 Treble" {
		t.Fatalf("unexpected season: id=%s name=%q", created.ID, created.Name)
	}
	if len(created.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(created.Players))
	}

	items, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Summary.TopScorer == nil || items[0].Summary.TopScorer.Name != "Bruno Striker" {
		t.Fatalf("unexpected list: %+v", items)
	}
	if items[0].Summary.TrophyCount != 2 || items[0].Summary.TotalGoals != 29 {
		t.Fatalf("unexpected summary: %+v", items[0].Summary)
	}

	summary, err := service.Summary(ctx, created.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TopAssister == nil || summary.TopAssister.Name != "Carlos Winger" {
		t.Fatalf("unexpected top assister: %+v", summary.TopAssister)
	}

	xi, err := service.BestEleven(ctx, created.ID, "")
	if err != nil {
		t.Fatalf("best eleven: %v", err)
	}
	if xi.Formation != "4-3-3" || len(xi.Slots) != 11 {
		t.Fatalf("unexpected best eleven: %+v", xi)
	}
	if !xi.Slots[0].Filled() || xi.Slots[0].Player.Name != "Alan Keeper" {
		t.Fatalf("expected keeper in GK slot: %+v", xi.Slots[0])
	}

	if _, err := service.BestEleven(ctx, created.ID, "3-5-2"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown formation, got %v", err)
	}

	profile, err := service.PlayerProfile(ctx, created.ID, 1)
	if err != nil {
		t.Fatalf("player profile: %v", err)
	}
	if profile.Player.Name != "Bruno Striker" || profile.AvatarURL != "https://faces.example/1002.png" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if _, err := service.PlayerProfile(ctx, created.ID, 3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for out of range index, got %v", err)
	}
	if _, err := service.PlayerProfile(ctx, created.ID, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative index, got %v", err)
	}

	if err := service.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := service.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSeasonService_CreateValidation(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := seasonmock.NewRepository(t)
	service := newSeasonService(repo, nil)

	longName := make([]rune, season.MaxNameLength+1)
	for i := range longName {
		longName[i] = 'x'
	}

	cases := map[string]CreateSeasonInput{
		"missing name":    {HTML: sampleExport()},
		"long name":       {Name: string(longName), HTML: sampleExport()},
		"missing export":  {Name: "x"},
		"fetch disabled":  {Name: "x", SourceURL: "https://example.com/export.html"},
		"no player names": {Name: "x", HTML: []byte("<table><tr><td></td></tr></table>")},
	}
	for name, input := range cases {
		if _, err := service.Create(ctx, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeasonService_CreateFromSourceURL(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := seasonmock.NewRepository(t)
	fetcher := &stubFetcher{body: sampleExport()}
	service := newSeasonService(repo, fetcher)

	repo.
		On("Create", mock.Anything, mock.MatchedBy(func(s season.Season) bool {
			return s.ID == "season-1" && len(s.Players) == 3 && s.CreatedAt.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
		})).
		Return(nil).
		Once()

	if _, err := service.Create(ctx, CreateSeasonInput{Name: "Remote", SourceURL: " https://example.com/export.html "}); err != nil {
		t.Fatalf("create from url: %v", err)
	}
	if len(fetcher.urls) != 1 || fetcher.urls[0] != "https://example.com/export.html" {
		t.Fatalf("unexpected fetched urls: %v", fetcher.urls)
	}
}

func TestSeasonService_FetchErrors(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	down := newSeasonService(seasonmock.NewRepository(t), &stubFetcher{err: errors.New("connection refused")})
	if _, err := down.Create(ctx, CreateSeasonInput{Name: "x", SourceURL: "https://example.com"}); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	badURL := newSeasonService(seasonmock.NewRepository(t), &stubFetcher{err: ErrInvalidInput})
	if _, err := badURL.Create(ctx, CreateSeasonInput{Name: "x", SourceURL: "ftp://example.com"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected classified fetch error to pass through, got %v", err)
	}
}

func TestSeasonService_GetRepositoryError(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := seasonmock.NewRepository(t)
	service := newSeasonService(repo, nil)
	boom := errors.New("disk failure")

	repo.On("GetByID", mock.Anything, "season-9").Return(season.Season{}, false, boom).Once()

	_, err := service.Get(ctx, "season-9")
	if !errors.Is(err, boom) || isClientError(err) {
		t.Fatalf("expected wrapped server error, got %v", err)
	}
}

func TestSeasonService_ImportBatch(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := memory.NewSeasonRepository()
	service := newSeasonService(repo, nil)

	inputs := []CreateSeasonInput{
		{Name: "Season A", HTML: sampleExport()},
		{Name: "Broken", HTML: []byte("<p>no table</p>")},
		{Name: "Season C", HTML: exportHTML(exportRow{UID: "7", Name: "Solo", Position: "ST"})},
		{Name: "", HTML: sampleExport()},
	}

	result, err := service.ImportBatch(ctx, inputs)
	if err != nil {
		t.Fatalf("import batch: %v", err)
	}
	if result.WorkerCount != 2 {
		t.Fatalf("expected 2 workers, got %d", result.WorkerCount)
	}
	if result.CreatedCount != 2 || result.RejectedCount != 2 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Items) != len(inputs) {
		t.Fatalf("expected %d items, got %d", len(inputs), len(result.Items))
	}
	for i, item := range result.Items {
		if item.Index != i || item.Name != inputs[i].Name {
			t.Fatalf("item %d out of order: %+v", i, item)
		}
	}
	if result.Items[0].Status != importStatusCreated || result.Items[0].Players != 3 {
		t.Fatalf("unexpected first item: %+v", result.Items[0])
	}
	if result.Items[1].Status != importStatusRejected || result.Items[1].Message == "" {
		t.Fatalf("broken export should be rejected: %+v", result.Items[1])
	}
	if result.Items[2].Status != importStatusCreated || result.Items[2].Players != 1 {
		t.Fatalf("unexpected third item: %+v", result.Items[2])
	}

	stored, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored seasons, got %d", len(stored))
	}

	if _, err := service.ImportBatch(ctx, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
}

func TestSeasonService_ImportBatchRepositoryFailure(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	repo := seasonmock.NewRepository(t)
	service := newSeasonService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed")).Once()

	result, err := service.ImportBatch(ctx, []CreateSeasonInput{{Name: "A", HTML: sampleExport()}})
	if err != nil {
		t.Fatalf("import batch: %v", err)
	}
	if result.FailedCount != 1 || result.Items[0].Status != importStatusFailed {
		t.Fatalf("expected failed item: %+v", result)
	}
}
