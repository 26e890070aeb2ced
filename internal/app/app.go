package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gamehubfc/managerhub/internal/config"
	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/domain/season"
	"github.com/gamehubfc/managerhub/internal/infrastructure/exportfetch"
	"github.com/gamehubfc/managerhub/internal/infrastructure/repository/cache"
	"github.com/gamehubfc/managerhub/internal/infrastructure/repository/filestore"
	"github.com/gamehubfc/managerhub/internal/infrastructure/repository/memory"
	"github.com/gamehubfc/managerhub/internal/infrastructure/repository/postgres"
	"github.com/gamehubfc/managerhub/internal/interfaces/httpapi"
	"github.com/gamehubfc/managerhub/internal/observability"
	"github.com/gamehubfc/managerhub/internal/platform/id"
	"github.com/gamehubfc/managerhub/internal/platform/logging"
	"github.com/gamehubfc/managerhub/internal/platform/resilience"
	"github.com/gamehubfc/managerhub/internal/usecase"
)

type repositories struct {
	seasons season.Repository
	players player.Repository
	close   func() error
}

// NewHTTPServer wires storage, services and the router. The returned
// cleanup releases storage handles and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var (
		ingestionMetrics usecase.IngestionMetrics
		httpMetrics      httpapi.HTTPMetrics
		metricsHandler   http.Handler
	)
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics()
		ingestionMetrics = metrics
		httpMetrics = metrics
		metricsHandler = metrics.Handler()
	}

	var fetcher usecase.ExportFetcher
	if cfg.FetchEnabled {
		fetcher = exportfetch.NewClient(exportfetch.Config{
			Timeout:    cfg.FetchTimeout,
			MaxRetries: cfg.FetchMaxRetries,
			MaxBytes:   cfg.FetchMaxBytes,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FetchCircuitEnabled,
				FailureThreshold: cfg.FetchCircuitFailureCount,
				OpenTimeout:      cfg.FetchCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FetchCircuitHalfOpenMaxReq,
			},
		})
	}

	ingestionSvc := usecase.NewIngestionService(nil, ingestionMetrics, logger)
	playerSvc := usecase.NewPlayerService(ingestionSvc, repos.players, usecase.PlayerServiceConfig{
		AvatarBaseURL: cfg.AvatarBaseURL,
		DefaultLimit:  cfg.SearchDefaultLimit,
		MaxLimit:      cfg.SearchMaxLimit,
	})
	seasonSvc := usecase.NewSeasonService(ingestionSvc, repos.seasons, id.NewUUIDGenerator(), fetcher, usecase.SeasonServiceConfig{
		AvatarBaseURL: cfg.AvatarBaseURL,
		ImportWorkers: cfg.ImportWorkers,
	})

	handler := httpapi.NewHandler(ingestionSvc, playerSvc, seasonSvc, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Logger:             logger,
		Metrics:            httpMetrics,
		MetricsHandler:     metricsHandler,
		DocsEnabled:        cfg.DocsEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
		UploadMaxBytes:     cfg.UploadMaxBytes,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, repos.close, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.DBURL, postgres.Options{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			seasons: postgres.NewSeasonRepository(db),
			players: postgres.NewPlayerRepository(db),
			close:   db.Close,
		}
	case config.StorageFile:
		store, err := filestore.Open(cfg.DataDir, cfg.MasterKeyPassphrase)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			seasons: filestore.NewSeasonRepository(cfg.DataDir, store),
			players: filestore.NewPlayerRepository(cfg.DataDir, store),
		}
	case config.StorageMemory:
		repos = repositories{
			seasons: memory.NewSeasonRepository(),
			players: memory.NewPlayerRepository(),
		}
	default:
		return repositories{}, errors.New("unsupported storage driver " + cfg.StorageDriver)
	}

	if repos.close == nil {
		repos.close = func() error { return nil }
	}
	if cfg.CacheEnabled {
		repos.seasons = cache.NewSeasonRepository(repos.seasons, cfg.CacheTTL)
		repos.players = cache.NewPlayerRepository(repos.players, cfg.CacheTTL)
	}

	logger.Info("storage ready",
		"driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
	)
	return repos, nil
}
