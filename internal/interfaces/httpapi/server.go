package httpapi

import (
	"net/http"
	"time"

	"github.com/gamehubfc/managerhub/internal/platform/logging"
)

type RouterConfig struct {
	Logger  *logging.Logger
	Metrics HTTPMetrics
	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler     http.Handler
	DocsEnabled        bool
	CORSAllowedOrigins []string
	AdminToken         string
	UploadMaxBytes     int64
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	// TrustProxyHeaders takes the client IP from Fly-Client-IP,
	// X-Forwarded-For or X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("httpapi")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerIngestRoutes(mux, handler, cfg)
	registerDatabaseRoutes(mux, handler, cfg)
	registerSeasonRoutes(mux, handler, cfg)

	return RequestTracing(RequestLogging(logger, cfg.Metrics, cfg.TrustProxyHeaders, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
