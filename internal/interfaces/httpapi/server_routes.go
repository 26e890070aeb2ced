package httpapi

import "net/http"

// route records the matched pattern for request logs and metrics.
func route(pattern string, next http.Handler) (string, http.Handler) {
	return pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if info, ok := requestInfoFromContext(r.Context()); ok {
			info.route = pattern
		}
		next.ServeHTTP(w, r)
	})
}

func upload(cfg RouterConfig, next http.HandlerFunc) http.Handler {
	limit := RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow)
	return limit(LimitBody(cfg.UploadMaxBytes, next))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.Handle(route("GET /healthz", http.HandlerFunc(handler.Healthz)))
	if cfg.MetricsHandler != nil {
		mux.Handle(route("GET /metrics", cfg.MetricsHandler))
	}
	if !cfg.DocsEnabled {
		return
	}

	mux.Handle(route("GET /openapi.yaml", http.HandlerFunc(handler.OpenAPI)))
	mux.Handle(route("GET /docs", http.HandlerFunc(handler.SwaggerUI)))
	mux.Handle(route("GET /docs/", http.HandlerFunc(handler.SwaggerUI)))
}

func registerIngestRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.Handle(route("POST /v1/ingest/preview", upload(cfg, handler.PreviewExport)))
}

func registerDatabaseRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.Handle(route("PUT /v1/database/players", RequireAdminToken(cfg.AdminToken, upload(cfg, handler.LoadPlayerDatabase))))
	mux.Handle(route("GET /v1/database/players", http.HandlerFunc(handler.SearchPlayers)))
	mux.Handle(route("GET /v1/database/players/{uid}", http.HandlerFunc(handler.GetPlayerProfile)))
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.Handle(route("POST /v1/seasons", upload(cfg, handler.CreateSeason)))
	mux.Handle(route("GET /v1/seasons", http.HandlerFunc(handler.ListSeasons)))
	mux.Handle(route("GET /v1/seasons/{seasonID}", http.HandlerFunc(handler.GetSeason)))
	mux.Handle(route("DELETE /v1/seasons/{seasonID}", http.HandlerFunc(handler.DeleteSeason)))
	mux.Handle(route("GET /v1/seasons/{seasonID}/summary", http.HandlerFunc(handler.GetSeasonSummary)))
	mux.Handle(route("GET /v1/seasons/{seasonID}/best-eleven", http.HandlerFunc(handler.GetBestEleven)))
	mux.Handle(route("GET /v1/seasons/{seasonID}/players/{index}/radar", http.HandlerFunc(handler.GetSeasonPlayerRadar)))
}
