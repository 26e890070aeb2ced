package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/gamehubfc/managerhub/internal/infrastructure/repository/memory"
	"github.com/gamehubfc/managerhub/internal/ingest"
	"github.com/gamehubfc/managerhub/internal/platform/id"
	"github.com/gamehubfc/managerhub/internal/platform/logging"
	"github.com/gamehubfc/managerhub/internal/usecase"
)

const testAdminToken = "secret-admin"

func sampleExport() string {
	return `<html><body><table>
<tr><th>UID</th><th>Name</th><th>Position</th><th>Club</th><th>CA</th><th>Gls</th><th>Ast</th><th>Av Rat</th><th>Fin</th><th>Pac</th></tr>
<tr><td>1001</td><td>Alan Keeper</td><td>GK</td><td>GameHub FC</td><td>140</td><td>0</td><td>0</td><td>6.9</td><td>2</td><td>9</td></tr>
<tr><td>1002</td><td>Bruno Striker</td><td>ST</td><td>GameHub FC</td><td>155</td><td>21</td><td>4</td><td>7.4</td><td>17</td><td>15</td></tr>
<tr><td>1003</td><td>Carlos Winger</td><td>AM (RL)</td><td>GameHub FC</td><td>-</td><td>8</td><td>12</td><td>7.1</td><td>12</td><td>18</td></tr>
</table></body></html>`
}

func containsAll(body string, parts ...string) bool {
	for _, part := range parts {
		if !strings.Contains(body, part) {
			return false
		}
	}
	return true
}

func newTestRouter(t *testing.T, cfg RouterConfig) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	ingestion := usecase.NewIngestionService(nil, nil, logger)
	players := usecase.NewPlayerService(ingestion, memory.NewPlayerRepository(), usecase.PlayerServiceConfig{
		AvatarBaseURL: "https://cdn.example.com/faces",
	})
	seasons := usecase.NewSeasonService(ingestion, memory.NewSeasonRepository(), id.NewUUIDGenerator(), nil, usecase.SeasonServiceConfig{})

	cfg.Logger = logger
	if cfg.AdminToken == "" {
		cfg.AdminToken = testAdminToken
	}
	return NewRouter(NewHandler(ingestion, players, seasons, logger), cfg)
}

func serve(router http.Handler, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Data T `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v body=%s", err, rec.Body.String())
	}
	return envelope.Data
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := serve(newTestRouter(t, RouterConfig{}), http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !containsAll(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestDocsRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{DocsEnabled: true})

	rec := serve(router, http.MethodGet, "/openapi.yaml", nil, nil)
	if rec.Code != http.StatusOK || !containsAll(rec.Body.String(), "openapi:", "/v1/seasons") {
		t.Fatalf("unexpected openapi response %d: %s", rec.Code, rec.Body.String())
	}

	rec = serve(router, http.MethodGet, "/docs", nil, nil)
	if rec.Code != http.StatusOK || !containsAll(rec.Body.String(), "<title>ManagerHub API</title>", "openapi.yaml", "swagger-ui-bundle.js") {
		t.Fatalf("unexpected docs response %d", rec.Code)
	}

	rec = serve(newTestRouter(t, RouterConfig{}), http.MethodGet, "/docs", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("docs should be hidden when disabled, got %d", rec.Code)
	}
}

func TestPreviewExport(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{})

	rec := serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()), map[string]string{
		"Content-Type": "text/html",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	preview := decodeData[previewDTO](t, rec)
	if preview.Count != 3 || preview.ParseError != nil {
		t.Fatalf("unexpected preview: %+v", preview)
	}
	if preview.Players[1].Name != "Bruno Striker" {
		t.Fatalf("rows should keep export order, got %q", preview.Players[1].Name)
	}

	rec = serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader("<p>no table here</p>"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("document without a table should still answer 200, got %d", rec.Code)
	}
	empty := decodeData[previewDTO](t, rec)
	if empty.Count != 0 || empty.Players == nil || empty.ParseError != nil {
		t.Fatalf("expected an empty preview: %s", rec.Body.String())
	}
}

func TestPreviewToDTO_ParseError(t *testing.T) {
	t.Parallel()

	dto := previewToDTO(ingest.Result{Err: &ingest.ParseError{Stage: ingest.StageBuild, Err: errors.New("bad row")}})
	if dto.ParseError == nil || dto.ParseError.Stage != "build" {
		t.Fatalf("unexpected parse error: %+v", dto.ParseError)
	}
	if !containsAll(dto.ParseError.Message, "bad row") || dto.Players == nil {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestPreviewExport_Multipart(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "season.html")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.WriteString(part, sampleExport()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	rec := serve(newTestRouter(t, RouterConfig{}), http.MethodPost, "/v1/ingest/preview", &body, map[string]string{
		"Content-Type": form.FormDataContentType(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if preview := decodeData[previewDTO](t, rec); preview.Count != 3 {
		t.Fatalf("expected 3 players, got %d", preview.Count)
	}
}

func TestPlayerDatabase_AdminTokenRequired(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{})

	rec := serve(router, http.MethodPut, "/v1/database/players", strings.NewReader(sampleExport()), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = serve(router, http.MethodPut, "/v1/database/players", strings.NewReader(sampleExport()), map[string]string{
		"Authorization": "Bearer wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}

	rec = serve(router, http.MethodPut, "/v1/database/players", strings.NewReader(sampleExport()), map[string]string{
		"Authorization": "Bearer " + testAdminToken,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireAdminToken_NotConfigured(t *testing.T) {
	t.Parallel()

	handler := RequireAdminToken("  ", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("guarded handler should not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/database/players", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestPlayerDatabase_LoadSearchProfile(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{})
	admin := map[string]string{"X-Admin-Token": testAdminToken}

	rec := serve(router, http.MethodPut, "/v1/database/players", strings.NewReader("<table><tr><th>Name</th></tr></table>"), admin)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("export without players should be rejected, got %d", rec.Code)
	}

	rec = serve(router, http.MethodPut, "/v1/database/players", strings.NewReader(sampleExport()), admin)
	if rec.Code != http.StatusOK {
		t.Fatalf("load database: %d %s", rec.Code, rec.Body.String())
	}
	if loaded := decodeData[usecase.LoadDatabaseResult](t, rec); loaded.Players != 3 {
		t.Fatalf("expected 3 players loaded, got %d", loaded.Players)
	}

	rec = serve(router, http.MethodGet, "/v1/database/players?q=BRU", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search: %d %s", rec.Code, rec.Body.String())
	}
	found := decodeData[playerSearchDTO](t, rec)
	if found.Count != 1 || found.Items[0].UID != "1002" {
		t.Fatalf("unexpected search result: %+v", found)
	}

	rec = serve(router, http.MethodGet, "/v1/database/players?limit=-1", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative limit should be rejected, got %d", rec.Code)
	}

	rec = serve(router, http.MethodGet, "/v1/database/players/1002", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: %d %s", rec.Code, rec.Body.String())
	}
	profile := decodeData[usecase.PlayerProfile](t, rec)
	if profile.Player.Name != "Bruno Striker" || profile.Goalkeeper {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if !strings.HasPrefix(profile.AvatarURL, "https://cdn.example.com/faces") {
		t.Fatalf("unexpected avatar url %q", profile.AvatarURL)
	}

	rec = serve(router, http.MethodGet, "/v1/database/players/9999", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown uid, got %d", rec.Code)
	}
}

func TestSeasonLifecycle(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{})

	payload, err := sonic.Marshal(map[string]any{
		"name":     "2031/32",
		"trophies": map[string]bool{"league": true},
		"html":     sampleExport(),
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	rec := serve(router, http.MethodPost, "/v1/seasons", bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create season: %d %s", rec.Code, rec.Body.String())
	}
	created := decodeData[seasonDetailDTO](t, rec)
	if created.ID == "" || len(created.Players) != 3 || !created.Trophies.League {
		t.Fatalf("unexpected season: %+v", created)
	}
	base := "/v1/seasons/" + created.ID

	rec = serve(router, http.MethodGet, "/v1/seasons", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list seasons: %d", rec.Code)
	}
	if items := decodeData[[]usecase.SeasonListItem](t, rec); len(items) != 1 || items[0].Name != "2031/32" {
		t.Fatalf("unexpected list: %+v", items)
	}

	for _, path := range []string{base, base + "/summary", base + "/best-eleven", base + "/best-eleven?formation=4-4-2", base + "/players/1/radar"} {
		if rec := serve(router, http.MethodGet, path, nil, nil); rec.Code != http.StatusOK {
			t.Fatalf("GET %s: %d %s", path, rec.Code, rec.Body.String())
		}
	}

	rec = serve(router, http.MethodGet, base+"/best-eleven?formation=9-9-9", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown formation should be rejected, got %d", rec.Code)
	}
	rec = serve(router, http.MethodGet, base+"/players/99/radar", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("out of range index should be 404, got %d", rec.Code)
	}
	rec = serve(router, http.MethodGet, base+"/players/x/radar", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non numeric index should be 400, got %d", rec.Code)
	}

	rec = serve(router, http.MethodDelete, base, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete season: %d", rec.Code)
	}
	rec = serve(router, http.MethodGet, base, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("deleted season should be gone, got %d", rec.Code)
	}
	rec = serve(router, http.MethodDelete, base, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete should be 404, got %d", rec.Code)
	}
}

func TestCreateSeason_RejectsBadRequests(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{})
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed json", body: `{"name":`, want: http.StatusBadRequest},
		{name: "unknown field", body: `{"name":"s","html":"<table></table>","extra":1}`, want: http.StatusBadRequest},
		{name: "missing name", body: `{"html":"<table></table>"}`, want: http.StatusBadRequest},
		{name: "missing document", body: `{"name":"s"}`, want: http.StatusBadRequest},
		{name: "remote exports disabled", body: `{"name":"s","sourceUrl":"https://example.com/s.html"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/v1/seasons", strings.NewReader(tt.body), map[string]string{
				"Content-Type": "application/json",
			})
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUploadRateLimit(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute, TrustProxyHeaders: true})

	first := serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()), nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first upload: %d", first.Code)
	}
	second := serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()), nil)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if got := second.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("unexpected Retry-After %q", got)
	}

	other := serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()), map[string]string{
		"X-Forwarded-For": "203.0.113.9",
	})
	if other.Code != http.StatusOK {
		t.Fatalf("other client should have its own bucket, got %d", other.Code)
	}

	if rec := serve(router, http.MethodGet, "/v1/seasons", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("reads should not be throttled, got %d", rec.Code)
	}
}

func TestUploadRateLimit_ForwardedHeadersNeedTrustedProxy(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	first := serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()), map[string]string{
		"X-Forwarded-For": "203.0.113.10",
	})
	if first.Code != http.StatusOK {
		t.Fatalf("first upload: %d", first.Code)
	}
	for _, spoofed := range []string{"203.0.113.11", "203.0.113.12"} {
		rec := serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()), map[string]string{
			"X-Forwarded-For": spoofed,
			"Fly-Client-IP":   spoofed,
		})
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("rotating %s should not reset the bucket, got %d", spoofed, rec.Code)
		}
	}
}

func TestUploadBodyLimit(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, RouterConfig{UploadMaxBytes: 64})

	rec := serve(router, http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()), nil)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/ingest/preview", strings.NewReader(sampleExport()))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for unknown length body, got %d", rec.Code)
	}
}

func TestRecoverPanic(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(fmt.Sprintf("boom at %s", r.URL.Path))
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if containsAll(rec.Body.String(), "boom") {
		t.Fatalf("panic value leaked: %s", rec.Body.String())
	}
}

type recordingHTTPMetrics struct {
	routes   []string
	statuses []int
}

func (m *recordingHTTPMetrics) ObserveHTTPRequest(_ string, route string, status int, _ time.Duration) {
	m.routes = append(m.routes, route)
	m.statuses = append(m.statuses, status)
}

func TestRequestLogging_RecordsRoutePattern(t *testing.T) {
	t.Parallel()

	metrics := &recordingHTTPMetrics{}
	router := newTestRouter(t, RouterConfig{Metrics: metrics})

	serve(router, http.MethodGet, "/v1/seasons/missing", nil, nil)
	serve(router, http.MethodGet, "/nowhere", nil, nil)

	if len(metrics.routes) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(metrics.routes))
	}
	if metrics.routes[0] != "GET /v1/seasons/{seasonID}" || metrics.statuses[0] != http.StatusNotFound {
		t.Fatalf("unexpected first observation %q %d", metrics.routes[0], metrics.statuses[0])
	}
	if metrics.routes[1] != "unmatched" {
		t.Fatalf("unexpected route label %q", metrics.routes[1])
	}
}
