package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/domain/season"
	"github.com/gamehubfc/managerhub/internal/usecase"
)

type trophiesDTO struct {
	League         bool `json:"league"`
	DomesticCup    bool `json:"domesticCup"`
	ContinentalCup bool `json:"continentalCup"`
}

type createSeasonRequest struct {
	Name      string      `json:"name" validate:"required,max=120"`
	Trophies  trophiesDTO `json:"trophies"`
	HTML      string      `json:"html" validate:"required_without=SourceURL"`
	SourceURL string      `json:"sourceUrl" validate:"omitempty,url"`
}

type seasonDetailDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Trophies  season.Trophies `json:"trophies"`
	CreatedAt time.Time       `json:"createdAt"`
	Summary   season.Summary  `json:"summary"`
	Players   []player.Player `json:"players"`
}

func seasonToDetailDTO(item season.Season) seasonDetailDTO {
	players := item.Players
	if players == nil {
		players = []player.Player{}
	}
	return seasonDetailDTO{
		ID:        item.ID,
		Name:      item.Name,
		Trophies:  item.Trophies,
		CreatedAt: item.CreatedAt,
		Summary:   season.Summarize(item),
		Players:   players,
	}
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	var req createSeasonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.seasonService.Create(ctx, usecase.CreateSeasonInput{
		Name: req.Name,
		Trophies: season.Trophies{
			League:         req.Trophies.League,
			DomesticCup:    req.Trophies.DomesticCup,
			ContinentalCup: req.Trophies.ContinentalCup,
		},
		HTML:      []byte(req.HTML),
		SourceURL: req.SourceURL,
	})
	if err != nil {
		h.logFailure(ctx, "create season failed", err, "name", req.Name)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "season created", "season_id", item.ID, "players", len(item.Players))
	writeSuccess(ctx, w, http.StatusCreated, seasonToDetailDTO(item))
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	items, err := h.seasonService.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list seasons failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	item, err := h.seasonService.Get(ctx, seasonID)
	if err != nil {
		h.logFailure(ctx, "get season failed", err, "season_id", seasonID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDetailDTO(item))
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	if err := h.seasonService.Delete(ctx, seasonID); err != nil {
		h.logFailure(ctx, "delete season failed", err, "season_id", seasonID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"id": seasonID, "deleted": true})
}

func (h *Handler) GetSeasonSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonSummary")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	summary, err := h.seasonService.Summary(ctx, seasonID)
	if err != nil {
		h.logFailure(ctx, "get season summary failed", err, "season_id", seasonID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) GetBestEleven(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBestEleven")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	view, err := h.seasonService.BestEleven(ctx, seasonID, r.URL.Query().Get("formation"))
	if err != nil {
		h.logFailure(ctx, "get best eleven failed", err, "season_id", seasonID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

func (h *Handler) GetSeasonPlayerRadar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonPlayerRadar")
	defer span.End()

	seasonID := strings.TrimSpace(r.PathValue("seasonID"))
	index, err := parseNonNegativeInt(r.PathValue("index"), "player index")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.seasonService.PlayerProfile(ctx, seasonID, index)
	if err != nil {
		h.logFailure(ctx, "get season player radar failed", err, "season_id", seasonID, "index", index)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}
