package httpapi

import (
	"net/http"
	"strings"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

type playerSearchDTO struct {
	Items []player.Player `json:"items"`
	Count int             `json:"count"`
}

func (h *Handler) LoadPlayerDatabase(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LoadPlayerDatabase")
	defer span.End()

	html, err := readDocument(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.playerService.LoadDatabase(ctx, html)
	if err != nil {
		h.logFailure(ctx, "load player database failed", err, "bytes", len(html))
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "player database replaced", "players", result.Players)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	query := r.URL.Query()
	limit, err := parseNonNegativeInt(query.Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.playerService.Search(ctx, query.Get("q"), limit)
	if err != nil {
		h.logFailure(ctx, "search players failed", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerSearchDTO{Items: players, Count: len(players)})
}

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	uid := strings.TrimSpace(r.PathValue("uid"))
	profile, err := h.playerService.Profile(ctx, uid)
	if err != nil {
		h.logFailure(ctx, "get player profile failed", err, "uid", uid)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}
