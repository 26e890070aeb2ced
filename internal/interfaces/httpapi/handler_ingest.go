package httpapi

import (
	"errors"
	"net/http"

	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/ingest"
	"github.com/gamehubfc/managerhub/internal/usecase"
)

type parseErrorDTO struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type previewDTO struct {
	Players    []player.Player `json:"players"`
	Count      int             `json:"count"`
	Columns    int             `json:"columns"`
	ParseError *parseErrorDTO  `json:"parseError,omitempty"`
}

// PreviewExport parses an export without storing it. A failed parse is
// reported in the payload next to an empty player list.
func (h *Handler) PreviewExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewExport")
	defer span.End()

	html, err := readDocument(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result := h.ingestionService.Parse(ctx, usecase.SourcePreview, html)
	writeSuccess(ctx, w, http.StatusOK, previewToDTO(result))
}

func previewToDTO(result ingest.Result) previewDTO {
	out := previewDTO{
		Players: result.Players,
		Count:   len(result.Players),
		Columns: result.Columns,
	}
	if out.Players == nil {
		out.Players = []player.Player{}
	}
	if result.Err != nil {
		out.ParseError = &parseErrorDTO{Message: result.Err.Error()}
		var parseErr *ingest.ParseError
		if errors.As(result.Err, &parseErr) {
			out.ParseError.Stage = string(parseErr.Stage)
		}
	}
	return out
}
