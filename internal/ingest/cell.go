package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

// NormalizeCell coerces raw cell text. Numeric text becomes a number, a lone
// "-" becomes the number 0, anything else stays trimmed text.
func NormalizeCell(raw string) player.Value {
	text := strings.TrimSpace(raw)
	if text == "" {
		return player.Text("")
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return player.Value{Kind: player.KindNumber, Number: n, Text: text}
	}
	if text == player.Placeholder {
		return player.Value{Kind: player.KindNumber, Number: 0, Text: text}
	}
	return player.Text(text)
}
