package ingest

import (
	"testing"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

func TestNormalizeCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		wantKind player.ValueKind
		wantNum  float64
		wantText string
	}{
		{raw: "15", wantKind: player.KindNumber, wantNum: 15, wantText: "15"},
		{raw: "  6.85 ", wantKind: player.KindNumber, wantNum: 6.85, wantText: "6.85"},
		{raw: "-3", wantKind: player.KindNumber, wantNum: -3, wantText: "-3"},
		{raw: "-", wantKind: player.KindNumber, wantNum: 0, wantText: "-"},
		{raw: " - ", wantKind: player.KindNumber, wantNum: 0, wantText: "-"},
		{raw: "RB", wantKind: player.KindText, wantText: "RB"},
		{raw: "", wantKind: player.KindText, wantText: ""},
		{raw: "   ", wantKind: player.KindText, wantText: ""},
		{raw: "1,5", wantKind: player.KindText, wantText: "1,5"},
		{raw: "£1.2M", wantKind: player.KindText, wantText: "£1.2M"},
		{raw: "Infinity", wantKind: player.KindText, wantText: "Infinity"},
		{raw: "NaN", wantKind: player.KindText, wantText: "NaN"},
	}

	for _, tc := range tests {
		got := NormalizeCell(tc.raw)
		if got.Kind != tc.wantKind || got.Number != tc.wantNum || got.Text != tc.wantText {
			t.Fatalf("NormalizeCell(%q) = %+v, want kind=%d num=%v text=%q", tc.raw, got, tc.wantKind, tc.wantNum, tc.wantText)
		}
	}
}
