package season

import (
	"strings"
	"testing"
	"time"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

func validSeason() Season {
	return Season{
		ID:        "s1",
		Name:      "2031/32 Treble",
		Trophies:  Trophies{League: true, DomesticCup: true},
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Players: []player.Player{
			{Name: "A", Goals: 10, Assists: 2, AverageRating: 7.1},
			{Name: "B", Goals: 10, Assists: 8, AverageRating: 7.3},
			{Name: "C", Goals: 1, Assists: 0, AverageRating: 6.5},
		},
	}
}

func TestSeason_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*Season)
		wantErr string
	}{
		{name: "valid", mutate: func(*Season) {}},
		{name: "missing id", mutate: func(s *Season) { s.ID = "" }, wantErr: "id is required"},
		{name: "blank name", mutate: func(s *Season) { s.Name = "   " }, wantErr: "name is required"},
		{name: "long name", mutate: func(s *Season) { s.Name = strings.Repeat("x", MaxNameLength+1) }, wantErr: "at most"},
		{name: "missing created at", mutate: func(s *Season) { s.CreatedAt = time.Time{} }, wantErr: "created at"},
		{name: "unnamed player", mutate: func(s *Season) { s.Players[1].Name = "" }, wantErr: "player 1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := validSeason()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	sum := Summarize(validSeason())
	if sum.PlayerCount != 3 || sum.TrophyCount != 2 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	if sum.TotalGoals != 21 || sum.TotalAssists != 10 {
		t.Fatalf("unexpected totals: %+v", sum)
	}
	if sum.TopScorer == nil || sum.TopScorer.Name != "A" {
		t.Fatalf("tie should go to first player, got %+v", sum.TopScorer)
	}
	if sum.TopAssister.Name != "B" || sum.BestRated.Name != "B" {
		t.Fatalf("unexpected leaders: %+v %+v", sum.TopAssister, sum.BestRated)
	}

	empty := Summarize(Season{})
	if empty.TopScorer != nil || empty.BestRated != nil {
		t.Fatalf("empty season should have no leaders: %+v", empty)
	}
}

func TestSeason_CloneAndPlayerAt(t *testing.T) {
	t.Parallel()

	s := validSeason()
	c := s.Clone()
	c.Players[0].Name = "changed"
	if s.Players[0].Name != "A" {
		t.Fatalf("clone shares players")
	}

	if p, ok := s.PlayerAt(2); !ok || p.Name != "C" {
		t.Fatalf("unexpected player at 2: %+v %v", p, ok)
	}
	if _, ok := s.PlayerAt(3); ok {
		t.Fatalf("index out of range should miss")
	}
	if _, ok := s.PlayerAt(-1); ok {
		t.Fatalf("negative index should miss")
	}
}
