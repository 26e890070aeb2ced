package season

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gamehubfc/managerhub/internal/domain/player"
)

const MaxNameLength = 120

// Trophies flags what the club won in a story-mode season.
type Trophies struct {
	League         bool `json:"league"`
	DomesticCup    bool `json:"domesticCup"`
	ContinentalCup bool `json:"continentalCup"`
}

func (t Trophies) Count() int {
	n := 0
	for _, won := range []bool{t.League, t.DomesticCup, t.ContinentalCup} {
		if won {
			n++
		}
	}
	return n
}

// Season is an uploaded export plus the story metadata around it. Seasons
// are immutable once stored.
type Season struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Trophies  Trophies        `json:"trophies"`
	Players   []player.Player `json:"players"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (s Season) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("season id is required")
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return fmt.Errorf("season name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("season name must be at most %d characters", MaxNameLength)
	}
	if s.CreatedAt.IsZero() {
		return fmt.Errorf("season created at is required")
	}
	for i, p := range s.Players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("player %d: %w", i, err)
		}
	}
	return nil
}

func (s Season) Clone() Season {
	s.Players = player.CloneAll(s.Players)
	return s
}

// PlayerAt returns the player at index in upload order.
func (s Season) PlayerAt(index int) (player.Player, bool) {
	if index < 0 || index >= len(s.Players) {
		return player.Player{}, false
	}
	return s.Players[index].Clone(), true
}

// Leader is a player's headline number in a season summary.
type Leader struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Summary aggregates a season for list and detail views.
type Summary struct {
	PlayerCount  int     `json:"playerCount"`
	TotalGoals   float64 `json:"totalGoals"`
	TotalAssists float64 `json:"totalAssists"`
	TopScorer    *Leader `json:"topScorer,omitempty"`
	TopAssister  *Leader `json:"topAssister,omitempty"`
	BestRated    *Leader `json:"bestRated,omitempty"`
	TrophyCount  int     `json:"trophyCount"`
}

// Summarize computes totals and leaders. Ties go to the earlier player;
// leaders with a zero value are omitted.
func Summarize(s Season) Summary {
	out := Summary{
		PlayerCount: len(s.Players),
		TrophyCount: s.Trophies.Count(),
	}
	for _, p := range s.Players {
		out.TotalGoals += p.Goals
		out.TotalAssists += p.Assists
		out.TopScorer = better(out.TopScorer, p.Name, p.Goals)
		out.TopAssister = better(out.TopAssister, p.Name, p.Assists)
		out.BestRated = better(out.BestRated, p.Name, p.AverageRating)
	}
	return out
}

func better(current *Leader, name string, value float64) *Leader {
	if value <= 0 {
		return current
	}
	if current == nil || value > current.Value {
		return &Leader{Name: name, Value: value}
	}
	return current
}
