package postgres

import (
	"time"

	"github.com/gamehubfc/managerhub/internal/domain/player"
	"github.com/gamehubfc/managerhub/internal/domain/season"
)

const seasonTable = "seasons"

var seasonColumns = []string{
	"id",
	"name",
	"trophy_league",
	"trophy_domestic_cup",
	"trophy_continental_cup",
	"players",
	"player_count",
	"created_at",
}

type seasonTableModel struct {
	ID                   string                      `db:"id"`
	Name                 string                      `db:"name"`
	TrophyLeague         bool                        `db:"trophy_league"`
	TrophyDomesticCup    bool                        `db:"trophy_domestic_cup"`
	TrophyContinentalCup bool                        `db:"trophy_continental_cup"`
	Players              jsonColumn[[]player.Player] `db:"players"`
	PlayerCount          int                         `db:"player_count"`
	CreatedAt            time.Time                   `db:"created_at"`
}

func newSeasonTableModel(s season.Season) seasonTableModel {
	players := s.Players
	if players == nil {
		players = []player.Player{}
	}
	return seasonTableModel{
		ID:                   s.ID,
		Name:                 s.Name,
		TrophyLeague:         s.Trophies.League,
		TrophyDomesticCup:    s.Trophies.DomesticCup,
		TrophyContinentalCup: s.Trophies.ContinentalCup,
		Players:              jsonColumn[[]player.Player]{V: players},
		PlayerCount:          len(players),
		CreatedAt:            s.CreatedAt.UTC(),
	}
}

func (m seasonTableModel) toDomain() season.Season {
	players := m.Players.V
	if players == nil {
		players = []player.Player{}
	}
	return season.Season{
		ID:   m.ID,
		Name: m.Name,
		Trophies: season.Trophies{
			League:         m.TrophyLeague,
			DomesticCup:    m.TrophyDomesticCup,
			ContinentalCup: m.TrophyContinentalCup,
		},
		Players:   players,
		CreatedAt: m.CreatedAt.UTC(),
	}
}
