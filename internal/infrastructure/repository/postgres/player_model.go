package postgres

import (
	"github.com/gamehubfc/managerhub/internal/domain/player"
)

const (
	playerTable = "players"
	// Postgres caps a statement at 65535 bind parameters.
	playerInsertChunk = 500
)

var playerColumns = []string{
	"position_index",
	"uid",
	"name",
	"position",
	"club",
	"payload",
}

type playerTableModel struct {
	PositionIndex int                       `db:"position_index"`
	UID           string                    `db:"uid"`
	Name          string                    `db:"name"`
	Position      string                    `db:"position"`
	Club          string                    `db:"club"`
	Payload       jsonColumn[player.Player] `db:"payload"`
}

func newPlayerTableModel(index int, p player.Player) playerTableModel {
	return playerTableModel{
		PositionIndex: index,
		UID:           p.UID,
		Name:          p.Name,
		Position:      p.Position,
		Club:          p.Club,
		Payload:       jsonColumn[player.Player]{V: p},
	}
}

func (m playerTableModel) toDomain() player.Player {
	return m.Payload.V
}

func chunkPlayers(players []player.Player, size int) [][]playerTableModel {
	if size <= 0 {
		size = playerInsertChunk
	}
	var out [][]playerTableModel
	for start := 0; start < len(players); start += size {
		end := min(start+size, len(players))
		chunk := make([]playerTableModel, 0, end-start)
		for i := start; i < end; i++ {
			chunk = append(chunk, newPlayerTableModel(i, players[i]))
		}
		out = append(out, chunk)
	}
	return out
}
