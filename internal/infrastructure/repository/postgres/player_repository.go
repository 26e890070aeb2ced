package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/gamehubfc/managerhub/internal/domain/player"
	qb "github.com/gamehubfc/managerhub/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery, deleteArgs, err := qb.DeleteFrom(playerTable).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete players: %w", err)
	}

	for _, chunk := range chunkPlayers(players, playerInsertChunk) {
		query, args, err := qb.InsertModels(playerTable, chunk, "")
		if err != nil {
			return fmt.Errorf("build insert players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert players: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player replace: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]player.Player, error) {
	b := qb.Select(playerColumns...).
		From(playerTable).
		OrderBy("position_index")
	if q := strings.TrimSpace(query); q != "" {
		b = b.Where(qb.ContainsFold("name", q))
	}
	if limit > 0 {
		b = b.Limit(limit)
	}
	sqlQuery, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// GetByUID returns the earliest row for uid; exports may repeat UIDs.
func (r *PlayerRepository) GetByUID(ctx context.Context, uid string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).
		From(playerTable).
		Where(qb.Eq("uid", uid)).
		OrderBy("position_index").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by uid query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by uid: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From(playerTable).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}
