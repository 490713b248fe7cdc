package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/franchise-gm/internal/domain/player"
	qb "github.com/riskibarqy/franchise-gm/internal/platform/querybuilder"
)

const playerUpsertSuffix = `ON CONFLICT (pid) DO UPDATE SET
	name = EXCLUDED.name,
	born = EXCLUDED.born,
	tid = EXCLUDED.tid,
	ratings = EXCLUDED.ratings,
	draft = EXCLUDED.draft,
	contract_amount = EXCLUDED.contract_amount,
	contract_exp = EXCLUDED.contract_exp`

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Get(ctx context.Context, pid int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("pid", pid)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player %d: %w", pid, err)
	}

	p, err := rowToPlayer(row)
	if err != nil {
		return player.Player{}, false, err
	}
	return p, true, nil
}

func (r *PlayerRepository) Put(ctx context.Context, p player.Player) error {
	row, err := playerToRow(p)
	if err != nil {
		return err
	}

	query, args, err := upsertPlayerSQL(row)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player %d: %w", p.PID, err)
	}
	return nil
}

// SaveAll writes the batch in one transaction; a draft class lands whole or
// not at all.
func (r *PlayerRepository) SaveAll(ctx context.Context, players []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save players: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range players {
		row, err := playerToRow(p)
		if err != nil {
			return err
		}
		query, args, err := upsertPlayerSQL(row)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player %d: %w", p.PID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save players: %w", err)
	}
	return nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, tid int) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("tid", tid)).
		OrderBy("pid").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players for team %d: %w", tid, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		p, err := rowToPlayer(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// NextPID reserves n consecutive ids and returns the first.
func (r *PlayerRepository) NextPID(ctx context.Context, n int) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("reserve %d player ids", n)
	}

	var first int64
	err := r.db.GetContext(ctx, &first,
		`UPDATE player_id_counter SET next_pid = next_pid + $1 RETURNING next_pid - $1`, n)
	if err != nil {
		return 0, fmt.Errorf("reserve %d player ids: %w", n, err)
	}
	return first, nil
}

func upsertPlayerSQL(row playerTableModel) (string, []any, error) {
	query, args, err := qb.InsertInto("players").
		Columns("pid", "name", "born", "tid", "ratings", "draft", "contract_amount", "contract_exp").
		Values(row.PID, row.Name, row.Born, row.TID, row.Ratings, row.Draft, row.ContractAmount, row.ContractExp).
		Suffix(playerUpsertSuffix).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert player query: %w", err)
	}
	return query, args, nil
}
