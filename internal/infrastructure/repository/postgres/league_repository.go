package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
)

type leagueStateTableModel struct {
	Season     int       `db:"season"`
	Phase      int       `db:"phase"`
	UserTID    int       `db:"user_tid"`
	LastChange time.Time `db:"last_change"`
}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetState(ctx context.Context) (league.State, error) {
	var row leagueStateTableModel
	err := r.db.GetContext(ctx, &row,
		`SELECT season, phase, user_tid, last_change FROM league_state WHERE id = 1`)
	if err != nil {
		return league.State{}, fmt.Errorf("get league state: %w", err)
	}

	return league.State{
		Season:     row.Season,
		Phase:      league.Phase(row.Phase),
		UserTID:    row.UserTID,
		LastChange: row.LastChange,
	}, nil
}

func (r *LeagueRepository) PutState(ctx context.Context, state league.State) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO league_state (id, season, phase, user_tid, last_change)
		 VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
			season = EXCLUDED.season,
			phase = EXCLUDED.phase,
			user_tid = EXCLUDED.user_tid,
			last_change = EXCLUDED.last_change`,
		state.Season, int(state.Phase), state.UserTID, state.LastChange)
	if err != nil {
		return fmt.Errorf("put league state: %w", err)
	}
	return nil
}
