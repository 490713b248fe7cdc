package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/franchise-gm/internal/domain/team"
	qb "github.com/riskibarqy/franchise-gm/internal/platform/querybuilder"
)

type teamTableModel struct {
	TID          int    `db:"tid"`
	CID          int    `db:"cid"`
	Abbrev       string `db:"abbrev"`
	Name         string `db:"name"`
	Region       string `db:"region"`
	ScoutingRank int    `db:"scouting_rank"`
}

type standingTableModel struct {
	Season           int     `db:"season"`
	TID              int     `db:"tid"`
	CID              int     `db:"cid"`
	Abbrev           string  `db:"abbrev"`
	Name             string  `db:"name"`
	Region           string  `db:"region"`
	Won              int     `db:"won"`
	Lost             int     `db:"lost"`
	Tied             int     `db:"tied"`
	WinPct           float64 `db:"win_pct"`
	PlayoffRoundsWon int     `db:"playoff_rounds_won"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetTeam(ctx context.Context, tid int) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("tid", tid)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team %d: %w", tid, err)
	}

	return rowToTeam(row), true, nil
}

func (r *TeamRepository) ListTeams(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("tid").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToTeam(row))
	}
	return out, nil
}

// Standings joins team identity onto the season record; the draft order
// generator consumes this as one read.
func (r *TeamRepository) Standings(ctx context.Context, season int) ([]team.Standing, error) {
	const query = `SELECT s.season, s.tid, t.cid, t.abbrev, t.name, t.region,
		s.won, s.lost, s.tied, s.win_pct, s.playoff_rounds_won
		FROM standings s
		JOIN teams t ON t.tid = s.tid
		WHERE s.season = $1
		ORDER BY s.tid`

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, season); err != nil {
		return nil, fmt.Errorf("list standings for season %d: %w", season, err)
	}

	out := make([]team.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Standing{
			TID:              row.TID,
			CID:              row.CID,
			Abbrev:           row.Abbrev,
			Name:             row.Name,
			Region:           row.Region,
			Won:              row.Won,
			Lost:             row.Lost,
			Tied:             row.Tied,
			WinPct:           row.WinPct,
			PlayoffRoundsWon: row.PlayoffRoundsWon,
		})
	}
	return out, nil
}

func (r *TeamRepository) ScoutingRank(ctx context.Context, tid int) (int, error) {
	query, args, err := qb.Select("scouting_rank").From("teams").
		Where(qb.Eq("tid", tid)).
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build scouting rank query: %w", err)
	}

	var rank int
	if err := r.db.GetContext(ctx, &rank, query, args...); err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("no scouting rank for team %d", tid)
		}
		return 0, fmt.Errorf("scouting rank for team %d: %w", tid, err)
	}
	return rank, nil
}

func rowToTeam(row teamTableModel) team.Team {
	return team.Team{
		TID:    row.TID,
		CID:    row.CID,
		Abbrev: row.Abbrev,
		Name:   row.Name,
		Region: row.Region,
	}
}
