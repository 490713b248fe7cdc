package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/franchise-gm/internal/domain/team"
)

type TeamRepository struct {
	mu            sync.RWMutex
	teams         map[int]team.Team
	standings     map[int][]team.Standing
	scoutingRanks map[int]int
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	index := make(map[int]team.Team, len(teams))
	ranks := make(map[int]int, len(teams))
	for i, t := range teams {
		index[t.TID] = t
		// default scouting rank: roster order until finances say otherwise
		ranks[t.TID] = i + 1
	}
	return &TeamRepository{
		teams:         index,
		standings:     make(map[int][]team.Standing),
		scoutingRanks: ranks,
	}
}

func (r *TeamRepository) GetTeam(_ context.Context, tid int) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[tid]
	return t, ok, nil
}

func (r *TeamRepository) ListTeams(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for tid := 0; tid < len(r.teams); tid++ {
		if t, ok := r.teams[tid]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TeamRepository) Standings(_ context.Context, season int) ([]team.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, ok := r.standings[season]
	if !ok {
		return nil, fmt.Errorf("no standings recorded for season %d", season)
	}
	out := make([]team.Standing, len(rows))
	copy(out, rows)
	return out, nil
}

func (r *TeamRepository) ScoutingRank(_ context.Context, tid int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rank, ok := r.scoutingRanks[tid]
	if !ok {
		return 0, fmt.Errorf("no scouting rank for team %d", tid)
	}
	return rank, nil
}

// SetStandings replaces the season's records; used by seeding and tests.
func (r *TeamRepository) SetStandings(season int, standings []team.Standing) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]team.Standing, len(standings))
	copy(rows, standings)
	r.standings[season] = rows
}

// SetScoutingRank overrides the expense-derived rank for one team.
func (r *TeamRepository) SetScoutingRank(tid, rank int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scoutingRanks[tid] = rank
}
