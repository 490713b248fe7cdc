package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
)

type LeagueRepository struct {
	mu    sync.RWMutex
	state league.State
}

func NewLeagueRepository(state league.State) *LeagueRepository {
	return &LeagueRepository{state: state}
}

func (r *LeagueRepository) GetState(_ context.Context) (league.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.state, nil
}

func (r *LeagueRepository) PutState(_ context.Context, state league.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state = state
	return nil
}
