package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/franchise-gm/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]player.Player
	nextPID int64
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[int64]player.Player, len(players))
	var maxPID int64
	for _, p := range players {
		index[p.PID] = p
		if p.PID > maxPID {
			maxPID = p.PID
		}
	}
	return &PlayerRepository{
		players: index,
		nextPID: maxPID + 1,
	}
}

func (r *PlayerRepository) Get(_ context.Context, pid int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[pid]
	return clonePlayer(p), ok, nil
}

func (r *PlayerRepository) Put(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[p.PID] = clonePlayer(p)
	if p.PID >= r.nextPID {
		r.nextPID = p.PID + 1
	}
	return nil
}

func (r *PlayerRepository) SaveAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range players {
		r.players[p.PID] = clonePlayer(p)
		if p.PID >= r.nextPID {
			r.nextPID = p.PID + 1
		}
	}
	return nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, tid int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, p := range r.players {
		if p.TID == tid {
			out = append(out, clonePlayer(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out, nil
}

func (r *PlayerRepository) NextPID(_ context.Context, n int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	first := r.nextPID
	r.nextPID += int64(n)
	return first, nil
}

// clonePlayer deep-copies the slices so callers never share rating state
// with the store.
func clonePlayer(p player.Player) player.Player {
	p.Ratings.Skills = append([]string(nil), p.Ratings.Skills...)
	if p.Draft != nil {
		d := *p.Draft
		d.Skills = append([]string(nil), d.Skills...)
		p.Draft = &d
	}
	return p
}
