package player

import "context"

// Repository describes player persistence needs from use cases. Each Put is
// a complete, self-contained write of one player record; SaveAll is one
// logical batch (all or nothing).
type Repository interface {
	Get(ctx context.Context, pid int64) (Player, bool, error)
	Put(ctx context.Context, p Player) error
	SaveAll(ctx context.Context, players []Player) error
	// ListByTeam returns every player on the given roster slot, including
	// the synthetic TeamUndrafted pool.
	ListByTeam(ctx context.Context, tid int) ([]Player, error)
	// NextPID reserves n sequential player ids and returns the first.
	NextPID(ctx context.Context, n int) (int64, error)
}
