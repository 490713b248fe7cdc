package draft

import "github.com/cockroachdb/errors"

var (
	ErrDuplicatePick     = errors.New("duplicate (round, pick) pair in draft order")
	ErrOrderNotSorted    = errors.New("draft order is not in strict round/pick sequence")
	ErrOrderSize         = errors.New("draft order size mismatch")
	ErrTeamPickCount     = errors.New("team pick count mismatch in draft order")
	ErrDegenerateChances = errors.New("lottery chance table is degenerate")
)
