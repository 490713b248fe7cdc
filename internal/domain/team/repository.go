package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetTeam(ctx context.Context, tid int) (Team, bool, error)
	ListTeams(ctx context.Context) ([]Team, error)
	// Standings returns every team's record for the given season.
	Standings(ctx context.Context, season int) ([]Standing, error)
	// ScoutingRank orders teams by scouting spending over recent seasons:
	// 1 is the biggest spender. Drives generation-time rating fuzz.
	ScoutingRank(ctx context.Context, tid int) (int, error)
}
