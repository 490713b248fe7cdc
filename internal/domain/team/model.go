package team

import "fmt"

// Team is one franchise in the league.
type Team struct {
	TID    int
	CID    int
	Abbrev string
	Name   string
	Region string
}

func (t Team) Validate() error {
	if t.TID < 0 {
		return fmt.Errorf("team tid must be non-negative, got %d", t.TID)
	}
	if t.Abbrev == "" {
		return fmt.Errorf("team abbrev is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// Standing is a team's record for one season, the input to draft-order
// generation.
type Standing struct {
	TID              int
	CID              int
	Abbrev           string
	Name             string
	Region           string
	Won              int
	Lost             int
	Tied             int
	WinPct           float64
	PlayoffRoundsWon int
}
