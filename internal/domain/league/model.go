package league

import (
	"fmt"
	"time"
)

// Phase is one step of the season state machine. Only the draft boundary is
// owned by this service; the other phases exist so the enum round-trips
// cleanly through persistence.
type Phase int

const (
	PhasePreseason Phase = iota
	PhaseRegularSeason
	PhasePlayoffs
	PhaseBeforeDraft
	PhaseDraft
	PhaseAfterDraft
	PhaseFreeAgency
)

func (p Phase) String() string {
	switch p {
	case PhasePreseason:
		return "preseason"
	case PhaseRegularSeason:
		return "regular_season"
	case PhasePlayoffs:
		return "playoffs"
	case PhaseBeforeDraft:
		return "before_draft"
	case PhaseDraft:
		return "draft"
	case PhaseAfterDraft:
		return "after_draft"
	case PhaseFreeAgency:
		return "free_agency"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the per-session league context that used to live in a mutable
// global: current season, whose franchise the user controls, and where the
// season state machine stands.
type State struct {
	Season     int
	Phase      Phase
	UserTID    int
	LastChange time.Time
}

// DraftType selects the order-generation model.
type DraftType string

const (
	DraftNBA1994   DraftType = "nba1994"
	DraftNBA2019   DraftType = "nba2019"
	DraftNoLottery DraftType = "noLottery"
	DraftRandom    DraftType = "random"
)

var AllDraftTypes = map[DraftType]struct{}{
	DraftNBA1994:   {},
	DraftNBA2019:   {},
	DraftNoLottery: {},
	DraftRandom:    {},
}

// Settings is the immutable league configuration, built once per session
// from config and threaded into every service.
type Settings struct {
	NumTeams        int
	NumRounds       int
	DraftType       DraftType
	ClassSize       int
	RookieBaseYears int
	ValidateTurn    bool
	Seed            uint64
}

func (s Settings) Validate() error {
	if s.NumTeams < 2 {
		return fmt.Errorf("league needs at least two teams, got %d", s.NumTeams)
	}
	if s.NumRounds < 1 {
		return fmt.Errorf("league needs at least one draft round, got %d", s.NumRounds)
	}
	if _, ok := AllDraftTypes[s.DraftType]; !ok {
		return fmt.Errorf("unknown draft type: %s", s.DraftType)
	}
	if s.ClassSize < s.NumTeams*s.NumRounds {
		return fmt.Errorf("draft class of %d cannot fill %d picks", s.ClassSize, s.NumTeams*s.NumRounds)
	}
	if s.RookieBaseYears < 2 {
		return fmt.Errorf("rookie base years must be at least 2, got %d", s.RookieBaseYears)
	}
	return nil
}
