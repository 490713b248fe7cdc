package player

import (
	"fmt"
	"math"
)

// Roster slots for players not on a franchise.
const (
	TeamFreeAgent = -1
	TeamUndrafted = -2
)

// Profile is the archetype a prospect's ratings were rolled from.
type Profile string

const (
	ProfilePoint Profile = "Point"
	ProfileWing  Profile = "Wing"
	ProfileBig   Profile = "Big"
	ProfileBase  Profile = ""
)

// Ratings is a player's current ability snapshot. Fuzz is the
// scouting-accuracy error baked in at generation time: displayed overall is
// Ovr+Fuzz, true overall stays Ovr.
type Ratings struct {
	Season  int
	Ovr     int
	Pot     int
	Skills  []string
	Fuzz    float64
	Profile Profile
}

// DraftInfo is stamped once when a player is selected and never touched
// again; it snapshots both the drafting team's identity and the player's
// ratings at the moment of the pick.
type DraftInfo struct {
	Round      int
	Pick       int
	TID        int
	Year       int
	Abbrev     string
	TeamName   string
	TeamRegion string
	Ovr        int
	Pot        int
	Skills     []string
}

// Contract is the player's current deal in thousands of dollars.
type Contract struct {
	Amount  int64
	ExpYear int
}

type Player struct {
	PID      int64
	Name     string
	Born     int
	TID      int
	Ratings  Ratings
	Draft    *DraftInfo
	Contract Contract
}

func (p Player) Validate() error {
	if p.PID <= 0 {
		return fmt.Errorf("player pid must be positive, got %d", p.PID)
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.TID < TeamUndrafted {
		return fmt.Errorf("invalid player tid: %d", p.TID)
	}
	if p.Ratings.Pot < p.Ratings.Ovr {
		return fmt.Errorf("player potential %d below overall %d", p.Ratings.Pot, p.Ratings.Ovr)
	}
	return nil
}

// Undrafted reports whether the player is still in the draft pool.
func (p Player) Undrafted() bool {
	return p.TID == TeamUndrafted
}

// Desirability is the autoplay ranking score. Potential counts double:
// teams draft on upside.
func (p Player) Desirability() int {
	return p.Ratings.Ovr + 2*p.Ratings.Pot
}

// FuzzedOvr is the overall a scout reports, clamped to the rating range.
func (p Player) FuzzedOvr() int {
	v := int(math.Round(float64(p.Ratings.Ovr) + p.Ratings.Fuzz))
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v
}
