package memory

import (
	"time"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/domain/team"
)

const (
	SeedSeason  = 2026
	SeedUserTID = 14
)

// SeedTeams returns the stock 30-team league, worst franchise first by tid.
func SeedTeams() []team.Team {
	specs := []struct {
		abbrev, region, name string
		cid                  int
	}{
		{"ATL", "Atlanta", "Herons", 0},
		{"BAL", "Baltimore", "Crabs", 0},
		{"BOS", "Boston", "Minutemen", 0},
		{"CHI", "Chicago", "Whirlwinds", 0},
		{"CIN", "Cincinnati", "Riots", 0},
		{"CLE", "Cleveland", "Curses", 0},
		{"DAL", "Dallas", "Snipers", 1},
		{"DEN", "Denver", "High Altitude", 1},
		{"DET", "Detroit", "Muscle", 0},
		{"HOU", "Houston", "Apollos", 1},
		{"KC", "Kansas City", "Sauce", 1},
		{"LA", "Los Angeles", "Breakers", 1},
		{"LV", "Las Vegas", "Blue Chips", 1},
		{"MEM", "Memphis", "Growls", 1},
		{"MIA", "Miami", "Cyclones", 0},
		{"MIL", "Milwaukee", "Lagers", 0},
		{"MIN", "Minneapolis", "Blizzards", 1},
		{"MON", "Montreal", "Mounties", 0},
		{"NYC", "New York", "Bankers", 0},
		{"PHI", "Philadelphia", "Cheesesteaks", 0},
		{"PHO", "Phoenix", "Vultures", 1},
		{"PIT", "Pittsburgh", "Rivers", 0},
		{"POR", "Portland", "Roses", 1},
		{"SA", "San Antonio", "Churros", 1},
		{"SAC", "Sacramento", "Gold Rush", 1},
		{"SD", "San Diego", "Pandas", 1},
		{"SEA", "Seattle", "Symphony", 1},
		{"STL", "St. Louis", "Spirits", 1},
		{"TOR", "Toronto", "Beavers", 0},
		{"WAS", "Washington", "Monuments", 0},
	}

	teams := make([]team.Team, 0, len(specs))
	for tid, sp := range specs {
		teams = append(teams, team.Team{
			TID:    tid,
			CID:    sp.cid,
			Abbrev: sp.abbrev,
			Region: sp.region,
			Name:   sp.name,
		})
	}
	return teams
}

// SeedStandings fabricates one finished season: distinct win percentages
// stepping up with tid, and the top sixteen teams credited with playoff
// appearances.
func SeedStandings(teams []team.Team) []team.Standing {
	const games = 82
	standings := make([]team.Standing, 0, len(teams))
	for i, t := range teams {
		won := 16 + i*17/10 // 16..65 wins, no two teams equal
		if won > games {
			won = games
		}
		lost := games - won

		playoffRounds := 0
		if i >= len(teams)-16 {
			// the better half-plus made the playoffs; deeper runs
			// for better seeds
			playoffRounds = 1 + (i-(len(teams)-16))/4
		}

		standings = append(standings, team.Standing{
			TID:              t.TID,
			CID:              t.CID,
			Abbrev:           t.Abbrev,
			Name:             t.Name,
			Region:           t.Region,
			Won:              won,
			Lost:             lost,
			WinPct:           float64(won) / float64(games),
			PlayoffRoundsWon: playoffRounds,
		})
	}
	return standings
}

// SeedLeagueState starts a session at the draft phase.
func SeedLeagueState() league.State {
	return league.State{
		Season:     SeedSeason,
		Phase:      league.PhaseDraft,
		UserTID:    SeedUserTID,
		LastChange: time.Date(SeedSeason, time.June, 25, 19, 0, 0, 0, time.UTC),
	}
}
