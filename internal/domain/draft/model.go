package draft

import "github.com/riskibarqy/franchise-gm/internal/domain/league"

// Pick identifies one selection slot in a draft. OriginalTID survives pick
// trades: TID is who drafts, OriginalTID is whose standing produced the slot.
type Pick struct {
	Round       int    `json:"round"`
	Pick        int    `json:"pick"`
	TID         int    `json:"tid"`
	OriginalTID int    `json:"originalTid"`
	Abbrev      string `json:"abbrev"`
	Year        int    `json:"year"`
}

// Matches reports whether two descriptors refer to the same slot owned by
// the same team. Used by turn validation.
func (p Pick) Matches(other Pick) bool {
	return p.Round == other.Round && p.Pick == other.Pick && p.TID == other.TID
}

// LotteryResult is one team's row in a lottery run: its weight, record, and
// the pick it ended up with.
type LotteryResult struct {
	TID     int    `json:"tid"`
	Abbrev  string `json:"abbrev"`
	Chances int    `json:"chances"`
	Pick    int    `json:"pick"`
	Won     int    `json:"won"`
	Lost    int    `json:"lost"`
	Tied    int    `json:"tied"`
}

// rookieSalaryScale maps overall pick index to first-contract salary in
// thousands. Values past the table reuse the final entry.
var rookieSalaryScale = []int64{
	5000, 4500, 4000, 3500, 3000, 2750, 2500, 2250, 2000, 1900,
	1800, 1700, 1600, 1500, 1400, 1300, 1200, 1100, 1000, 1000,
	1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500,
}

// RookieSalary returns the scale amount for an overall pick index
// (0 = first overall).
func RookieSalary(overallIndex int) int64 {
	if overallIndex < 0 {
		overallIndex = 0
	}
	if overallIndex >= len(rookieSalaryScale) {
		overallIndex = len(rookieSalaryScale) - 1
	}
	return rookieSalaryScale[overallIndex]
}

// RookieYears returns the contract length for a pick: earlier rounds sign
// longer deals, never shorter than one year.
func RookieYears(baseYears, round int) int {
	years := baseYears - round
	if years < 1 {
		years = 1
	}
	return years
}

// Lottery weight tables, best odds first. The 1994 model draws the top
// three picks from 14 weights summing to 1000; the 2019 model flattens the
// top odds and draws four picks.
var (
	chancesNBA1994 = []int{250, 199, 156, 119, 88, 63, 43, 28, 17, 11, 8, 7, 6, 5}
	chancesNBA2019 = []int{140, 140, 140, 125, 105, 90, 75, 60, 45, 30, 20, 15, 10, 5}
)

// LotteryPicks returns how many top slots the given draft type assigns by
// weighted draw. Zero means no lottery at all.
func LotteryPicks(t league.DraftType) int {
	switch t {
	case league.DraftNBA1994:
		return 3
	case league.DraftNBA2019:
		return 4
	default:
		return 0
	}
}

// LotteryChances returns the weight vector for n lottery-eligible teams.
// If n exceeds the table, trailing teams reuse the smallest weight; if n is
// smaller, the table is truncated.
func LotteryChances(t league.DraftType, n int) []int {
	var table []int
	switch t {
	case league.DraftNBA2019:
		table = chancesNBA2019
	default:
		table = chancesNBA1994
	}

	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		if i < len(table) {
			out[i] = table[i]
			continue
		}
		out[i] = table[len(table)-1]
	}
	return out
}
