package draft

import "github.com/cockroachdb/errors"

// ValidateOrder checks the invariants any stored order remainder must hold:
// strict round/pick sequence and no duplicate slots. A remainder may start
// mid-round (picks already consumed) but never runs backwards.
func ValidateOrder(order []Pick) error {
	for i := 1; i < len(order); i++ {
		prev, cur := order[i-1], order[i]
		if cur.Round < prev.Round {
			return errors.Wrapf(ErrOrderNotSorted, "round %d follows round %d", cur.Round, prev.Round)
		}
		if cur.Round == prev.Round {
			if cur.Pick == prev.Pick {
				return errors.Wrapf(ErrDuplicatePick, "round %d pick %d", cur.Round, cur.Pick)
			}
			if cur.Pick < prev.Pick {
				return errors.Wrapf(ErrOrderNotSorted, "round %d pick %d follows pick %d", cur.Round, cur.Pick, prev.Pick)
			}
		}
	}
	return nil
}

// ValidateFullOrder checks a freshly generated order: sequence invariants
// plus exact size, a contiguous 1..numTeams pick range per round, and each
// team owning exactly numRounds picks.
func ValidateFullOrder(order []Pick, numTeams, numRounds int) error {
	if err := ValidateOrder(order); err != nil {
		return err
	}
	if len(order) != numTeams*numRounds {
		return errors.Wrapf(ErrOrderSize, "got %d picks, want %d", len(order), numTeams*numRounds)
	}

	perTeam := make(map[int]int, numTeams)
	i := 0
	for round := 1; round <= numRounds; round++ {
		for pick := 1; pick <= numTeams; pick++ {
			p := order[i]
			if p.Round != round || p.Pick != pick {
				return errors.Wrapf(ErrOrderNotSorted, "slot %d is round %d pick %d, want round %d pick %d",
					i, p.Round, p.Pick, round, pick)
			}
			perTeam[p.TID]++
			i++
		}
	}
	for tid, n := range perTeam {
		if n != numRounds {
			return errors.Wrapf(ErrTeamPickCount, "team %d holds %d picks, want %d", tid, n, numRounds)
		}
	}
	return nil
}
