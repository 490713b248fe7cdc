package draft

import (
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/franchise-gm/internal/platform/random"
)

// maxLotteryDraws bounds the reject-and-redraw loop. With a sane weight
// table the draw terminates in a handful of iterations; hitting this bound
// means the table itself is broken.
const maxLotteryDraws = 100000

// DrawLottery picks k distinct winners from the weighted chance table,
// best odds first. The returned slice holds indexes into chances, in the
// order drawn (draw order = pick order). A draw that lands on a team that
// already won a slot is rejected and retried, which gives the classic
// without-replacement re-normalization: P(team i wins pick 1) is
// chances[i]/total, and later picks condition on the earlier winners.
func DrawLottery(src random.Source, chances []int, k int) ([]int, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(chances) < k {
		return nil, errors.Wrapf(ErrDegenerateChances, "%d teams cannot fill %d lottery slots", len(chances), k)
	}

	cumsum := make([]int, len(chances))
	total := 0
	for i, c := range chances {
		if c < 0 {
			return nil, errors.Wrapf(ErrDegenerateChances, "negative weight at index %d", i)
		}
		total += c
		cumsum[i] = total
	}
	if total <= 0 {
		return nil, errors.Wrap(ErrDegenerateChances, "weights sum to zero")
	}

	winners := make([]int, 0, k)
	taken := make(map[int]bool, k)
	for draws := 0; len(winners) < k; draws++ {
		if draws >= maxLotteryDraws {
			return nil, errors.Wrap(ErrDegenerateChances, "lottery draw did not terminate")
		}
		draw := src.RandInt(1, total)
		i := 0
		for ; i < len(cumsum); i++ {
			if cumsum[i] >= draw {
				break
			}
		}
		if taken[i] {
			continue
		}
		taken[i] = true
		winners = append(winners, i)
	}
	return winners, nil
}

// Probabilities computes, for every lottery team, the chance of landing each
// pick. probs[i][j] is team i's probability of getting pick j+1. For the
// top k picks this is the nested conditional renormalization over the
// remaining weights; team i's remaining rows come from how many
// lower-seeded teams jump it. Must agree exactly with DrawLottery; the
// simulation test holds the two together.
func Probabilities(chances []int, k int) [][]float64 {
	n := len(chances)
	probs := make([][]float64, n)
	for i := range probs {
		probs[i] = make([]float64, n)
	}
	if n == 0 {
		return probs
	}

	total := 0.0
	for _, c := range chances {
		total += float64(c)
	}
	if total <= 0 {
		return probs
	}

	w := make([]float64, n)
	for i, c := range chances {
		w[i] = float64(c)
	}

	// topCombos accumulates, per ordered-set of lottery winners, the
	// probability of exactly that winner set (order collapsed).
	type comboKey [4]int
	topCombos := make(map[comboKey]float64)
	keyOf := func(inds ...int) comboKey {
		var key comboKey
		for i := range key {
			key[i] = -1
		}
		copy(key[:], inds)
		// insertion sort, the sets are tiny
		for i := 1; i < len(inds); i++ {
			for j := i; j > 0 && key[j] < key[j-1]; j-- {
				key[j], key[j-1] = key[j-1], key[j]
			}
		}
		return key
	}

	for i := 0; i < n; i++ {
		probs[i][0] = w[i] / total

		for kk := 0; kk < n; kk++ {
			if kk == i {
				continue
			}
			probs[i][1] += (w[kk] / total) * w[i] / (total - w[kk])

			for l := 0; l < n; l++ {
				if l == i || l == kk {
					continue
				}
				p3 := (w[kk] / total) * (w[l] / (total - w[kk])) * w[i] / (total - w[kk] - w[l])
				probs[i][2] += p3

				if k < 4 {
					topCombos[keyOf(i, kk, l)] += p3
					continue
				}

				for m := 0; m < n; m++ {
					if m == i || m == kk || m == l {
						continue
					}
					p4 := (w[kk] / total) * (w[l] / (total - w[kk])) *
						(w[m] / (total - w[kk] - w[l])) *
						w[i] / (total - w[kk] - w[l] - w[m])
					probs[i][3] += p4
					topCombos[keyOf(i, kk, l, m)] += p4
				}
			}
		}
	}

	// After the lottery slots, team i picks at its seed position plus the
	// number of lower seeds that jumped into the top k.
	for i := 0; i < n; i++ {
		var skipped [5]float64
		for key, prob := range topCombos {
			mine := false
			jumps := 0
			for _, ind := range key {
				if ind < 0 {
					continue
				}
				if ind == i {
					mine = true
					break
				}
				if ind > i {
					jumps++
				}
			}
			if !mine {
				skipped[jumps] += prob
			}
		}

		for j := 0; j <= k; j++ {
			slot := i + j
			if slot >= k && slot < n {
				probs[i][slot] = skipped[j]
			}
		}
	}

	return probs
}
