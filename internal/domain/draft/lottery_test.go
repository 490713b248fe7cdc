package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/platform/random"
)

func TestDrawLotteryDistinctWinners(t *testing.T) {
	src := random.NewSeeded(1)
	chances := LotteryChances(league.DraftNBA1994, 14)

	for trial := 0; trial < 1000; trial++ {
		winners, err := DrawLottery(src, chances, 3)
		require.NoError(t, err)
		require.Len(t, winners, 3)
		seen := map[int]bool{}
		for _, w := range winners {
			require.False(t, seen[w], "team %d won twice", w)
			require.GreaterOrEqual(t, w, 0)
			require.Less(t, w, len(chances))
			seen[w] = true
		}
	}
}

func TestDrawLotteryDegenerateTable(t *testing.T) {
	src := random.NewSeeded(1)

	_, err := DrawLottery(src, []int{0, 0, 0, 0}, 3)
	require.ErrorIs(t, err, ErrDegenerateChances)

	_, err = DrawLottery(src, []int{10, -1, 10, 10}, 3)
	require.ErrorIs(t, err, ErrDegenerateChances)

	_, err = DrawLottery(src, []int{10, 10}, 3)
	require.ErrorIs(t, err, ErrDegenerateChances)
}

func TestProbabilitiesRowsAndColumnsSumToOne(t *testing.T) {
	for _, k := range []int{3, 4} {
		draftType := league.DraftNBA1994
		if k == 4 {
			draftType = league.DraftNBA2019
		}
		chances := LotteryChances(draftType, 14)
		probs := Probabilities(chances, k)

		for i, row := range probs {
			sum := 0.0
			for _, p := range row {
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "k=%d row %d", k, i)
		}
		for j := 0; j < len(chances); j++ {
			sum := 0.0
			for i := range probs {
				sum += probs[i][j]
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "k=%d column %d", k, j)
		}
	}
}

func TestProbabilitiesFirstPickIsMarginal(t *testing.T) {
	chances := LotteryChances(league.DraftNBA1994, 14)
	total := 0
	for _, c := range chances {
		total += c
	}
	probs := Probabilities(chances, 3)
	for i, c := range chances {
		assert.InDelta(t, float64(c)/float64(total), probs[i][0], 1e-12, "team %d", i)
	}
}

func TestProbabilitiesSecondPickConditionalFormula(t *testing.T) {
	chances := []int{5, 3, 2}
	probs := Probabilities(chances, 3)

	// P(team 0 gets pick 2) = sum over j != 0 of P(j first) * w0/(total-wj).
	want := (3.0/10.0)*(5.0/7.0) + (2.0/10.0)*(5.0/8.0)
	assert.InDelta(t, want, probs[0][1], 1e-12)
}

// The draw mechanism and the probability table are maintained separately;
// this holds them together empirically.
func TestDrawMatchesProbabilityTable(t *testing.T) {
	const trials = 200000
	chances := LotteryChances(league.DraftNBA1994, 14)
	probs := Probabilities(chances, 3)
	src := random.NewSeeded(99)

	counts := make([][]int, len(chances))
	for i := range counts {
		counts[i] = make([]int, 3)
	}
	for trial := 0; trial < trials; trial++ {
		winners, err := DrawLottery(src, chances, 3)
		require.NoError(t, err)
		for slot, team := range winners {
			counts[team][slot]++
		}
	}

	for i := range chances {
		for slot := 0; slot < 3; slot++ {
			got := float64(counts[i][slot]) / trials
			assert.InDelta(t, probs[i][slot], got, 0.006,
				"team %d slot %d: table %f empirical %f", i, slot, probs[i][slot], got)
		}
	}
}

func TestLotteryChancesPadding(t *testing.T) {
	chances := LotteryChances(league.DraftNBA1994, 16)
	require.Len(t, chances, 16)
	assert.Equal(t, 250, chances[0])
	assert.Equal(t, 5, chances[14])
	assert.Equal(t, 5, chances[15])

	short := LotteryChances(league.DraftNBA1994, 5)
	require.Len(t, short, 5)
	assert.Equal(t, []int{250, 199, 156, 119, 88}, short)
}
