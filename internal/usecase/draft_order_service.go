package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/domain/team"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
	"github.com/riskibarqy/franchise-gm/internal/platform/random"
)

const simulationWorkers = 8

// DraftOrderService computes and persists the draft order: the weighted
// lottery for the top slots, worst-to-best for the rest.
type DraftOrderService struct {
	orderRepo  draft.OrderRepository
	teamRepo   team.Repository
	leagueRepo league.Repository
	settings   league.Settings
	rng        random.Source
	logger     *logging.Logger
}

func NewDraftOrderService(
	orderRepo draft.OrderRepository,
	teamRepo team.Repository,
	leagueRepo league.Repository,
	settings league.Settings,
	rng random.Source,
	logger *logging.Logger,
) *DraftOrderService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftOrderService{
		orderRepo:  orderRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		settings:   settings,
		rng:        rng,
		logger:     logger,
	}
}

// GetOrder returns the remaining ordered pick list.
func (s *DraftOrderService) GetOrder(ctx context.Context) ([]draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftOrderService.GetOrder")
	defer span.End()

	order, err := s.orderRepo.GetOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("get draft order: %w", err)
	}
	return order, nil
}

// SetOrder overwrites the stored order after checking sequence invariants.
// Used for manual corrections and fantasy-style custom orders.
func (s *DraftOrderService) SetOrder(ctx context.Context, order []draft.Pick) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftOrderService.SetOrder")
	defer span.End()

	if err := draft.ValidateOrder(order); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	if err := s.orderRepo.SetOrder(ctx, order); err != nil {
		return fmt.Errorf("set draft order: %w", err)
	}
	return nil
}

// GenerateOrder computes the full order for every round and persists it,
// replacing any previous order for the season.
func (s *DraftOrderService) GenerateOrder(ctx context.Context) ([]draft.Pick, error) {
	order, _, err := s.generate(ctx)
	return order, err
}

// RunLottery is the interactive entry point: same computation as
// GenerateOrder, but it also reports each lottery team's chances and the
// pick it landed.
func (s *DraftOrderService) RunLottery(ctx context.Context) ([]draft.LotteryResult, []draft.Pick, error) {
	order, results, err := s.generate(ctx)
	return results, order, err
}

func (s *DraftOrderService) generate(ctx context.Context) ([]draft.Pick, []draft.LotteryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftOrderService.GenerateOrder")
	defer span.End()

	state, err := s.leagueRepo.GetState(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load league state: %w", err)
	}

	standings, err := s.teamRepo.Standings(ctx, state.Season)
	if err != nil {
		return nil, nil, fmt.Errorf("load standings for season %d: %w", state.Season, err)
	}
	if len(standings) != s.settings.NumTeams {
		return nil, nil, fmt.Errorf("%w: standings cover %d teams, league has %d",
			ErrInvariantViolation, len(standings), s.settings.NumTeams)
	}

	var (
		order   []draft.Pick
		results []draft.LotteryResult
	)
	switch s.settings.DraftType {
	case league.DraftRandom:
		order = s.randomOrder(standings, state.Season)
	default:
		order, results, err = s.standingsOrder(standings, state.Season)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := draft.ValidateFullOrder(order, s.settings.NumTeams, s.settings.NumRounds); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	if err := s.orderRepo.SetOrder(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("persist draft order: %w", err)
	}

	s.logger.InfoContext(ctx, "draft order generated",
		"season", state.Season,
		"type", string(s.settings.DraftType),
		"picks", len(order),
	)
	return order, results, nil
}

// standingsOrder builds round 1 from the two-tier sort (lottery on top when
// the draft type has one) and every later round from win percentage alone.
func (s *DraftOrderService) standingsOrder(standings []team.Standing, season int) ([]draft.Pick, []draft.LotteryResult, error) {
	sorted := s.lotterySort(standings, season)
	order := make([]draft.Pick, 0, s.settings.NumTeams*s.settings.NumRounds)

	k := draft.LotteryPicks(s.settings.DraftType)
	var results []draft.LotteryResult
	var winners []int

	if k > 0 {
		numLottery := s.lotterySize(sorted, k)
		chances := draft.LotteryChances(s.settings.DraftType, numLottery)

		var err error
		winners, err = draft.DrawLottery(s.rng, chances, k)
		if err != nil {
			return nil, nil, fmt.Errorf("lottery draw: %w", err)
		}

		results = make([]draft.LotteryResult, numLottery)
		for i := 0; i < numLottery; i++ {
			results[i] = draft.LotteryResult{
				TID:     sorted[i].TID,
				Abbrev:  sorted[i].Abbrev,
				Chances: chances[i],
				Won:     sorted[i].Won,
				Lost:    sorted[i].Lost,
				Tied:    sorted[i].Tied,
			}
		}

		for slot, idx := range winners {
			order = append(order, s.pickFor(sorted[idx], 1, slot+1, season))
			results[idx].Pick = slot + 1
		}
	}

	// The rest of round 1 follows the two-tier sort, skipping lottery
	// winners. Every team ends up with exactly one round-1 pick.
	pickNum := k + 1
	won := make(map[int]bool, len(winners))
	for _, idx := range winners {
		won[idx] = true
	}
	for i, st := range sorted {
		if won[i] {
			continue
		}
		order = append(order, s.pickFor(st, 1, pickNum, season))
		if results != nil && i < len(results) {
			results[i].Pick = pickNum
		}
		pickNum++
	}

	// Rounds 2+ sort by win percentage only; playoff results no longer
	// matter.
	byWinPct := append([]team.Standing(nil), sorted...)
	sort.SliceStable(byWinPct, func(i, j int) bool {
		return byWinPct[i].WinPct < byWinPct[j].WinPct
	})
	for round := 2; round <= s.settings.NumRounds; round++ {
		for i, st := range byWinPct {
			order = append(order, s.pickFor(st, round, i+1, season))
		}
	}

	return order, results, nil
}

// randomOrder shuffles every round independently, ignoring standings.
func (s *DraftOrderService) randomOrder(standings []team.Standing, season int) []draft.Pick {
	order := make([]draft.Pick, 0, len(standings)*s.settings.NumRounds)
	shuffled := append([]team.Standing(nil), standings...)
	for round := 1; round <= s.settings.NumRounds; round++ {
		s.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for i, st := range shuffled {
			order = append(order, s.pickFor(st, round, i+1, season))
		}
	}
	return order
}

// lotterySort orders teams worst first: fewest playoff rounds won, then
// lowest win percentage. Ties break on a per-season seeded shuffle so a
// projected order computed before the lottery matches the one used when it
// runs.
func (s *DraftOrderService) lotterySort(standings []team.Standing, season int) []team.Standing {
	sorted := append([]team.Standing(nil), standings...)

	tieRNG := random.NewSeeded(s.settings.Seed ^ uint64(season)*0x9e3779b9)
	tieRNG.Shuffle(len(sorted), func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PlayoffRoundsWon != sorted[j].PlayoffRoundsWon {
			return sorted[i].PlayoffRoundsWon < sorted[j].PlayoffRoundsWon
		}
		return sorted[i].WinPct < sorted[j].WinPct
	})
	return sorted
}

// lotterySize counts the non-playoff teams; even when fewer than k exist,
// the draw still needs k entrants.
func (s *DraftOrderService) lotterySize(sorted []team.Standing, k int) int {
	n := 0
	for _, st := range sorted {
		if st.PlayoffRoundsWon == 0 {
			n++
		}
	}
	if n < k {
		n = k
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return n
}

func (s *DraftOrderService) pickFor(st team.Standing, round, pick, season int) draft.Pick {
	return draft.Pick{
		Round:       round,
		Pick:        pick,
		TID:         st.TID,
		OriginalTID: st.TID,
		Abbrev:      st.Abbrev,
		Year:        season,
	}
}

// LotteryProbabilities returns the analytic pick-probability table for the
// current standings, rows in projected lottery order. This is the table the
// UI shows before the lottery runs; it must agree with the draw itself.
func (s *DraftOrderService) LotteryProbabilities(ctx context.Context) ([]draft.LotteryResult, [][]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftOrderService.LotteryProbabilities")
	defer span.End()

	results, chances, k, err := s.lotteryField(ctx)
	if err != nil {
		return nil, nil, err
	}
	if k == 0 {
		return results, nil, nil
	}
	return results, draft.Probabilities(chances, k), nil
}

// SimulateLottery runs the real draw mechanism many times and reports the
// empirical pick frequencies, the cross-check for the analytic table. Each
// chunk draws from its own seeded source, so results are stable for a
// given trial count.
func (s *DraftOrderService) SimulateLottery(ctx context.Context, trials int) ([][]float64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftOrderService.SimulateLottery")
	defer span.End()

	if trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive", ErrInvalidInput)
	}

	_, chances, k, err := s.lotteryField(ctx)
	if err != nil {
		return nil, err
	}
	if k == 0 {
		return nil, fmt.Errorf("%w: draft type %s has no lottery", ErrInvalidInput, s.settings.DraftType)
	}

	counts := make([][]int, len(chances))
	for i := range counts {
		counts[i] = make([]int, k)
	}

	var mu sync.Mutex
	workers := pool.New().WithErrors().WithMaxGoroutines(simulationWorkers)
	chunk := (trials + simulationWorkers - 1) / simulationWorkers
	for w := 0; w < simulationWorkers; w++ {
		start := w * chunk
		n := chunk
		if start+n > trials {
			n = trials - start
		}
		if n <= 0 {
			break
		}
		seed := s.settings.Seed + uint64(w)*0x51ed2701
		workers.Go(func() error {
			src := random.NewSeeded(seed)
			local := make([][]int, len(chances))
			for i := range local {
				local[i] = make([]int, k)
			}
			for t := 0; t < n; t++ {
				winners, err := draft.DrawLottery(src, chances, k)
				if err != nil {
					return err
				}
				for slot, idx := range winners {
					local[idx][slot]++
				}
			}
			mu.Lock()
			for i := range local {
				for slot := range local[i] {
					counts[i][slot] += local[i][slot]
				}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return nil, fmt.Errorf("simulate lottery: %w", err)
	}

	freqs := make([][]float64, len(chances))
	for i := range counts {
		freqs[i] = make([]float64, k)
		for slot := range counts[i] {
			freqs[i][slot] = float64(counts[i][slot]) / float64(trials)
		}
	}
	return freqs, nil
}

// lotteryField resolves the current lottery entrants and their weights
// without drawing.
func (s *DraftOrderService) lotteryField(ctx context.Context) ([]draft.LotteryResult, []int, int, error) {
	state, err := s.leagueRepo.GetState(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("load league state: %w", err)
	}
	standings, err := s.teamRepo.Standings(ctx, state.Season)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("load standings for season %d: %w", state.Season, err)
	}

	k := draft.LotteryPicks(s.settings.DraftType)
	if k == 0 {
		return nil, nil, 0, nil
	}

	sorted := s.lotterySort(standings, state.Season)
	numLottery := s.lotterySize(sorted, k)
	chances := draft.LotteryChances(s.settings.DraftType, numLottery)

	results := make([]draft.LotteryResult, numLottery)
	for i := 0; i < numLottery; i++ {
		results[i] = draft.LotteryResult{
			TID:     sorted[i].TID,
			Abbrev:  sorted[i].Abbrev,
			Chances: chances[i],
			Won:     sorted[i].Won,
			Lost:    sorted[i].Lost,
			Tied:    sorted[i].Tied,
		}
	}
	return results, chances, k, nil
}
