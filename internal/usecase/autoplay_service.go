package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/domain/player"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
	"github.com/riskibarqy/franchise-gm/internal/platform/random"
)

// playerSelector is the slice of DraftPickService the sequencer needs.
type playerSelector interface {
	SelectPlayer(ctx context.Context, pick draft.Pick, pid int64) (int64, error)
}

// AutoplayService drafts on behalf of every non-user team until the user's
// turn comes up or the order runs out. Strictly sequential: every pick
// mutates the candidate pool and the order, so iterations cannot overlap.
type AutoplayService struct {
	picker     playerSelector
	playerRepo player.Repository
	orderRepo  draft.OrderRepository
	leagueRepo league.Repository
	advancer   PhaseAdvancer
	rng        random.Source
	logger     *logging.Logger
	now        func() time.Time

	// one autoplay run at a time; a second call waits for the first
	mu sync.Mutex
}

func NewAutoplayService(
	picker playerSelector,
	playerRepo player.Repository,
	orderRepo draft.OrderRepository,
	leagueRepo league.Repository,
	advancer PhaseAdvancer,
	rng random.Source,
	logger *logging.Logger,
) *AutoplayService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AutoplayService{
		picker:     picker,
		playerRepo: playerRepo,
		orderRepo:  orderRepo,
		leagueRepo: leagueRepo,
		advancer:   advancer,
		rng:        rng,
		logger:     logger,
		now:        time.Now,
	}
}

// RunUntilUserOrEnd drafts pick by pick and returns the drafted player ids
// in selection order. The order store is rewritten after every consumed
// pick, so an interrupted run leaves a consistent checkpoint. When the
// order is exhausted, the season moves past the draft phase.
func (s *AutoplayService) RunUntilUserOrEnd(ctx context.Context) ([]int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AutoplayService.RunUntilUserOrEnd")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.leagueRepo.GetState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load league state: %w", err)
	}

	prospects, err := s.playerRepo.ListByTeam(ctx, player.TeamUndrafted)
	if err != nil {
		return nil, fmt.Errorf("list undrafted players: %w", err)
	}
	sort.SliceStable(prospects, func(i, j int) bool {
		if a, b := prospects[i].Desirability(), prospects[j].Desirability(); a != b {
			return a > b
		}
		return prospects[i].PID < prospects[j].PID
	})

	order, err := s.orderRepo.GetOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("get draft order: %w", err)
	}

	drafted := make([]int64, 0, len(order))
	for len(order) > 0 {
		head := order[0]
		if head.TID == state.UserTID {
			// Leave the head unconsumed so the UI can present it.
			break
		}
		if len(prospects) == 0 {
			return drafted, fmt.Errorf("%w: prospect pool empty with %d picks remaining",
				ErrInvariantViolation, len(order))
		}

		idx := s.scoutedIndex(len(prospects))
		pid := prospects[idx].PID

		if _, err := s.picker.SelectPlayer(ctx, head, pid); err != nil {
			// A failed pick stays at the head of the order: never
			// silently discard a selection slot.
			return drafted, fmt.Errorf("autoplay pick round %d pick %d: %w", head.Round, head.Pick, err)
		}

		order = order[1:]
		if err := s.orderRepo.SetOrder(ctx, order); err != nil {
			return drafted, fmt.Errorf("persist draft order: %w", err)
		}

		prospects = append(prospects[:idx], prospects[idx+1:]...)
		drafted = append(drafted, pid)
	}

	if len(order) == 0 {
		if err := s.advancer.AdvancePhase(ctx, league.PhaseAfterDraft); err != nil {
			return drafted, fmt.Errorf("advance phase after draft: %w", err)
		}
		s.logger.InfoContext(ctx, "draft complete", "season", state.Season, "auto_picks", len(drafted))
		return drafted, nil
	}

	// Stopped at the user's turn: bump the change marker so pollers see
	// fresh state.
	state, err = s.leagueRepo.GetState(ctx)
	if err != nil {
		return drafted, fmt.Errorf("reload league state: %w", err)
	}
	state.LastChange = s.now()
	if err := s.leagueRepo.PutState(ctx, state); err != nil {
		return drafted, fmt.Errorf("save league state: %w", err)
	}

	s.logger.InfoContext(ctx, "autoplay stopped at user turn",
		"season", state.Season,
		"auto_picks", len(drafted),
		"next_round", order[0].Round,
		"next_pick", order[0].Pick,
	)
	return drafted, nil
}

// scoutedIndex models imperfect AI scouting: index 0 (best available) is
// most likely, each alternate progressively less so.
func (s *AutoplayService) scoutedIndex(poolSize int) int {
	idx := int(math.Floor(math.Abs(s.rng.Gauss(0, 2))))
	if idx >= poolSize {
		idx = poolSize - 1
	}
	return idx
}
