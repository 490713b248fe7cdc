package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
)

// PhaseAdvancer moves the season state machine past a boundary. The
// autoplay sequencer depends on this interface rather than on the season
// module itself, which keeps the dependency pointing one way.
type PhaseAdvancer interface {
	AdvancePhase(ctx context.Context, next league.Phase) error
}

// SeasonService owns the narrow slice of the season state machine this
// service touches: the hop out of the draft phase.
type SeasonService struct {
	leagueRepo league.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewSeasonService(leagueRepo league.Repository, logger *logging.Logger) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{
		leagueRepo: leagueRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// State returns the current season snapshot; pollers watch LastChange.
func (s *SeasonService) State(ctx context.Context) (league.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.State")
	defer span.End()

	state, err := s.leagueRepo.GetState(ctx)
	if err != nil {
		return league.State{}, fmt.Errorf("load league state: %w", err)
	}
	return state, nil
}

func (s *SeasonService) AdvancePhase(ctx context.Context, next league.Phase) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.AdvancePhase")
	defer span.End()

	state, err := s.leagueRepo.GetState(ctx)
	if err != nil {
		return fmt.Errorf("load league state: %w", err)
	}

	prev := state.Phase
	state.Phase = next
	state.LastChange = s.now()
	if err := s.leagueRepo.PutState(ctx, state); err != nil {
		return fmt.Errorf("save league state: %w", err)
	}

	s.logger.InfoContext(ctx, "season phase advanced",
		"season", state.Season,
		"from", prev.String(),
		"to", next.String(),
	)
	return nil
}
