package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/domain/player"
	"github.com/riskibarqy/franchise-gm/internal/domain/team"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
)

// DraftPickService performs single selections: it reassigns the prospect,
// stamps the draft snapshot, and signs the rookie-scale contract. It never
// consumes the order entry itself; the caller owns that, which keeps the
// operation usable from both the sequencer and a manual UI flow.
type DraftPickService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	orderRepo  draft.OrderRepository
	leagueRepo league.Repository
	settings   league.Settings
	logger     *logging.Logger
}

func NewDraftPickService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	orderRepo draft.OrderRepository,
	leagueRepo league.Repository,
	settings league.Settings,
	logger *logging.Logger,
) *DraftPickService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftPickService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		orderRepo:  orderRepo,
		leagueRepo: leagueRepo,
		settings:   settings,
		logger:     logger,
	}
}

// SelectPlayer drafts the prospect with the given pick. Turn validation is
// a league setting: fantasy drafts run custom orders and switch it off.
func (s *DraftPickService) SelectPlayer(ctx context.Context, pick draft.Pick, pid int64) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftPickService.SelectPlayer")
	defer span.End()

	if s.settings.ValidateTurn {
		if err := s.checkTurn(ctx, pick); err != nil {
			return 0, err
		}
	}

	p, ok, err := s.playerRepo.Get(ctx, pid)
	if err != nil {
		return 0, fmt.Errorf("get player %d: %w", pid, err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: player %d", ErrNotFound, pid)
	}
	if !p.Undrafted() {
		return 0, fmt.Errorf("%w: player %d already belongs to team %d", ErrInvariantViolation, pid, p.TID)
	}

	t, ok, err := s.teamRepo.GetTeam(ctx, pick.TID)
	if err != nil {
		return 0, fmt.Errorf("get team %d: %w", pick.TID, err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: team %d", ErrNotFound, pick.TID)
	}

	state, err := s.leagueRepo.GetState(ctx)
	if err != nil {
		return 0, fmt.Errorf("load league state: %w", err)
	}

	p.TID = pick.TID
	p.Draft = &player.DraftInfo{
		Round:      pick.Round,
		Pick:       pick.Pick,
		TID:        pick.TID,
		Year:       state.Season,
		Abbrev:     t.Abbrev,
		TeamName:   t.Name,
		TeamRegion: t.Region,
		Ovr:        p.Ratings.Ovr,
		Pot:        p.Ratings.Pot,
		Skills:     append([]string(nil), p.Ratings.Skills...),
	}

	overallIndex := (pick.Pick - 1) + s.settings.NumTeams*(pick.Round-1)
	years := draft.RookieYears(s.settings.RookieBaseYears, pick.Round)
	p.Contract = player.Contract{
		Amount:  draft.RookieSalary(overallIndex),
		ExpYear: state.Season + years,
	}

	if err := s.playerRepo.Put(ctx, p); err != nil {
		return 0, fmt.Errorf("save drafted player %d: %w", pid, err)
	}

	s.logger.InfoContext(ctx, "player drafted",
		"pid", pid,
		"tid", pick.TID,
		"round", pick.Round,
		"pick", pick.Pick,
		"salary", p.Contract.Amount,
	)
	return pid, nil
}

// DraftedPlayer loads a player after selection, draft stamp and contract
// included.
func (s *DraftPickService) DraftedPlayer(ctx context.Context, pid int64) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftPickService.DraftedPlayer")
	defer span.End()

	p, ok, err := s.playerRepo.Get(ctx, pid)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("get player %d: %w", pid, err)
	}
	return p, ok, nil
}

func (s *DraftPickService) checkTurn(ctx context.Context, pick draft.Pick) error {
	order, err := s.orderRepo.GetOrder(ctx)
	if err != nil {
		return fmt.Errorf("get draft order: %w", err)
	}
	if len(order) == 0 {
		return fmt.Errorf("%w: no picks remain in the draft order", ErrInvariantViolation)
	}
	if !pick.Matches(order[0]) {
		return fmt.Errorf("%w: next pick is round %d pick %d for team %d",
			ErrOutOfTurn, order[0].Round, order[0].Pick, order[0].TID)
	}
	return nil
}
