package usecase

import (
	"testing"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
	"github.com/riskibarqy/franchise-gm/internal/platform/random"
)

type draftFixture struct {
	settings   league.Settings
	leagueRepo *memory.LeagueRepository
	teamRepo   *memory.TeamRepository
	playerRepo *memory.PlayerRepository
	orderRepo  *memory.DraftOrderRepository

	classSvc *DraftClassService
	orderSvc *DraftOrderService
	pickSvc  *DraftPickService
	autoSvc  *AutoplayService
}

func newDraftFixture(t *testing.T, mutate func(*league.Settings)) *draftFixture {
	t.Helper()

	settings := league.Settings{
		NumTeams:        30,
		NumRounds:       2,
		DraftType:       league.DraftNBA1994,
		ClassSize:       70,
		RookieBaseYears: 4,
		ValidateTurn:    true,
		Seed:            123,
	}
	if mutate != nil {
		mutate(&settings)
	}
	if err := settings.Validate(); err != nil {
		t.Fatalf("fixture settings invalid: %v", err)
	}

	teams := memory.SeedTeams()
	teamRepo := memory.NewTeamRepository(teams)
	teamRepo.SetStandings(memory.SeedSeason, memory.SeedStandings(teams))

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagueState())
	playerRepo := memory.NewPlayerRepository(nil)
	orderRepo := memory.NewDraftOrderRepository()

	rng := random.NewSeeded(settings.Seed)
	logger := logging.NewNop()

	classSvc := NewDraftClassService(playerRepo, teamRepo, leagueRepo, settings, rng, logger)
	orderSvc := NewDraftOrderService(orderRepo, teamRepo, leagueRepo, settings, rng, logger)
	pickSvc := NewDraftPickService(playerRepo, teamRepo, orderRepo, leagueRepo, settings, logger)
	seasonSvc := NewSeasonService(leagueRepo, logger)
	autoSvc := NewAutoplayService(pickSvc, playerRepo, orderRepo, leagueRepo, seasonSvc, rng, logger)

	return &draftFixture{
		settings:   settings,
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		orderRepo:  orderRepo,
		classSvc:   classSvc,
		orderSvc:   orderSvc,
		pickSvc:    pickSvc,
		autoSvc:    autoSvc,
	}
}
