package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/domain/player"
	"github.com/riskibarqy/franchise-gm/internal/domain/team"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
	"github.com/riskibarqy/franchise-gm/internal/platform/random"
)

const (
	baseRatingMin = 8
	baseRatingMax = 33
	potentialMean = 50
	potentialStd  = 20
	potentialCap  = 90
	rookieAge     = 19
	maxAgingYears = 3
)

// generation archetypes; bigs are twice as common, the empty profile is the
// generic roll.
var classProfiles = []player.Profile{
	player.ProfilePoint,
	player.ProfileWing,
	player.ProfileBig,
	player.ProfileBig,
	player.ProfileBase,
}

// DraftClassService produces the annual pool of undrafted prospects.
type DraftClassService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	leagueRepo league.Repository
	settings   league.Settings
	rng        random.Source
	logger     *logging.Logger
}

func NewDraftClassService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	leagueRepo league.Repository,
	settings league.Settings,
	rng random.Source,
	logger *logging.Logger,
) *DraftClassService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftClassService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		leagueRepo: leagueRepo,
		settings:   settings,
		rng:        rng,
		logger:     logger,
	}
}

// GenerateClass creates the full prospect pool for the current season and
// persists it as one batch. Returns how many prospects were written.
func (s *DraftClassService) GenerateClass(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftClassService.GenerateClass")
	defer span.End()

	state, err := s.leagueRepo.GetState(ctx)
	if err != nil {
		return 0, fmt.Errorf("load league state: %w", err)
	}

	scoutingRank, err := s.teamRepo.ScoutingRank(ctx, state.UserTID)
	if err != nil {
		return 0, fmt.Errorf("scouting rank for team %d: %w", state.UserTID, err)
	}

	firstPID, err := s.playerRepo.NextPID(ctx, s.settings.ClassSize)
	if err != nil {
		return 0, fmt.Errorf("reserve player ids: %w", err)
	}

	batch := make([]player.Player, 0, s.settings.ClassSize)
	for i := 0; i < s.settings.ClassSize; i++ {
		base := s.rng.RandInt(baseRatingMin, baseRatingMax)
		pot := int(s.rng.Gauss(potentialMean, potentialStd))
		if pot < base {
			pot = base
		}
		if pot > potentialCap {
			pot = potentialCap
		}

		profile := classProfiles[s.rng.RandInt(0, len(classProfiles)-1)]
		p := s.generateProspect(firstPID+int64(i), state.Season, profile, base, pot, scoutingRank)

		// Prospects enter the pool already carrying a few years of
		// pre-draft development.
		agingYears := s.rng.RandInt(0, maxAgingYears)
		s.develop(&p, agingYears)

		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("generated prospect invalid: %w", err)
		}
		batch = append(batch, p)
	}

	if err := s.playerRepo.SaveAll(ctx, batch); err != nil {
		return 0, fmt.Errorf("save draft class: %w", err)
	}

	s.logger.InfoContext(ctx, "draft class generated",
		"season", state.Season,
		"size", len(batch),
		"scouting_rank", scoutingRank,
	)
	return len(batch), nil
}

// ListProspects returns the undrafted pool sorted the way a scout's board
// reads: fuzzed overall plus weighted potential, best first.
func (s *DraftClassService) ListProspects(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftClassService.ListProspects")
	defer span.End()

	prospects, err := s.playerRepo.ListByTeam(ctx, player.TeamUndrafted)
	if err != nil {
		return nil, fmt.Errorf("list undrafted players: %w", err)
	}

	sort.SliceStable(prospects, func(i, j int) bool {
		a := prospects[i].FuzzedOvr() + 2*prospects[i].Ratings.Pot
		b := prospects[j].FuzzedOvr() + 2*prospects[j].Ratings.Pot
		if a != b {
			return a > b
		}
		return prospects[i].PID < prospects[j].PID
	})
	return prospects, nil
}

func (s *DraftClassService) generateProspect(pid int64, season int, profile player.Profile, base, pot, scoutingRank int) player.Player {
	name := prospectFirstNames[s.rng.RandInt(0, len(prospectFirstNames)-1)] +
		" " + prospectLastNames[s.rng.RandInt(0, len(prospectLastNames)-1)]

	return player.Player{
		PID:  pid,
		Name: name,
		Born: season - rookieAge,
		TID:  player.TeamUndrafted,
		Ratings: player.Ratings{
			Season:  season,
			Ovr:     base,
			Pot:     pot,
			Skills:  skillsFor(profile, base),
			Fuzz:    s.rng.Gauss(0, fuzzSigma(scoutingRank, s.settings.NumTeams)),
			Profile: profile,
		},
	}
}

// develop applies years of growth: overall climbs toward potential with a
// noisy step per year, never past it.
func (s *DraftClassService) develop(p *player.Player, years int) {
	for y := 0; y < years; y++ {
		headroom := p.Ratings.Pot - p.Ratings.Ovr
		if headroom <= 0 {
			break
		}
		step := int(random.TruncGauss(s.rng, float64(headroom)/3, 2, 0, float64(headroom)))
		p.Ratings.Ovr += step
	}
	p.Ratings.Skills = skillsFor(p.Ratings.Profile, p.Ratings.Ovr)
}

// fuzzSigma widens scouting error for franchises that spend less on
// scouting: the best-funded scout sees ratings almost exactly.
func fuzzSigma(scoutingRank, numTeams int) float64 {
	if numTeams < 2 {
		return 1
	}
	if scoutingRank < 1 {
		scoutingRank = 1
	}
	if scoutingRank > numTeams {
		scoutingRank = numTeams
	}
	return 1 + 3*float64(scoutingRank-1)/float64(numTeams-1)
}

// skillsFor tags prospects whose overall clears the archetype thresholds.
func skillsFor(profile player.Profile, ovr int) []string {
	var skills []string
	switch profile {
	case player.ProfilePoint:
		if ovr >= 35 {
			skills = append(skills, "B") // ball handling
		}
		if ovr >= 45 {
			skills = append(skills, "Ps") // passing
		}
	case player.ProfileWing:
		if ovr >= 35 {
			skills = append(skills, "3") // outside shooting
		}
		if ovr >= 45 {
			skills = append(skills, "Dp") // perimeter defense
		}
	case player.ProfileBig:
		if ovr >= 35 {
			skills = append(skills, "R") // rebounding
		}
		if ovr >= 45 {
			skills = append(skills, "Po") // post play
		}
	}
	return skills
}
