package app

import (
	"context"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/franchise-gm/internal/config"
	"github.com/riskibarqy/franchise-gm/internal/domain/draft"
	"github.com/riskibarqy/franchise-gm/internal/domain/league"
	"github.com/riskibarqy/franchise-gm/internal/domain/player"
	"github.com/riskibarqy/franchise-gm/internal/domain/team"
	"github.com/riskibarqy/franchise-gm/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/franchise-gm/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/franchise-gm/internal/interfaces/httpapi"
	"github.com/riskibarqy/franchise-gm/internal/platform/logging"
	"github.com/riskibarqy/franchise-gm/internal/platform/random"
	"github.com/riskibarqy/franchise-gm/internal/usecase"
)

// repositories groups the persistence ports the services are wired with,
// either the in-memory demo league or postgres depending on config.
type repositories struct {
	players player.Repository
	teams   team.Repository
	order   draft.OrderRepository
	league  league.Repository

	close func() error
}

// NewHTTPServer builds the fully wired HTTP server. The returned cleanup
// releases the autoplay worker pool and closes the database connection;
// call it after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rng := random.New()
	if cfg.League.Seed != 0 {
		rng = random.NewSeeded(cfg.League.Seed)
	}

	classSvc := usecase.NewDraftClassService(repos.players, repos.teams, repos.league, cfg.League, rng, logger)
	orderSvc := usecase.NewDraftOrderService(repos.order, repos.teams, repos.league, cfg.League, rng, logger)
	pickSvc := usecase.NewDraftPickService(repos.players, repos.teams, repos.order, repos.league, cfg.League, logger)
	seasonSvc := usecase.NewSeasonService(repos.league, logger)
	autoplaySvc := usecase.NewAutoplayService(pickSvc, repos.players, repos.order, repos.league, seasonSvc, rng, logger)

	pool, err := ants.NewPool(cfg.AutoplayWorkers, ants.WithNonblocking(true))
	if err != nil {
		if repos.close != nil {
			_ = repos.close()
		}
		return nil, nil, fmt.Errorf("create autoplay pool: %w", err)
	}

	handler := httpapi.NewHandler(classSvc, orderSvc, pickSvc, autoplaySvc, seasonSvc, pool, cfg.LotteryMaxTrials, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func() error {
		pool.Release()
		if repos.close != nil {
			return repos.close()
		}
		return nil
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.InfoContext(ctx, "no DB_URL configured, using in-memory demo league")

		teams := memory.SeedTeams()
		teamRepo := memory.NewTeamRepository(teams)
		teamRepo.SetStandings(memory.SeedSeason, memory.SeedStandings(teams))

		return repositories{
			players: memory.NewPlayerRepository(nil),
			teams:   teamRepo,
			order:   memory.NewDraftOrderRepository(),
			league:  memory.NewLeagueRepository(memory.SeedLeagueState()),
		}, nil
	}

	db, err := otelsqlx.ConnectContext(ctx, "postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}
	logger.InfoContext(ctx, "connected to postgres", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		players: postgres.NewPlayerRepository(db),
		teams:   postgres.NewTeamRepository(db),
		order:   postgres.NewDraftOrderRepository(db),
		league:  postgres.NewLeagueRepository(db),
		close:   db.Close,
	}, nil
}
