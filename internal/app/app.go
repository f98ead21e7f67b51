package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/pickem-league/external/anubis"
	"github.com/riskibarqy/pickem-league/external/jobqueue"
	"github.com/riskibarqy/pickem-league/external/theoddsapi"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// memoryDBURL selects the seeded in-memory stores instead of postgres.
const memoryDBURL = "memory"

// App owns the HTTP server together with the pieces that share its
// lifecycle: the optional in-process reconcile scheduler and the database
// pool.
type App struct {
	Server    *http.Server
	Scheduler gocron.Scheduler

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger, accessLogger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	location := cfg.Location()

	repos, db, err := buildRepositories(cfg, location, logger)
	if err != nil {
		return nil, err
	}

	weekRepo := repos.weeks
	profileRepo := repos.profiles
	leaderboardRepo := repos.leaderboards
	if cfg.CacheEnabled {
		weekRepo = cache.NewWeekRepository(weekRepo, basecache.NewStore(cfg.CacheTTL))
		profileRepo = cache.NewProfileRepository(profileRepo, basecache.NewStore(cfg.CacheTTL))
		leaderboardRepo = cache.NewLeaderboardRepository(leaderboardRepo, basecache.NewStore(cfg.CacheTTL))
	}

	rules := submission.DefaultRules()

	gameSync := usecase.NewGameSyncService(
		weekRepo,
		buildOddsProvider(cfg, logger),
		location,
		cfg.OddsAPIBookmaker,
		cfg.OddsAPIScoresDaysFrom,
		logger,
	)
	weekSvc := usecase.NewWeekService(weekRepo, gameSync, location)
	profileSvc := usecase.NewProfileService(profileRepo, rules)
	submissionSvc := usecase.NewSubmissionService(
		weekRepo,
		repos.submissions,
		profileRepo,
		rules,
		idgen.NewRandomGenerator(),
		location,
		logger,
	)
	settlementSvc := usecase.NewSettlementService(
		weekRepo,
		repos.submissions,
		profileRepo,
		rules,
		cfg.SettlementWorkers,
		logger,
	)
	leaderboardSvc := usecase.NewLeaderboardService(weekRepo, repos.submissions, profileRepo, leaderboardRepo, logger)
	reconciliationSvc := usecase.NewReconciliationService(
		gameSync,
		settlementSvc,
		leaderboardSvc,
		buildJobQueue(cfg, logger),
		repos.dispatches,
		usecase.ReconcilerConfig{
			LiveInterval:   cfg.JobLiveInterval,
			IdleInterval:   cfg.JobScheduleInterval,
			PreKickoffLead: cfg.JobPreKickoffLead,
		},
		logger,
	)

	verifier := anubis.NewClient(anubis.ClientConfig{
		BaseURL:         cfg.AnubisBaseURL,
		IntrospectPath:  cfg.AnubisIntrospectURL,
		AdminKey:        cfg.AnubisAdminKey,
		Timeout:         cfg.AnubisTimeout,
		CacheTTL:        cfg.AnubisTokenCacheTTL,
		CacheMaxEntries: cfg.AnubisTokenCacheMaxEntries,
		Logger:          logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(weekSvc, submissionSvc, profileSvc, leaderboardSvc, reconciliationSvc, repos.dispatches, logger)
	router := httpapi.NewRouter(handler, verifier, accessLogger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	application := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		db: db,
	}

	// QStash wakes the reconcile pass through the internal job route. Without
	// it the pass runs on an in-process ticker.
	if !cfg.QStashEnabled {
		scheduler, err := newReconcileScheduler(reconciliationSvc, cfg.JobLiveInterval, logger)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, err
		}
		application.Scheduler = scheduler
	}

	return application, nil
}

// Start kicks the in-process scheduler when one was built. The HTTP server
// is started by the caller so it owns the listen error.
func (a *App) Start() {
	if a.Scheduler != nil {
		a.Scheduler.Start()
	}
}

// Shutdown stops the scheduler, drains the HTTP server and closes the
// database pool, reporting every failure it ran into.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Scheduler != nil {
		if err := a.Scheduler.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop http server: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

type repositories struct {
	weeks        week.Repository
	profiles     profile.Repository
	submissions  submission.Repository
	leaderboards leaderboard.Repository
	dispatches   jobscheduler.Repository
}

// buildRepositories returns the storage backend the DB URL selects. The
// literal "memory" yields seeded in-memory stores for local runs, anything
// else is treated as a postgres URL and pinged before use.
func buildRepositories(cfg config.Config, location *time.Location, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if strings.EqualFold(strings.TrimSpace(cfg.DBURL), memoryDBURL) {
		now := time.Now().In(location)
		seeded := memory.SeedWeek(now, location)
		logger.Info("using in-memory storage", "seeded_week_id", seeded.ID)
		return repositories{
			weeks:        memory.NewWeekRepository(seeded),
			profiles:     memory.NewProfileRepository(memory.SeedProfiles(now)...),
			submissions:  memory.NewSubmissionRepository(),
			leaderboards: memory.NewLeaderboardRepository(),
			dispatches:   memory.NewJobDispatchRepository(),
		}, nil, nil
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect database: %w", err)
	}

	return repositories{
		weeks:        postgres.NewWeekRepository(db),
		profiles:     postgres.NewProfileRepository(db),
		submissions:  postgres.NewSubmissionRepository(db),
		leaderboards: postgres.NewLeaderboardRepository(db),
		dispatches:   postgres.NewJobDispatchRepository(db),
	}, db, nil
}

// buildOddsProvider returns the live odds client, or a stub whose fetches
// fail when the feed is switched off.
func buildOddsProvider(cfg config.Config, logger *logging.Logger) usecase.OddsProvider {
	if !cfg.OddsAPIEnabled {
		return disabledOddsProvider{}
	}
	return theoddsapi.NewClient(theoddsapi.ClientConfig{
		BaseURL:    cfg.OddsAPIBaseURL,
		APIKey:     cfg.OddsAPIKey,
		SportKey:   cfg.OddsAPISportKey,
		Regions:    cfg.OddsAPIRegions,
		Markets:    cfg.OddsAPIMarkets,
		Timeout:    cfg.OddsAPITimeout,
		MaxRetries: cfg.OddsAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OddsAPICircuitEnabled,
			FailureThreshold: cfg.OddsAPICircuitFailureCount,
			OpenTimeout:      cfg.OddsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OddsAPICircuitHalfOpenMaxReq,
		},
	})
}

func buildJobQueue(cfg config.Config, logger *logging.Logger) usecase.JobQueue {
	if !cfg.QStashEnabled {
		return usecase.NewNoopJobQueue()
	}
	return jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger)
}

var errOddsFeedDisabled = errors.New("odds feed is disabled, set THEODDSAPI_ENABLED=true to sync games")

// disabledOddsProvider turns every sync attempt into a dependency error so
// jobs report the missing feed instead of writing empty weeks.
type disabledOddsProvider struct{}

func (disabledOddsProvider) FetchOdds(context.Context) ([]usecase.ExternalOddsEvent, error) {
	return nil, errOddsFeedDisabled
}

func (disabledOddsProvider) FetchScores(context.Context, int) ([]usecase.ExternalScoreEvent, error) {
	return nil, errOddsFeedDisabled
}
