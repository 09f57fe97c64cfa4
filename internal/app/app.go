package app

import (
	"fmt"
	"net/http"

	redis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/btts-tracker/external/bbc"
	"github.com/riskibarqy/btts-tracker/external/espn"
	"github.com/riskibarqy/btts-tracker/external/footballdata"
	"github.com/riskibarqy/btts-tracker/internal/config"
	"github.com/riskibarqy/btts-tracker/internal/domain/assignment"
	"github.com/riskibarqy/btts-tracker/internal/domain/league"
	"github.com/riskibarqy/btts-tracker/internal/domain/manualmatch"
	"github.com/riskibarqy/btts-tracker/internal/domain/source"
	"github.com/riskibarqy/btts-tracker/internal/domain/tracking"
	"github.com/riskibarqy/btts-tracker/internal/infrastructure/notify"
	cachedrepo "github.com/riskibarqy/btts-tracker/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/btts-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/btts-tracker/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/btts-tracker/internal/infrastructure/repository/redisstate"
	"github.com/riskibarqy/btts-tracker/internal/infrastructure/sources"
	"github.com/riskibarqy/btts-tracker/internal/interfaces/httpapi"
	"github.com/riskibarqy/btts-tracker/internal/platform/cache"
	"github.com/riskibarqy/btts-tracker/internal/platform/logging"
	"github.com/riskibarqy/btts-tracker/internal/platform/resilience"
	"github.com/riskibarqy/btts-tracker/internal/usecase"
)

// App holds the wired service: the HTTP server plus the background
// poller that drives notifications.
type App struct {
	Server *http.Server
	Poller *usecase.PollerService

	closers []func() error
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{}

	leagues, err := config.LoadLeagues(cfg.LeaguesFile)
	if err != nil {
		return nil, err
	}
	if leagues == nil {
		leagues = memory.SeedLeagues()
	}
	leagueRepo := memory.NewLeagueRepository(leagues)

	var (
		assignmentRepo assignment.Repository
		manualRepo     manualmatch.Repository
	)
	if cfg.DBURL != "" {
		db, err := openDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		assignmentRepo = postgres.NewAssignmentRepository(db)
		manualRepo = cachedrepo.NewManualMatchRepository(postgres.NewManualMatchRepository(db), cache.NewStore(cfg.CacheTTL))
	} else {
		logger.Info("DB_URL empty, using in-memory repositories")
		assignmentRepo = memory.NewAssignmentRepository()
		manualRepo = memory.NewManualMatchRepository()
	}

	var stateRepo tracking.StateRepository
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		app.closers = append(app.closers, redisClient.Close)
		stateRepo = redisstate.NewStateRepository(redisClient, "")
		logger.Info("tracking state stored in redis", "addr", cfg.RedisAddr)
	} else {
		stateRepo = memory.NewStateRepository()
	}

	adapters := buildAdapters(cfg, leagueRepo, manualRepo, logger)

	participants := cfg.Participants
	if len(participants) == 0 {
		participants = memory.SeedParticipants()
	}

	catalog := usecase.NewCatalogService(leagueRepo, adapters, cache.NewStore(cfg.CacheTTL), logger, 0)
	tracker := usecase.NewTrackerService(assignmentRepo, stateRepo, catalog, logger)
	assignmentSvc := usecase.NewAssignmentService(assignmentRepo, stateRepo, participants)
	manualSvc := usecase.NewManualMatchService(manualRepo, leagueRepo, catalog)

	sink, err := buildSink(cfg, logger)
	if err != nil {
		return nil, err
	}

	app.Poller = usecase.NewPollerService(catalog, tracker, sink, logger, cfg.PollInterval, cfg.PollWorkers)

	handler := httpapi.NewHandler(catalog, tracker, assignmentSvc, manualSvc, app.Poller, leagueRepo, logger)
	router := httpapi.NewRouter(handler, logger, cfg.AdminToken, cfg.InternalJobToken, cfg.CORSAllowedOrigins)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if app.Server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return app, nil
}

// Close releases the app's infrastructure connections. Safe to call
// after the server and poller have stopped.
func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildAdapters(
	cfg config.Config,
	leagueRepo league.Repository,
	manualRepo manualmatch.Repository,
	logger *logging.Logger,
) []source.Adapter {
	adapters := make([]source.Adapter, 0, 4)

	if cfg.ESPNEnabled {
		adapters = append(adapters, espn.NewClient(espn.ClientConfig{
			BaseURL:       cfg.ESPNBaseURL,
			Timeout:       cfg.ESPNTimeout,
			MaxRetries:    cfg.ESPNMaxRetries,
			FetchRedCards: cfg.ESPNFetchRedCards,
			Logger:        logger,
			Breaker: resilience.BreakerConfig{
				Enabled:          cfg.ESPNCircuitEnabled,
				FailureThreshold: cfg.ESPNCircuitFailureCount,
				OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
			},
		}))
	}

	adapters = append(adapters, sources.NewManualAdapter(manualRepo))

	if cfg.FootballDataEnabled {
		adapters = append(adapters, footballdata.NewClient(footballdata.ClientConfig{
			BaseURL: cfg.FootballDataBaseURL,
			Token:   cfg.FootballDataToken,
			Timeout: cfg.FootballDataTimeout,
			Logger:  logger,
			Breaker: resilience.BreakerConfig{
				Enabled:          cfg.FootballDataCircuitEnabled,
				FailureThreshold: cfg.FootballDataCircuitFailureCount,
				OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
			},
		}, leagueRepo))
	}

	if cfg.BBCEnabled {
		adapters = append(adapters, bbc.NewClient(bbc.ClientConfig{
			BaseURL:  cfg.BBCBaseURL,
			PageWait: cfg.BBCPageWait,
			Timeout:  cfg.BBCTimeout,
			Logger:   logger,
		}, leagueRepo))
	}

	return adapters
}

func buildSink(cfg config.Config, logger *logging.Logger) (usecase.NotificationSink, error) {
	if !cfg.TelegramEnabled {
		logger.Info("telegram disabled, notifications go to the log")
		return notify.NewLogSink(logger), nil
	}

	sink, err := notify.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID, logger)
	if err != nil {
		return nil, fmt.Errorf("build telegram sink: %w", err)
	}
	return sink, nil
}
