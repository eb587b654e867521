package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/prix-six/internal/config"
	"github.com/riskibarqy/prix-six/internal/domain/driver"
	"github.com/riskibarqy/prix-six/internal/domain/prediction"
	"github.com/riskibarqy/prix-six/internal/domain/race"
	"github.com/riskibarqy/prix-six/internal/domain/reconciliation"
	"github.com/riskibarqy/prix-six/internal/domain/scoring"
	repocache "github.com/riskibarqy/prix-six/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/prix-six/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prix-six/internal/infrastructure/repository/mongodb"
	"github.com/riskibarqy/prix-six/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/prix-six/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/prix-six/internal/platform/id"
	"github.com/riskibarqy/prix-six/internal/platform/logging"
	"github.com/riskibarqy/prix-six/internal/platform/resilience"
	"github.com/riskibarqy/prix-six/internal/usecase"
)

// Container holds the services shared by the HTTP server and the batch CLI.
type Container struct {
	Scoring        *usecase.ScoringService
	Reconciliation *usecase.ReconciliationService

	closers []func(context.Context) error
}

type repositories struct {
	results     race.Repository
	scores      scoring.Repository
	predictions prediction.Repository
	audit       reconciliation.AuditRepository
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closer, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.ResultCacheTTL > 0 && cfg.StoreBackend != config.StoreMemory {
		repos.results = repocache.NewResultRepository(repos.results, cfg.ResultCacheTTL)
	}

	calculator := scoring.NewCalculator(driver.Default())
	auditBreaker := resilience.NewBreaker(resilience.BreakerConfig{
		Enabled:          cfg.AuditBreakerEnabled,
		FailureThreshold: cfg.AuditBreakerFailureThreshold,
		OpenTimeout:      cfg.AuditBreakerOpenTimeout,
		HalfOpenMaxReq:   1,
	})

	container := &Container{
		Scoring: usecase.NewScoringService(
			repos.results,
			repos.scores,
			repos.predictions,
			calculator,
			cfg.StandingsCacheTTL,
			logger,
		),
		Reconciliation: usecase.NewReconciliationService(
			repos.results,
			repos.scores,
			repos.predictions,
			repos.audit,
			calculator,
			idgen.NewUUIDGenerator(),
			auditBreaker,
			logger,
			usecase.ReconciliationConfig{
				MaxWorkers:  cfg.ReconcileMaxWorkers,
				MismatchCap: cfg.ReconcileMismatchCap,
				SkipIDs:     cfg.ReconcileSkipIDs,
			},
		),
	}
	if closer != nil {
		container.closers = append(container.closers, closer)
	}

	logger.Info("container ready", "store_backend", cfg.StoreBackend, "reconcile_workers", cfg.ReconcileMaxWorkers)
	return container, nil
}

// Close releases store connections in reverse order of acquisition.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func NewHTTPServer(cfg config.Config, container *Container, logger *logging.Logger) (*http.Server, error) {
	if container == nil {
		return nil, fmt.Errorf("container is required")
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(container.Scoring, container.Reconciliation, logger)
	router := httpapi.NewRouter(handler, logger, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory, "":
		logger.Warn("using in-memory store seeded with demo data")
		return repositories{
			results:     memory.NewResultRepository(memory.SeedResults()),
			scores:      memory.NewScoreRepository(memory.SeedScores()),
			predictions: memory.NewPredictionRepository(memory.SeedAccounts(), memory.SeedSubmissions()),
			audit:       memory.NewAuditRepository(),
		}, nil, nil

	case config.StoreMongo:
		store, err := mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open mongo store: %w", err)
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return repositories{}, nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return repositories{
			results:     mongodb.NewResultRepository(store),
			scores:      mongodb.NewScoreRepository(store),
			predictions: mongodb.NewPredictionRepository(store),
			audit:       mongodb.NewAuditRepository(store),
		}, store.Close, nil

	case config.StorePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			results:     postgres.NewResultRepository(db),
			scores:      postgres.NewScoreRepository(db),
			predictions: postgres.NewPredictionRepository(db),
			audit:       postgres.NewAuditRepository(db),
		}, func(context.Context) error { return db.Close() }, nil

	default:
		return repositories{}, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}
